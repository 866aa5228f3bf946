package physics

import (
	"errors"
	"fmt"
	"math"
)

var ErrCouplerParams = errors.New("physics: invalid coupler parameters")

// Coupler is a pair of parallel guides exchanging power through their
// evanescent fields. Transfer is the largest fraction of power that ever
// reaches the second guide.
type Coupler struct {
	NEff1, NEff2 float64
	Wavelength   float64
	Transfer     float64
}

func NewCoupler(nEff1, nEff2, wavelength, transfer float64) (*Coupler, error) {
	if wavelength <= 0 {
		return nil, fmt.Errorf("%w: wavelength %g", ErrCouplerParams, wavelength)
	}
	if !(transfer > 0 && transfer < 1) {
		return nil, fmt.Errorf("%w: transfer fraction %g outside (0, 1)", ErrCouplerParams, transfer)
	}
	if nEff1 == nEff2 {
		return nil, fmt.Errorf("%w: synchronous guides always transfer fully", ErrCouplerParams)
	}
	return &Coupler{NEff1: nEff1, NEff2: nEff2, Wavelength: wavelength, Transfer: transfer}, nil
}

func (c *Coupler) Beta1() float64 { return 2 * math.Pi / c.Wavelength * c.NEff1 }
func (c *Coupler) Beta2() float64 { return 2 * math.Pi / c.Wavelength * c.NEff2 }

// Delta is the phase mismatch (beta1 - beta2) / 2.
func (c *Coupler) Delta() float64 {
	return (c.Beta1() - c.Beta2()) / 2
}

// Kappa is the coupling coefficient that yields the configured transfer.
func (c *Coupler) Kappa() float64 {
	return math.Abs(c.Delta()) / math.Sqrt(1/c.Transfer-1)
}

func (c *Coupler) Psi() float64 {
	k, d := c.Kappa(), c.Delta()
	return math.Sqrt(k*k + d*d)
}

// CouplingLength is the distance of the first transfer maximum.
func (c *Coupler) CouplingLength() float64 {
	return math.Pi / (2 * c.Psi())
}

func (c *Coupler) PowerA(z float64) float64 {
	s := math.Sin(c.Psi() * z)
	return 1 - c.Transfer*s*s
}

func (c *Coupler) PowerB(z float64) float64 {
	s := math.Sin(c.Psi() * z)
	return c.Transfer * s * s
}

// Sample returns both powers over [0, zMax] on n+1 points.
func (c *Coupler) Sample(zMax float64, n int) (zs, pa, pb []float64) {
	if n < 1 {
		n = 1
	}
	zs = make([]float64, n+1)
	pa = make([]float64, n+1)
	pb = make([]float64, n+1)
	for i := range zs {
		z := zMax * float64(i) / float64(n)
		zs[i], pa[i], pb[i] = z, c.PowerA(z), c.PowerB(z)
	}
	return zs, pa, pb
}
