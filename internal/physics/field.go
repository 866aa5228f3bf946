package physics

import (
	"math"

	"github.com/san-kum/slabwave/internal/guide"
)

// Field is the transverse profile of one guided mode, with the core
// centred on x = 0 and the substrate on the negative side. The transverse
// component is E_y for TE and H_y for TM; the longitudinal component is
// its x derivative (H_z for TE, E_z for TM, up to constant factors).
type Field struct {
	Spec   guide.Spec
	Kappa  float64
	GammaS float64
	GammaC float64
	// PhiS is the phase of the core standing wave at the substrate interface.
	PhiS float64
}

// NewField builds the profile of the mode with normalized transverse
// wavenumber u. The core amplitude is 1.
func NewField(spec guide.Spec, u float64) Field {
	d := spec.Thickness
	kappa := 2 * u / d
	gs := 2 * CladdingW(spec, spec.Substrate, u) / d
	gc := 2 * CladdingW(spec, spec.CoverIndex(), u) / d
	return Field{
		Spec:   spec,
		Kappa:  kappa,
		GammaS: gs,
		GammaC: gc,
		PhiS:   math.Atan(rho(spec, spec.Substrate) * gs / kappa),
	}
}

func (f Field) Transverse(x float64) float64 {
	d := f.Spec.Thickness
	s := x + d/2
	switch {
	case s < 0:
		return math.Cos(f.PhiS) * math.Exp(f.GammaS*s)
	case s <= d:
		return math.Cos(f.Kappa*s - f.PhiS)
	default:
		return math.Cos(f.Kappa*d-f.PhiS) * math.Exp(-f.GammaC*(s-d))
	}
}

func (f Field) Longitudinal(x float64) float64 {
	d := f.Spec.Thickness
	s := x + d/2
	switch {
	case s < 0:
		return f.GammaS * math.Cos(f.PhiS) * math.Exp(f.GammaS*s)
	case s <= d:
		return -f.Kappa * math.Sin(f.Kappa*s-f.PhiS)
	default:
		return -f.GammaC * math.Cos(f.Kappa*d-f.PhiS) * math.Exp(-f.GammaC*(s-d))
	}
}

// Confinement is the fraction of guided power carried inside the core.
// TM power is weighted by 1/n^2 in each layer.
func (f Field) Confinement() float64 {
	d, k, phi := f.Spec.Thickness, f.Kappa, f.PhiS
	core := d/2 + (math.Sin(2*(k*d-phi))+math.Sin(2*phi))/(4*k)
	cs := math.Cos(phi)
	cc := math.Cos(k*d - phi)
	sub := cs * cs / (2 * f.GammaS)
	cover := cc * cc / (2 * f.GammaC)

	if f.Spec.Polarization == guide.TM {
		n1, ns, nc := f.Spec.Core, f.Spec.Substrate, f.Spec.CoverIndex()
		core /= n1 * n1
		sub /= ns * ns
		cover /= nc * nc
	}
	return core / (core + sub + cover)
}

// Sample evaluates both components on n+1 points over [-halfWidth, halfWidth].
func (f Field) Sample(halfWidth float64, n int) (xs, transverse, longitudinal []float64) {
	if n < 1 {
		n = 1
	}
	xs = make([]float64, n+1)
	transverse = make([]float64, n+1)
	longitudinal = make([]float64, n+1)
	step := 2 * halfWidth / float64(n)
	for i := range xs {
		x := -halfWidth + float64(i)*step
		xs[i] = x
		transverse[i] = f.Transverse(x)
		longitudinal[i] = f.Longitudinal(x)
	}
	return xs, transverse, longitudinal
}

// Window is a plotting half-width: the core plus three decay lengths on
// the slower-decaying side.
func (f Field) Window() float64 {
	g := math.Min(f.GammaS, f.GammaC)
	if g <= 0 || math.IsNaN(g) {
		return f.Spec.Thickness
	}
	return f.Spec.Thickness/2 + 3/g
}
