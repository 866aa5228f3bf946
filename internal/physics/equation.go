package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/solver"
)

// Equation is a mode equation bound to one waveguide and polarization.
type Equation struct {
	Spec   guide.Spec
	Theory guide.Theory
	Domain solver.Interval
	F      solver.Func
}

// NewEquation selects the mode equation for theory and spec.Polarization.
// floor is the smallest normalized propagation constant b still counted as
// guided; it trims the domain on the cutoff side. An empty domain (floor
// at or above 1) is returned as a zero-width Domain, not an error.
func NewEquation(spec guide.Spec, theory guide.Theory, floor float64) (*Equation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if floor < 0 || math.IsNaN(floor) {
		floor = 0
	}

	eq := &Equation{Spec: spec, Theory: theory}
	switch theory {
	case guide.Ray:
		eq.Domain = RayDomain(spec, floor)
		eq.F = func(psi float64) float64 { return math.Sin(RayPhase(spec, psi)) }
	case guide.Wave:
		eq.Domain = WaveDomain(spec, floor)
		eq.F = func(u float64) float64 { return WaveCharacteristic(spec, u) }
	default:
		return nil, fmt.Errorf("%w: %q", guide.ErrUnknownTheory, theory)
	}
	return eq, nil
}

// Empty reports whether no guided mode can exist in the domain.
func (e *Equation) Empty() bool {
	return !(e.Domain.Hi > e.Domain.Lo)
}

// Order returns the mode number implied by a root of this equation.
func (e *Equation) Order(x float64) int {
	switch e.Theory {
	case guide.Ray:
		return int(math.Round(RayPhase(e.Spec, x) / math.Pi))
	default:
		return int(math.Floor(2 * x / math.Pi))
	}
}

// ToU converts a root of this equation to the normalized transverse
// wavenumber U = kappa d / 2.
func (e *Equation) ToU(x float64) float64 {
	if e.Theory == guide.Ray {
		return RayToU(e.Spec, x)
	}
	return x
}

// rho is the boundary-condition weight of cladding index n.
func rho(spec guide.Spec, n float64) float64 {
	if spec.Polarization == guide.TM {
		r := spec.Core / n
		return r * r
	}
	return 1
}

// floorIndex is the effective index at normalized propagation constant b.
func floorIndex(spec guide.Spec, b float64) float64 {
	n1, n2 := spec.Core, spec.Cladding()
	return math.Sqrt(n2*n2 + b*(n1*n1-n2*n2))
}
