package physics

import (
	"math"

	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/solver"
)

// RayDomain is (0, psi_max): psi_max is the ray angle at which the
// effective index falls to the cutoff floor.
func RayDomain(spec guide.Spec, floor float64) solver.Interval {
	if floor >= 1 {
		return solver.Interval{}
	}
	return solver.Interval{Lo: 0, Hi: math.Acos(floorIndex(spec, floor) / spec.Core)}
}

// HalfPhase is the Goos-Hanchen half phase atan(rho*sqrt(n1^2 cos^2 psi - n^2)/(n1 sin psi))
// picked up on total internal reflection against cladding n. It is NaN
// past the critical angle.
func HalfPhase(spec guide.Spec, n, psi float64) float64 {
	n1 := spec.Core
	c := n1 * math.Cos(psi)
	root := math.Sqrt(c*c - n*n)
	return math.Atan(rho(spec, n) * root / (n1 * math.Sin(psi)))
}

// RayPhase is the transverse resonance phase of one traversal:
// k0 n1 d sin(psi) minus both reflection half phases. Mode m satisfies
// RayPhase = m*pi.
func RayPhase(spec guide.Spec, psi float64) float64 {
	n1 := spec.Core
	return spec.K0()*n1*spec.Thickness*math.Sin(psi) -
		HalfPhase(spec, spec.Substrate, psi) -
		HalfPhase(spec, spec.CoverIndex(), psi)
}

// RayToU maps an axial ray angle to U = kappa d / 2.
func RayToU(spec guide.Spec, psi float64) float64 {
	return spec.K0() * spec.Core * math.Sin(psi) * spec.Thickness / 2
}
