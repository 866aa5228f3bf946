package physics

import (
	"math"

	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/solver"
)

// WaveDomain is (0, U_max) with U_max = V sqrt(1-floor).
func WaveDomain(spec guide.Spec, floor float64) solver.Interval {
	if floor >= 1 {
		return solver.Interval{}
	}
	return solver.Interval{Lo: 0, Hi: spec.V() * math.Sqrt(1-floor)}
}

// CladdingV is the normalized frequency against cladding n.
func CladdingV(spec guide.Spec, n float64) float64 {
	n1 := spec.Core
	return spec.K0() * spec.Thickness / 2 * math.Sqrt(n1*n1-n*n)
}

// CladdingW is the normalized decay constant gamma d / 2 in cladding n.
func CladdingW(spec guide.Spec, n, u float64) float64 {
	v := CladdingV(spec, n)
	return math.Sqrt(v*v - u*u)
}

// WaveCharacteristic is the slab eigenvalue equation in U,
// (U^2 - rs rc Ws Wc) tan 2U = U (rs Ws + rc Wc), multiplied through by
// cos 2U. Its zeros are the guided modes and it is finite everywhere, so a
// mode sitting at U = pi/4 + k pi/2 is not mistaken for an asymptote.
func WaveCharacteristic(spec guide.Spec, u float64) float64 {
	ns, nc := spec.Substrate, spec.CoverIndex()
	rs, rc := rho(spec, ns), rho(spec, nc)
	ws, wc := CladdingW(spec, ns, u), CladdingW(spec, nc, u)
	return (u*u-rs*rc*ws*wc)*math.Sin(2*u) - u*(rs*ws+rc*wc)*math.Cos(2*u)
}
