package solver

import (
	"math"
)

const (
	DefaultTol     = 1e-12
	DefaultMaxIter = 200

	// probes of a NaN endpoint before giving up on the bracket
	maxShrink = 12
)

// Func is a scalar function of one real variable.
type Func func(x float64) float64

// Interval is a closed bracket [Lo, Hi] used while searching.
type Interval struct {
	Lo, Hi float64
}

func (i Interval) Width() float64 { return i.Hi - i.Lo }

func (i Interval) Valid() bool {
	return i.Lo < i.Hi && !math.IsInf(i.Lo, 0) && !math.IsInf(i.Hi, 0)
}

// Root is a converged zero.
type Root struct {
	X          float64
	Residual   float64
	Iterations int
	Bracket    Interval
}

// eval calls f and reports whether the value carries sign information.
func eval(f Func, x float64) (v float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v, ok = math.NaN(), false
		}
	}()
	v = f(x)
	return v, !math.IsNaN(v)
}

func opposite(a, b float64) bool {
	return a != 0 && b != 0 && (a < 0) != (b < 0)
}

// probe evaluates f at x, stepping toward other while f has no sign there.
func probe(f Func, x, other float64) (float64, float64, bool) {
	step := (other - x) * 1e-9
	for i := 0; i < maxShrink; i++ {
		if v, ok := eval(f, x); ok {
			return v, x, true
		}
		x += step
		step *= 4
		if (step > 0 && x >= other) || (step < 0 && x <= other) {
			break
		}
	}
	return math.NaN(), x, false
}

// FindRoot locates a zero of f in [lo, hi] by bisection.
//
// f(lo) and f(hi) must have opposite signs. An exact zero at either bound
// is returned immediately. The search stops when the bracket is narrower
// than tol or |f(mid)| < tol; running out of maxIter iterations returns
// ErrNotConverged rather than an imprecise answer. Non-positive tol or
// maxIter select the package defaults.
func FindRoot(f Func, lo, hi, tol float64, maxIter int) (Root, error) {
	bracket := Interval{Lo: lo, Hi: hi}
	if !bracket.Valid() {
		return Root{}, &BracketError{Lo: lo, Hi: hi, Wrapped: ErrInvalidBracket}
	}
	if tol <= 0 {
		tol = DefaultTol
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	flo, lo, okLo := probe(f, lo, hi)
	fhi, hi, okHi := probe(f, hi, lo)
	if !okLo || !okHi || lo >= hi {
		return Root{}, &BracketError{Lo: bracket.Lo, Hi: bracket.Hi, Wrapped: ErrNoSignChange}
	}
	if flo == 0 {
		return Root{X: lo, Bracket: bracket}, nil
	}
	if fhi == 0 {
		return Root{X: hi, Bracket: bracket}, nil
	}
	if !opposite(flo, fhi) {
		return Root{}, &BracketError{Lo: lo, Hi: hi, Wrapped: ErrNoSignChange}
	}

	for i := 1; i <= maxIter; i++ {
		mid := lo + (hi-lo)/2
		fmid, ok := eval(f, mid)
		if !ok {
			mid, fmid, ok = nudge(f, lo, hi)
			if !ok {
				return Root{}, &BracketError{Lo: lo, Hi: hi, Iterations: i, Wrapped: ErrNotConverged}
			}
		}

		if fmid == 0 || math.Abs(fmid) < tol || (hi-lo)/2 < tol {
			return Root{X: mid, Residual: math.Abs(fmid), Iterations: i, Bracket: bracket}, nil
		}

		if opposite(flo, fmid) {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}

	return Root{}, &BracketError{Lo: lo, Hi: hi, Iterations: maxIter, Wrapped: ErrNotConverged}
}

// nudge looks for a usable interior point when the midpoint has no sign.
func nudge(f Func, lo, hi float64) (float64, float64, bool) {
	w := hi - lo
	for _, frac := range []float64{0.5 - 1e-6, 0.5 + 1e-6, 0.25, 0.75} {
		x := lo + w*frac
		if v, ok := eval(f, x); ok {
			return x, v, true
		}
	}
	return 0, math.NaN(), false
}
