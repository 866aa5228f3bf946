package solver

import (
	"errors"
	"fmt"
	"log"
	"math"
)

type Options struct {
	// Samples is the number of grid cells across the domain.
	Samples int
	Tol     float64
	MaxIter int
	// EdgeEps pulls both domain ends inward, as a fraction of its width.
	EdgeEps float64
	Logger  *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Samples: 2000,
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
		EdgeEps: 1e-9,
	}
}

// ScanResult holds the roots of a scan in increasing order, plus the
// brackets that were rejected along the way.
type ScanResult struct {
	Roots   []Root
	Poles   []Interval
	Skipped []error
	Samples int
}

// Scan enumerates the zeros of f over the half-open domain [Lo, Hi).
//
// f is sampled on Samples+1 evenly spaced points; every adjacent pair
// with a sign change is bisected. A crossing whose converged |f| exceeds
// both bracket ends is an asymptote, not a zero, and is recorded in Poles.
// Brackets that fail to converge are logged and recorded in Skipped; they
// never stop the scan. A domain without sign changes yields no roots and
// no error.
func Scan(f Func, domain Interval, opts Options) (*ScanResult, error) {
	if !domain.Valid() {
		return nil, fmt.Errorf("scan domain: %w", &BracketError{Lo: domain.Lo, Hi: domain.Hi, Wrapped: ErrInvalidBracket})
	}
	if opts.Samples < 1 {
		return nil, fmt.Errorf("scan: samples must be positive, got %d", opts.Samples)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	eps := opts.EdgeEps * domain.Width()
	lo, hi := domain.Lo+eps, domain.Hi-eps
	if lo >= hi {
		lo, hi = domain.Lo, domain.Hi
	}

	n := opts.Samples
	xs := make([]float64, n+1)
	vs := make([]float64, n+1)
	oks := make([]bool, n+1)
	step := (hi - lo) / float64(n)
	for i := 0; i <= n; i++ {
		xs[i] = lo + float64(i)*step
		if i == n {
			xs[i] = hi
		}
		vs[i], oks[i] = eval(f, xs[i])
	}

	result := &ScanResult{
		Roots:   make([]Root, 0),
		Poles:   make([]Interval, 0),
		Skipped: make([]error, 0),
		Samples: n,
	}

	for i := 0; i <= n; i++ {
		if oks[i] && vs[i] == 0 {
			result.Roots = append(result.Roots, Root{X: xs[i], Bracket: Interval{Lo: xs[i], Hi: xs[i]}})
			continue
		}
		if i == n || !oks[i] || !oks[i+1] || !opposite(vs[i], vs[i+1]) {
			continue
		}

		root, err := FindRoot(f, xs[i], xs[i+1], opts.Tol, opts.MaxIter)
		if err != nil {
			if errors.Is(err, ErrNotConverged) || errors.Is(err, ErrNoSignChange) {
				logger.Printf("scan: skipping bracket %d: %v", i, err)
				result.Skipped = append(result.Skipped, err)
				continue
			}
			return nil, err
		}

		if root.Residual > math.Max(finiteAbs(vs[i]), finiteAbs(vs[i+1])) {
			result.Poles = append(result.Poles, Interval{Lo: xs[i], Hi: xs[i+1]})
			continue
		}
		result.Roots = append(result.Roots, root)
	}

	return result, nil
}

func finiteAbs(v float64) float64 {
	if math.IsInf(v, 0) {
		return 0
	}
	return math.Abs(v)
}

// Sample evaluates f on n+1 evenly spaced points over the domain, with NaN
// wherever f has no value. Useful for plotting a mode equation.
func Sample(f Func, domain Interval, n int) ([]float64, []float64) {
	if n < 1 || !domain.Valid() {
		return nil, nil
	}
	xs := make([]float64, n+1)
	ys := make([]float64, n+1)
	step := domain.Width() / float64(n)
	for i := range xs {
		xs[i] = domain.Lo + float64(i)*step
		v, ok := eval(f, xs[i])
		if !ok {
			v = math.NaN()
		}
		ys[i] = v
	}
	return xs, ys
}
