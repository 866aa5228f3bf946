package analysis

import (
	"context"
	"runtime"

	"github.com/san-kum/slabwave/internal/guide"
	"golang.org/x/sync/errgroup"
)

// AnalyzeAll runs every theory/polarization combination of spec in
// parallel. Results are ordered theory-major, in the order given. The
// first failing run cancels the rest.
func AnalyzeAll(ctx context.Context, spec guide.Spec, theories []guide.Theory, pols []guide.Polarization, opts Options) ([]*Result, error) {
	results := make([]*Result, len(theories)*len(pols))

	g, ctx := errgroup.WithContext(ctx)
	for i, theory := range theories {
		for j, pol := range pols {
			idx := i*len(pols) + j
			s := spec.WithPolarization(pol)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r, err := Run(s, theory, opts)
				if err != nil {
					return err
				}
				results[idx] = r
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SweepPoint is the mode content of one thickness in a sweep.
type SweepPoint struct {
	Thickness float64
	Modes     int
	// NEff holds the effective index of each valid mode, fundamental first.
	NEff []float64
}

// ThicknessSweep analyzes spec at steps evenly spaced thicknesses in
// [dMin, dMax]. Each thickness is independent, so the points are solved
// on a bounded worker pool.
func ThicknessSweep(ctx context.Context, spec guide.Spec, theory guide.Theory, dMin, dMax float64, steps int, opts Options) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	step := (dMax - dMin) / float64(steps-1)
	points := make([]SweepPoint, steps)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < steps; i++ {
		d := dMin + float64(i)*step
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Run(spec.WithThickness(d), theory, opts)
			if err != nil {
				return err
			}
			valid := r.Valid()
			p := SweepPoint{Thickness: d, Modes: len(valid), NEff: make([]float64, len(valid))}
			for k, m := range valid {
				p.NEff[k] = m.EffectiveIndex()
			}
			points[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
