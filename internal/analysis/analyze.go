package analysis

import (
	"fmt"

	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/physics"
	"github.com/san-kum/slabwave/internal/solver"
)

// Result is a complete analysis of one waveguide under one theory.
type Result struct {
	Spec    guide.Spec
	Theory  guide.Theory
	Modes   []guide.Mode
	Poles   []solver.Interval
	Skipped []error
	Samples int
}

// Valid returns the modes that passed derivation.
func (r *Result) Valid() []guide.Mode {
	valid := make([]guide.Mode, 0, len(r.Modes))
	for _, m := range r.Modes {
		if m.Valid() {
			valid = append(valid, m)
		}
	}
	return valid
}

// Analyze returns the guided modes of spec under theory, fundamental first.
func Analyze(spec guide.Spec, theory guide.Theory, opts Options) ([]guide.Mode, error) {
	r, err := Run(spec, theory, opts)
	if err != nil {
		return nil, err
	}
	return r.Modes, nil
}

// Run is Analyze with the scan diagnostics kept.
func Run(spec guide.Spec, theory guide.Theory, opts Options) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	eq, err := physics.NewEquation(spec, theory, opts.CutoffFloor)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Spec:   spec,
		Theory: theory,
		Modes:  make([]guide.Mode, 0),
	}
	if eq.Empty() {
		return result, nil
	}

	scanOpts := opts.Scan
	scanOpts.Samples = opts.samples(spec)
	scan, err := solver.Scan(eq.F, eq.Domain, scanOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze %s %s: %w", theory, spec, err)
	}
	result.Poles = scan.Poles
	result.Skipped = scan.Skipped
	result.Samples = scan.Samples

	for i, root := range scan.Roots {
		mode := guide.Mode{
			Index:        i,
			Root:         root.X,
			Residual:     root.Residual,
			Theory:       theory,
			Polarization: spec.Polarization,
		}
		mode.Params, mode.Err = Derive(spec, theory, root.X, i)
		result.Modes = append(result.Modes, mode)
	}
	return result, nil
}

// ModeField returns the transverse field profile of a mode of spec.
func ModeField(spec guide.Spec, mode guide.Mode) physics.Field {
	eq := physics.Equation{Spec: spec, Theory: mode.Theory}
	return physics.NewField(spec, eq.ToU(mode.Root))
}

// Curve samples the mode equation of spec under theory on n+1 points
// across its domain.
func Curve(spec guide.Spec, theory guide.Theory, floor float64, n int) (xs, ys []float64, err error) {
	eq, err := physics.NewEquation(spec, theory, floor)
	if err != nil {
		return nil, nil, err
	}
	if eq.Empty() {
		return nil, nil, nil
	}
	xs, ys = solver.Sample(eq.F, eq.Domain, n)
	return xs, ys, nil
}
