package analysis

import (
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/solver"
)

// DefaultCutoffFloor is the smallest normalized propagation constant b
// that still counts as a guided mode.
const DefaultCutoffFloor = 0.01

// samplesPerMode sets the grid density floor relative to the expected
// number of modes.
const samplesPerMode = 64

type Options struct {
	Scan        solver.Options
	CutoffFloor float64
}

func DefaultOptions() Options {
	return Options{
		Scan:        solver.DefaultOptions(),
		CutoffFloor: DefaultCutoffFloor,
	}
}

// samples returns the grid size used for spec, never less than
// samplesPerMode cells per expected mode.
func (o Options) samples(spec guide.Spec) int {
	n := o.Scan.Samples
	if floor := samplesPerMode * (spec.ExpectedModes() + 1); n < floor {
		n = floor
	}
	return n
}
