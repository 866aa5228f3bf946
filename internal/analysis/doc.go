// Package analysis finds and characterizes the guided modes of a slab
// waveguide.
//
// [Analyze] is the entry point: it validates a [guide.Spec], builds the
// ray or wave mode equation, scans it for roots and derives the physical
// parameters of every mode:
//
//	spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}
//	modes, err := analysis.Analyze(spec, guide.Wave, analysis.DefaultOptions())
//
// Modes are returned fundamental first. A mode whose derived parameters
// fall outside physical bounds keeps its place in the slice and carries
// an error wrapping [guide.ErrInvalidDerivedResult].
//
// [AnalyzeAll] and [ThicknessSweep] run independent analyses in parallel.
// [Cache] memoizes results for repeated lookups from interactive views.
package analysis
