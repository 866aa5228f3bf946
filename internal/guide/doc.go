// Package guide provides the core value types for slab waveguide analysis.
//
// The package defines the vocabulary shared by the solver, the physical
// models and the orchestrator:
//
//   - [Spec]: immutable description of a slab (indices, thickness, wavelength)
//   - [Theory]: ray optics or electromagnetic wave theory
//   - [Polarization]: TE or TM
//   - [Mode]: one discovered guided mode with its derived parameters
//   - [Params]: ordered name/value pairs for tables and exports
//
// # Example
//
//	spec := guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}
//	if err := spec.Validate(); err != nil {
//	    return err
//	}
//	modes, _ := analysis.Analyze(spec, guide.Wave, analysis.DefaultOptions())
//
// # Units
//
// Thickness and wavelength only need to share a unit. Presets and the CLI
// use micrometres throughout, so propagation constants come out in 1/um.
//
// # Thread Safety
//
// Every type in this package is a plain value. A [Spec] or [Mode] can be
// shared between goroutines freely once constructed.
package guide
