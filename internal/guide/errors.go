package guide

import (
	"errors"
	"fmt"
)

// Domain errors for waveguide analysis.
var (
	// ErrInvalidSpec indicates a waveguide whose indices, thickness or
	// wavelength violate the physical invariants. Nothing is solved.
	ErrInvalidSpec = errors.New("guide: invalid waveguide spec")

	// ErrInvalidDerivedResult indicates a derived parameter outside its
	// physical bounds. It is attached to a single mode.
	ErrInvalidDerivedResult = errors.New("guide: derived parameter out of physical bounds")

	// ErrUnknownTheory indicates a theory name that is neither ray nor wave.
	ErrUnknownTheory = errors.New("guide: unknown theory")

	// ErrUnknownPolarization indicates a polarization other than TE or TM.
	ErrUnknownPolarization = errors.New("guide: unknown polarization")
)

// SpecError names the offending field of an invalid spec.
type SpecError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidSpec, e.Field, e.Value, e.Reason)
}

func (e *SpecError) Unwrap() error {
	return ErrInvalidSpec
}

// ModeError wraps a failure of a single mode with its index and root.
type ModeError struct {
	Index   int
	Root    float64
	Param   string
	Wrapped error
}

func (e *ModeError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("mode %d (x=%.6g): %s: %v", e.Index, e.Root, e.Param, e.Wrapped)
	}
	return fmt.Sprintf("mode %d (x=%.6g): %v", e.Index, e.Root, e.Wrapped)
}

func (e *ModeError) Unwrap() error {
	return e.Wrapped
}
