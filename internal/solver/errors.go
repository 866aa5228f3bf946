package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBracket indicates lo >= hi or a non-finite bound.
	ErrInvalidBracket = errors.New("solver: invalid bracket")

	// ErrNoSignChange indicates f(lo) and f(hi) share a sign.
	ErrNoSignChange = errors.New("solver: no sign change in bracket")

	// ErrNotConverged indicates the iteration budget ran out before the
	// tolerance was met.
	ErrNotConverged = errors.New("solver: bisection did not converge")
)

// BracketError wraps a solver failure with the bracket it happened on.
type BracketError struct {
	Lo, Hi     float64
	Iterations int
	Wrapped    error
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("[%.9g, %.9g] after %d iterations: %v", e.Lo, e.Hi, e.Iterations, e.Wrapped)
}

func (e *BracketError) Unwrap() error {
	return e.Wrapped
}
