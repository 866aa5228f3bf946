// Package solver finds zeros of scalar functions of one real variable.
//
// Two routines are provided:
//
//   - [FindRoot]: bisection on a bracket with a sign change
//   - [Scan]: uniform grid scan that brackets every sign change in a
//     domain, rejects asymptotes and bisects the rest
//
// Neither routine knows anything about waveguides. Functions are evaluated
// through a guarded boundary: a NaN (or a panic) means "no sign
// information here", never a fatal fault.
//
// # Limitations
//
// [Scan] can only see roots that change the sign of f between two adjacent
// grid points. Two roots (or a root and a pole) closer than the grid
// spacing cancel out and are missed. Raise [Options.Samples] when roots are
// expected to be dense.
package solver
