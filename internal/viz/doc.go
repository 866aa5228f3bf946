// Package viz renders waveguide analyses in the terminal.
//
// Static output for the CLI:
//
//   - [ModeTable]: lipgloss table of modes and their derived parameters
//   - [PlotCurve], [PlotField], [PlotCoupler], [PlotSweep]: asciigraph charts
//   - [DiffModes]: unified diff of two mode tables, e.g. ray against wave
//
// [Browser] is an interactive Bubble Tea view over one waveguide.
//
// # Key Bindings
//
//	j/k   - Select mode
//	t     - Toggle ray / wave theory
//	p     - Toggle TE / TM
//	+/-   - Grow or shrink the core thickness by 10%
//	c     - Cycle color themes
//	q     - Quit
package viz
