package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/physics"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

// Clip replaces samples with |y| > limit by NaN so asymptotes do not
// flatten the rest of a curve.
func Clip(ys []float64, limit float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		if math.Abs(y) > limit {
			y = math.NaN()
		}
		out[i] = y
	}
	return out
}

func hasFinite(ys []float64) bool {
	for _, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			return true
		}
	}
	return false
}

// PlotCurve charts a sampled mode equation.
func PlotCurve(ys []float64, limit float64, caption string) string {
	if limit > 0 {
		ys = Clip(ys, limit)
	}
	if !hasFinite(ys) {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotField charts the transverse and longitudinal components of a mode
// profile over its plotting window.
func PlotField(f physics.Field, caption string) string {
	_, tr, lg := f.Sample(f.Window(), 2*plotWidth)

	// scale the longitudinal component to the transverse peak
	peak := 0.0
	for _, v := range lg {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak > 0 {
		for i := range lg {
			lg[i] /= peak
		}
	}

	return asciigraph.PlotMany([][]float64{tr, lg},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption(caption),
	)
}

// PlotCoupler charts the power in both guides over two coupling lengths.
func PlotCoupler(c *physics.Coupler) string {
	_, pa, pb := c.Sample(2*c.CouplingLength(), 2*plotWidth)
	return asciigraph.PlotMany([][]float64{pa, pb},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("P_a (green), P_b (red) over z in [0, %.4g]", 2*c.CouplingLength())),
	)
}

// PlotSweep charts the number of guided modes against thickness.
func PlotSweep(points []analysis.SweepPoint) string {
	if len(points) == 0 {
		return ""
	}
	counts := make([]float64, len(points))
	for i, p := range points {
		counts[i] = float64(p.Modes)
	}
	return asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("mode count, d from %.4g to %.4g", points[0].Thickness, points[len(points)-1].Thickness)),
	)
}

// FieldSketch draws a compact Braille profile with the core edges marked.
func FieldSketch(f physics.Field, width, height int) string {
	c := NewCanvas(width, height)
	w := f.Window()
	c.SetBounds(-w, w, -1.05, 1.05)
	xs, tr, _ := f.Sample(w, width*2)
	c.Plot(xs, tr)
	c.Marker(-f.Spec.Thickness / 2)
	c.Marker(f.Spec.Thickness / 2)
	return c.String()
}
