package export

import (
	"fmt"
	"math"
	"strings"
)

// Series is one polyline of a plot.
type Series struct {
	Name   string
	Color  string
	Xs, Ys []float64
}

var palette = []string{"#00ff88", "#ff6b6b", "#4dabf7", "#ffd43b", "#cc5de8", "#ff922b"}

// PlotToSVG draws every series on shared axes. Non-finite samples break
// the line, so asymptotes of a mode equation are not joined across.
func PlotToSVG(series []Series, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for i := range s.Xs {
			if i >= len(s.Ys) || !finite(s.Xs[i]) || !finite(s.Ys[i]) {
				continue
			}
			minX, maxX = math.Min(minX, s.Xs[i]), math.Max(maxX, s.Xs[i])
			minY, maxY = math.Min(minY, s.Ys[i]), math.Max(maxY, s.Ys[i])
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if minY < 0 && maxY > 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444" stroke-dasharray="4"/>
`, toY(0), width, toY(0)))
	}

	for k, s := range series {
		color := s.Color
		if color == "" {
			color = palette[k%len(palette)]
		}

		var path strings.Builder
		pen := false
		for i := range s.Xs {
			if i >= len(s.Ys) || !finite(s.Xs[i]) || !finite(s.Ys[i]) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
			}
			if path.Len() > 0 {
				path.WriteString(" ")
			}
			path.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, toX(s.Xs[i]), toY(s.Ys[i])))
			pen = true
		}
		if path.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"><title>%s</title></path>
`, color, path.String(), s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
