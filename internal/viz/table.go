package viz

import (
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/slabwave/internal/guide"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 7, 64)
}

// ModeTable renders modes with their derived parameters. Failed modes
// show their error in the status column.
func ModeTable(modes []guide.Mode) string {
	var layout guide.Params
	for _, m := range modes {
		if len(m.Params) > 0 {
			layout = m.Params
			break
		}
	}

	headers := []string{"m", "root", "status"}
	for _, p := range layout {
		if p.Unit != "" {
			headers = append(headers, fmt.Sprintf("%s (%s)", p.Name, p.Unit))
		} else {
			headers = append(headers, p.Name)
		}
	}

	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		status := "ok"
		if m.Err != nil {
			status = m.Err.Error()
		}
		row := []string{strconv.Itoa(m.Index), formatValue(m.Root), status}
		for _, p := range layout {
			if v, ok := m.Params.Value(p.Name); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(lipgloss.Color("#00ffff"))
			case col == 2 && row >= 0 && row < len(modes) && modes[row].Err != nil:
				return style.Foreground(lipgloss.Color("#ff4444"))
			case col == 2:
				return style.Foreground(lipgloss.Color("#00ff88"))
			}
			return style
		})
	return t.String()
}

// SpecSummary is a one-block description of a waveguide.
func SpecSummary(spec guide.Spec) string {
	lines := []string{
		MetricLabel.Render("waveguide  ") + MetricValue.Render(spec.String()),
		MetricLabel.Render("V          ") + MetricValue.Render(formatValue(spec.V())),
		MetricLabel.Render("NA         ") + MetricValue.Render(formatValue(spec.NA())),
		MetricLabel.Render("theta_c    ") + MetricValue.Render(formatValue(spec.CriticalAngle()*180/math.Pi)+" deg"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
