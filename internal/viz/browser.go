package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
)

// Browser is the interactive mode browser. Analyses go through a shared
// cache, so toggling back and forth does not re-solve.
type Browser struct {
	spec   guide.Spec
	theory guide.Theory
	cache  *analysis.Cache

	modes  []guide.Mode
	err    error
	cursor int
	theme  int

	width, height int
}

func NewBrowser(spec guide.Spec, theory guide.Theory, cache *analysis.Cache) Browser {
	b := Browser{spec: spec, theory: theory, cache: cache, width: 100, height: 30}
	b.reload()
	return b
}

// WithTheme selects a color theme by name.
func (b Browser) WithTheme(name string) (Browser, error) {
	i := themeIndex(name)
	if i < 0 {
		return b, fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(ThemeNames(), ", "))
	}
	b.theme = i
	return b, nil
}

func (b *Browser) reload() {
	b.modes, b.err = b.cache.Analyze(b.spec, b.theory)
	if b.cursor >= len(b.modes) {
		b.cursor = len(b.modes) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.modes)-1 {
			b.cursor++
		}
	case "t":
		if b.theory == guide.Ray {
			b.theory = guide.Wave
		} else {
			b.theory = guide.Ray
		}
		b.reload()
	case "p":
		if b.spec.Polarization == guide.TE {
			b.spec = b.spec.WithPolarization(guide.TM)
		} else {
			b.spec = b.spec.WithPolarization(guide.TE)
		}
		b.reload()
	case "+", "=":
		b.spec = b.spec.WithThickness(b.spec.Thickness * 1.1)
		b.reload()
	case "-":
		b.spec = b.spec.WithThickness(b.spec.Thickness / 1.1)
		b.reload()
	case "c":
		b.theme = (b.theme + 1) % len(Themes)
	}
	return b, nil
}

// Selected returns the highlighted mode, if any.
func (b Browser) Selected() (guide.Mode, bool) {
	if b.cursor < 0 || b.cursor >= len(b.modes) {
		return guide.Mode{}, false
	}
	return b.modes[b.cursor], true
}

func (b Browser) View() string {
	th := Themes[b.theme]
	title := Title.Foreground(th.Secondary)
	muted := lipgloss.NewStyle().Foreground(th.Muted)
	cursor := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	accent := lipgloss.NewStyle().Foreground(th.Accent)

	var s strings.Builder
	s.WriteString("\n  " + title.Render("SLABWAVE") + "  " + muted.Render(fmt.Sprintf("%s theory", b.theory)) + "\n")
	s.WriteString("  " + muted.Render(b.spec.String()) + "\n")
	s.WriteString("  " + muted.Render(fmt.Sprintf("V=%.4f  expected modes %d", b.spec.V(), b.spec.ExpectedModes())) + "\n\n")

	if b.err != nil {
		s.WriteString("  " + lipgloss.NewStyle().Foreground(th.Error).Render(b.err.Error()) + "\n")
		s.WriteString(b.hints(th))
		return s.String()
	}

	var list strings.Builder
	if len(b.modes) == 0 {
		list.WriteString(muted.Render("no guided modes"))
	}
	for i, m := range b.modes {
		label := fmt.Sprintf("%s%d  n_eff=%.6f", b.spec.Polarization, m.Index, m.EffectiveIndex())
		if m.Err != nil {
			label = fmt.Sprintf("%s%d  invalid", b.spec.Polarization, m.Index)
		}
		if i == b.cursor {
			list.WriteString(cursor.Render("▸ "+label) + "\n")
		} else {
			list.WriteString(muted.Render("  "+label) + "\n")
		}
	}

	detail := ""
	if m, ok := b.Selected(); ok {
		detail = b.detail(m, accent)
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(list.String()),
		"  ",
		Panel.Render(detail),
	))
	s.WriteString("\n")
	s.WriteString(b.hints(th))
	return s.String()
}

func (b Browser) detail(m guide.Mode, accent lipgloss.Style) string {
	var d strings.Builder
	if m.Err != nil {
		d.WriteString(ErrorText.Render(m.Err.Error()) + "\n")
	}
	for _, p := range m.Params {
		unit := ""
		if p.Unit != "" {
			unit = " " + p.Unit
		}
		d.WriteString(MetricLabel.Render(fmt.Sprintf("%-17s", p.Name)) + accent.Render(formatValue(p.Value)+unit) + "\n")
	}
	if m.Err == nil {
		d.WriteString("\n" + FieldSketch(analysis.ModeField(b.spec, m), 40, 6))
	}
	return d.String()
}

func (b Browser) hints(th Theme) string {
	accent := lipgloss.NewStyle().Foreground(th.Accent)
	hint := KeyHint.Foreground(th.Muted)
	keys := []struct{ key, desc string }{
		{"j/k", "select"}, {"t", "theory"}, {"p", "TE/TM"}, {"+/-", "thickness"}, {"c", "theme"}, {"q", "quit"},
	}
	var s strings.Builder
	s.WriteString("\n  ")
	for _, k := range keys {
		s.WriteString(accent.Render(k.key) + hint.Render(" "+k.desc+"  "))
	}
	s.WriteString("\n")
	return s.String()
}

func RunBrowser(spec guide.Spec, theory guide.Theory, cache *analysis.Cache, theme string) error {
	b, err := NewBrowser(spec, theory, cache).WithTheme(theme)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}
