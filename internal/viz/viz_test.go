package viz

import (
	"io"
	"log"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/physics"
)

var slab = guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE}

func quietOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Scan.Logger = log.New(io.Discard, "", 0)
	return opts
}

func analyze(t *testing.T, theory guide.Theory) []guide.Mode {
	t.Helper()
	modes, err := analysis.Analyze(slab, theory, quietOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return modes
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModeTable(t *testing.T) {
	out := ModeTable(analyze(t, guide.Wave))
	for _, want := range []string{"n_eff", "confinement", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}

func TestDiffModes(t *testing.T) {
	ray, wave := analyze(t, guide.Ray), analyze(t, guide.Wave)

	diff, err := DiffModes("ray", ray, "wave", wave, 6)
	if err != nil {
		t.Fatal(err)
	}
	if diff != "" {
		t.Errorf("ray and wave should agree to 6 decimals:\n%s", diff)
	}

	diff, err = DiffModes("ray", ray, "wave", wave[:1], 6)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diff, "--- ray") || !strings.Contains(diff, "-m=1") {
		t.Errorf("unexpected diff:\n%s", diff)
	}
}

func TestClip(t *testing.T) {
	out := Clip([]float64{1, -50, 3}, 10)
	if out[0] != 1 || out[2] != 3 || !math.IsNaN(out[1]) {
		t.Errorf("clip = %v", out)
	}
}

func TestPlots(t *testing.T) {
	xs, ys, err := analysis.Curve(slab, guide.Wave, 0, 200)
	if err != nil || len(xs) == 0 {
		t.Fatalf("curve: %v", err)
	}
	if PlotCurve(ys, 50, "f(U)") == "" {
		t.Error("empty curve plot")
	}

	modes := analyze(t, guide.Wave)
	if out := PlotField(analysis.ModeField(slab, modes[0]), "TE0"); !strings.Contains(out, "TE0") {
		t.Error("field plot missing caption")
	}

	c, err := physics.NewCoupler(1.45, 1.449, 1.55, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if PlotCoupler(c) == "" {
		t.Error("empty coupler plot")
	}

	if PlotSweep(nil) != "" {
		t.Error("sweep plot of nothing should be empty")
	}
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(10, 3)
	c.SetBounds(0, 1, 0, 1)
	c.Plot([]float64{0, 1}, []float64{0, 1})
	c.Marker(0.5)

	out := c.String()
	if strings.Count(out, "\n") != 3 {
		t.Errorf("expected 3 rows, got %q", out)
	}
	if strings.Trim(out, string(rune(brailleBlank))+"\n") == "" {
		t.Error("nothing drawn")
	}
}

func TestBrowser(t *testing.T) {
	cache, err := analysis.NewCache(16, quietOptions())
	if err != nil {
		t.Fatal(err)
	}
	b := NewBrowser(slab, guide.Wave, cache)
	if len(b.modes) != 3 {
		t.Fatalf("expected 3 modes, got %d", len(b.modes))
	}

	m, _ := b.Update(key("j"))
	b = m.(Browser)
	if sel, ok := b.Selected(); !ok || sel.Index != 1 {
		t.Errorf("selected %+v", sel)
	}

	m, _ = b.Update(key("t"))
	b = m.(Browser)
	if b.theory != guide.Ray || len(b.modes) != 3 {
		t.Errorf("theory toggle: %s with %d modes", b.theory, len(b.modes))
	}

	m, _ = b.Update(key("p"))
	b = m.(Browser)
	if b.spec.Polarization != guide.TM {
		t.Errorf("polarization = %s", b.spec.Polarization)
	}

	for i := 0; i < 40; i++ {
		m, _ = b.Update(key("-"))
		b = m.(Browser)
	}
	if len(b.modes) != 0 || b.cursor != 0 {
		t.Errorf("thin slab: %d modes, cursor %d", len(b.modes), b.cursor)
	}
	if !strings.Contains(b.View(), "no guided modes") {
		t.Error("view should report an empty mode list")
	}

	_, cmd := b.Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("names %v", names)
	}
	for _, n := range names {
		if th, ok := GetTheme(n); !ok || th.Name != n {
			t.Errorf("GetTheme(%q) = %v, %v", n, th.Name, ok)
		}
	}
	if th, ok := GetTheme("nope"); ok || th.Name != ThemeSilica.Name {
		t.Errorf("unknown theme resolved to %q, %v", th.Name, ok)
	}
}

func TestBrowser_Theme(t *testing.T) {
	cache, err := analysis.NewCache(16, quietOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewBrowser(slab, guide.Wave, cache).WithTheme("mono")
	if err != nil {
		t.Fatal(err)
	}
	if Themes[b.theme].Name != "mono" {
		t.Errorf("theme = %s", Themes[b.theme].Name)
	}
	if _, err := b.WithTheme("nope"); err == nil {
		t.Error("expected an error for an unknown theme")
	}

	m, _ := b.Update(key("c"))
	b = m.(Browser)
	if Themes[b.theme].Name != "silica" {
		t.Errorf("c should wrap to the first theme, got %s", Themes[b.theme].Name)
	}
	if !strings.Contains(b.View(), "theory") {
		t.Error("view should list key hints")
	}
}

func TestSeparator(t *testing.T) {
	if s := Separator(20); !strings.Contains(s, "◆") || !strings.Contains(s, "─") {
		t.Errorf("separator %q", s)
	}
}
