package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Waveguide.Validate(); err != nil {
		t.Errorf("default waveguide invalid: %v", err)
	}
	if theory, err := cfg.GetTheory(); err != nil || theory != guide.Wave {
		t.Errorf("expected wave theory, got %q (%v)", theory, err)
	}
	if cfg.Solver.Samples <= 0 {
		t.Error("samples should be positive")
	}
	if cfg.Solver.CutoffFloor != analysis.DefaultCutoffFloor {
		t.Errorf("expected cutoff floor %g, got %g", analysis.DefaultCutoffFloor, cfg.Solver.CutoffFloor)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("symmetric", "reference")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Waveguide.Core != 1.5 || cfg.Waveguide.Substrate != 1.0 {
		t.Errorf("unexpected reference slab %s", cfg.Waveguide)
	}

	if GetPreset("symmetric", "nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("nonexistent", "reference") != nil {
		t.Error("expected nil for unknown family")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, family := range ListFamilies() {
		for _, name := range ListPresets(family) {
			cfg := GetPreset(family, name)
			if err := cfg.Waveguide.Validate(); err != nil {
				t.Errorf("%s/%s: %v", family, name, err)
			}
			if _, err := cfg.GetTheory(); err != nil {
				t.Errorf("%s/%s: %v", family, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("symmetric")
	if len(names) != 4 {
		t.Fatalf("expected 4 symmetric presets, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for unknown family")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slab.yaml")

	cfg := DefaultConfig()
	cfg.Waveguide.Cover = 1.0
	cfg.Waveguide.Polarization = guide.TM
	cfg.Theory = "ray"
	cfg.Solver.Samples = 500

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Waveguide != cfg.Waveguide {
		t.Errorf("waveguide = %+v, want %+v", loaded.Waveguide, cfg.Waveguide)
	}
	if loaded.Theory != "ray" || loaded.Solver.Samples != 500 {
		t.Errorf("unexpected loaded config %+v", loaded)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "waveguide:\n  core: 2.0\n  substrate: 1.45\n  thickness: 0.4\n  wavelength: 1.55\n  polarization: TE\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Waveguide.Core != 2.0 {
		t.Errorf("core = %g, want 2.0", cfg.Waveguide.Core)
	}
	if cfg.Theory != DefaultTheory {
		t.Errorf("theory = %q, want default", cfg.Theory)
	}
	if cfg.Solver.MaxIter <= 0 {
		t.Error("solver defaults lost")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAnalysisOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverConfig{Samples: 300, CutoffFloor: 0}

	opts := cfg.AnalysisOptions()
	if opts.Scan.Samples != 300 {
		t.Errorf("samples = %d, want 300", opts.Scan.Samples)
	}
	if opts.Scan.Tol <= 0 || opts.Scan.MaxIter <= 0 {
		t.Error("unset solver fields should fall back to defaults")
	}
	if opts.CutoffFloor != 0 {
		t.Errorf("cutoff floor = %g, want 0", opts.CutoffFloor)
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv(DataDirEnv, "/tmp/slabs")
	if got := DataDir(); got != "/tmp/slabs" {
		t.Errorf("DataDir() = %q", got)
	}
	t.Setenv(DataDirEnv, "")
	if got := DataDir(); got != DefaultDataDir {
		t.Errorf("DataDir() = %q, want default", got)
	}
}
