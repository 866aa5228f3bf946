package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/solver"
)

const (
	DefaultCore       = 1.5
	DefaultSubstrate  = 1.45
	DefaultThickness  = 5.0
	DefaultWavelength = 1.55
	DefaultTheory     = "wave"
	DefaultDataDir    = "./data"

	// DataDirEnv overrides the run storage directory.
	DataDirEnv = "SLABWAVE_DATA"
)

type Config struct {
	Waveguide guide.Spec   `yaml:"waveguide"`
	Theory    string       `yaml:"theory"`
	Solver    SolverConfig `yaml:"solver"`
}

type SolverConfig struct {
	Samples     int     `yaml:"samples"`
	Tol         float64 `yaml:"tol"`
	MaxIter     int     `yaml:"max_iter"`
	EdgeEps     float64 `yaml:"edge_eps"`
	CutoffFloor float64 `yaml:"cutoff_floor"`
}

func DefaultConfig() *Config {
	scan := solver.DefaultOptions()
	return &Config{
		Waveguide: guide.Spec{
			Core:         DefaultCore,
			Substrate:    DefaultSubstrate,
			Thickness:    DefaultThickness,
			Wavelength:   DefaultWavelength,
			Polarization: guide.TE,
		},
		Theory: DefaultTheory,
		Solver: SolverConfig{
			Samples:     scan.Samples,
			Tol:         scan.Tol,
			MaxIter:     scan.MaxIter,
			EdgeEps:     scan.EdgeEps,
			CutoffFloor: analysis.DefaultCutoffFloor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetTheory() (guide.Theory, error) {
	return guide.ParseTheory(c.Theory)
}

// AnalysisOptions converts the solver section, falling back to defaults
// for unset fields.
func (c *Config) AnalysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	if c.Solver.Samples > 0 {
		opts.Scan.Samples = c.Solver.Samples
	}
	if c.Solver.Tol > 0 {
		opts.Scan.Tol = c.Solver.Tol
	}
	if c.Solver.MaxIter > 0 {
		opts.Scan.MaxIter = c.Solver.MaxIter
	}
	if c.Solver.EdgeEps > 0 {
		opts.Scan.EdgeEps = c.Solver.EdgeEps
	}
	if c.Solver.CutoffFloor >= 0 {
		opts.CutoffFloor = c.Solver.CutoffFloor
	}
	return opts
}

// DataDir loads .env if present and returns the run storage directory.
func DataDir() string {
	_ = godotenv.Load()
	if dir := strings.TrimSpace(os.Getenv(DataDirEnv)); dir != "" {
		return dir
	}
	return DefaultDataDir
}
