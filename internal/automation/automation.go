package automation

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/config"
	"github.com/san-kum/slabwave/internal/guide"
	"github.com/san-kum/slabwave/internal/storage"
)

// Scenario is a scripted list of analyses
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep names a waveguide by preset (family/name), inline, or
// both. Non-zero inline fields override the preset (or the default
// waveguide), so an inline block may set only the thickness. An empty
// theory keeps the preset's, and an empty polarization list keeps the
// waveguide's.
type ScenarioStep struct {
	Preset        string               `yaml:"preset"`
	Waveguide     *guide.Spec          `yaml:"waveguide"`
	Theory        string               `yaml:"theory"`
	Polarizations []guide.Polarization `yaml:"polarizations"`
	Save          bool                 `yaml:"save"`
}

// StepResult is one completed analysis and its run id when saved.
type StepResult struct {
	Step   int
	Result *analysis.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

func (s ScenarioStep) resolve() (guide.Spec, guide.Theory, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		family, name, _ := strings.Cut(s.Preset, "/")
		p := config.GetPreset(family, name)
		if p == nil {
			return guide.Spec{}, "", fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg = p
	}

	spec := cfg.Waveguide
	if s.Waveguide != nil {
		spec = merge(spec, *s.Waveguide)
	}
	theory := cfg.Theory
	if s.Theory != "" {
		theory = s.Theory
	}
	th, err := guide.ParseTheory(theory)
	return spec, th, err
}

// merge copies the set fields of over onto base.
func merge(base, over guide.Spec) guide.Spec {
	if over.Core != 0 {
		base.Core = over.Core
	}
	if over.Substrate != 0 {
		base.Substrate = over.Substrate
	}
	if over.Cover != 0 {
		base.Cover = over.Cover
	}
	if over.Thickness != 0 {
		base.Thickness = over.Thickness
	}
	if over.Wavelength != 0 {
		base.Wavelength = over.Wavelength
	}
	if over.Polarization != "" {
		base.Polarization = over.Polarization
	}
	return base
}

// RunScenario executes all steps in order. st may be nil when no step
// saves. A failing step stops the scenario; completed steps are returned.
func RunScenario(ctx context.Context, scenario *Scenario, opts analysis.Options, st *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		spec, theory, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		pols := step.Polarizations
		if len(pols) == 0 {
			pols = []guide.Polarization{spec.Polarization}
		}

		logger.Printf("step %d/%d: %s %s", i+1, len(scenario.Steps), theory, spec)
		runs, err := analysis.AnalyzeAll(ctx, spec, []guide.Theory{theory}, pols, opts)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		for _, r := range runs {
			sr := StepResult{Step: i + 1, Result: r}
			if step.Save {
				if st == nil {
					return results, fmt.Errorf("step %d: save requested without a store", i+1)
				}
				if sr.RunID, err = st.Save(r); err != nil {
					return results, fmt.Errorf("step %d save: %w", i+1, err)
				}
			}
			results = append(results, sr)
		}
	}

	return results, nil
}
