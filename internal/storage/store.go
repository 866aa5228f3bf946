package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/export"
	"github.com/san-kum/slabwave/internal/guide"
)

type Store struct {
	baseDir string
	now     func() time.Time
	create  func(name string) (io.WriteCloser, error)
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now, create: createFile}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeFile writes one run file. A failed close fails the write.
func (s *Store) writeFile(name string, write func(io.Writer) error) error {
	f, err := s.create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string       `json:"id"`
	Spec      guide.Spec   `json:"spec"`
	Theory    guide.Theory `json:"theory"`
	Timestamp time.Time    `json:"timestamp"`
	V         float64      `json:"v"`
	Samples   int          `json:"samples"`
	Modes     int          `json:"modes"`
	Valid     int          `json:"valid"`
	Poles     int          `json:"poles"`
	Skipped   int          `json:"skipped"`
	// Summary holds run-level figures such as the fundamental effective index.
	Summary map[string]float64 `json:"summary"`
}

func (s *Store) Save(result *analysis.Result) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%s_%d", result.Theory, result.Spec.Polarization, ts.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Spec:      result.Spec,
		Theory:    result.Theory,
		Timestamp: ts,
		V:         result.Spec.V(),
		Samples:   result.Samples,
		Modes:     len(result.Modes),
		Valid:     guide.CountValid(result.Modes),
		Poles:     len(result.Poles),
		Skipped:   len(result.Skipped),
		Summary:   summarize(result),
	}

	err := s.writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = s.writeFile(filepath.Join(runDir, "modes.csv"), func(w io.Writer) error {
		return export.WriteModesCSV(w, result.Modes)
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

func summarize(result *analysis.Result) map[string]float64 {
	summary := map[string]float64{
		"expected_modes": float64(result.Spec.ExpectedModes()),
	}
	valid := result.Valid()
	if len(valid) == 0 {
		return summary
	}
	summary["n_eff_fundamental"] = valid[0].EffectiveIndex()
	summary["n_eff_highest_order"] = valid[len(valid)-1].EffectiveIndex()
	if c, ok := valid[0].Params.Value(guide.ParamConfinement); ok {
		summary["confinement_fundamental"] = c
	}
	return summary
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadModes(runID string) ([]guide.Mode, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "modes.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return export.ReadModesCSV(file)
}
