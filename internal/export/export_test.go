package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
)

var sampleModes = []guide.Mode{
	{
		Index: 0, Root: 0.123456789012345, Residual: 1e-13, Theory: guide.Wave, Polarization: guide.TE,
		Params: guide.Params{{Name: "n_eff", Value: 1.4987}, {Name: "beta", Value: 6.07, Unit: "1/len"}},
	},
	{
		Index: 1, Root: 2.5, Residual: 0, Theory: guide.Wave, Polarization: guide.TE,
		Params: guide.Params{{Name: "n_eff", Value: 1.2}, {Name: "beta", Value: 4.8, Unit: "1/len"}},
		Err:    errors.New("mode 1: out of bounds"),
	},
}

func TestModesCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModesCSV(&buf, sampleModes); err != nil {
		t.Fatalf("write: %v", err)
	}

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if header != "m,theory,polarization,root,residual,error,n_eff,beta [1/len]" {
		t.Errorf("unexpected header %q", header)
	}

	modes, err := ReadModesCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(modes) != 2 {
		t.Fatalf("expected 2 modes, got %d", len(modes))
	}
	if modes[0].Root != sampleModes[0].Root {
		t.Errorf("root lost precision: %v", modes[0].Root)
	}
	if modes[0].Err != nil {
		t.Errorf("unexpected error on mode 0: %v", modes[0].Err)
	}
	if modes[1].Err == nil || modes[1].Err.Error() != "mode 1: out of bounds" {
		t.Errorf("error not restored: %v", modes[1].Err)
	}
	if modes[1].Params[1].Unit != "1/len" || modes[1].Params[1].Value != 4.8 {
		t.Errorf("param not restored: %+v", modes[1].Params[1])
	}
}

func TestModesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModesCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	modes, err := ReadModesCSV(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(modes) != 0 {
		t.Errorf("expected no modes, got %d", len(modes))
	}
}

func TestWriteJSON(t *testing.T) {
	r := &analysis.Result{
		Spec:    guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE},
		Theory:  guide.Wave,
		Modes:   sampleModes,
		Samples: 2000,
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("write: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	modes := docs[0]["modes"].([]any)
	second := modes[1].(map[string]any)
	if second["error"] != "mode 1: out of bounds" {
		t.Errorf("error not flattened: %v", second["error"])
	}
	if second["m"].(float64) != 1 {
		t.Errorf("mode index = %v", second["m"])
	}
}

func TestPlotToSVG(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{1, 2, math.NaN(), 2, 1}
	svg := PlotToSVG([]Series{{Name: "f", Xs: xs, Ys: ys}}, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if strings.Count(svg, "M") < 2 {
		t.Error("NaN sample should break the path")
	}
	if !strings.Contains(svg, palette[0]) {
		t.Error("default color not applied")
	}
}

func TestPlotToSVG_NoData(t *testing.T) {
	if svg := PlotToSVG([]Series{{Xs: []float64{math.NaN()}, Ys: []float64{1}}}, 10, 10); svg != "" {
		t.Error("expected empty output without finite points")
	}
}

func TestWriteJSON_DropsNonFiniteParams(t *testing.T) {
	r := &analysis.Result{
		Spec:   guide.Spec{Core: 1.5, Substrate: 1.45, Thickness: 5, Wavelength: 1.55, Polarization: guide.TE},
		Theory: guide.Wave,
		Modes: []guide.Mode{{
			Params: guide.Params{{Name: "U", Value: 4}, {Name: "W", Value: math.NaN()}},
			Err:    errors.New("W not finite"),
		}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), `"W"`) {
		t.Error("NaN parameter should be dropped")
	}
}
