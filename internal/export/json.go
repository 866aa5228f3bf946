package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/slabwave/internal/analysis"
	"github.com/san-kum/slabwave/internal/guide"
)

type Document struct {
	Spec    guide.Spec   `json:"spec"`
	Theory  guide.Theory `json:"theory"`
	V       float64      `json:"v"`
	Samples int          `json:"samples"`
	Poles   int          `json:"poles"`
	Skipped []string     `json:"skipped,omitempty"`
	Modes   []ModeRecord `json:"modes"`
}

// ModeRecord is a mode with its error flattened to text.
type ModeRecord struct {
	guide.Mode
	Error string `json:"error,omitempty"`
}

func NewDocument(r *analysis.Result) Document {
	doc := Document{
		Spec:    r.Spec,
		Theory:  r.Theory,
		V:       r.Spec.V(),
		Samples: r.Samples,
		Poles:   len(r.Poles),
		Modes:   make([]ModeRecord, len(r.Modes)),
	}
	for _, err := range r.Skipped {
		doc.Skipped = append(doc.Skipped, err.Error())
	}
	for i, m := range r.Modes {
		rec := ModeRecord{Mode: m}
		rec.Params = finiteParams(m.Params)
		if m.Err != nil {
			rec.Error = m.Err.Error()
		}
		doc.Modes[i] = rec
	}
	return doc
}

// finiteParams drops values JSON cannot represent; they only occur on
// modes that already carry an error.
func finiteParams(params guide.Params) guide.Params {
	out := make(guide.Params, 0, len(params))
	for _, p := range params {
		if finite(p.Value) {
			out = append(out, p)
		}
	}
	return out
}

// WriteJSON encodes one document per result as an indented JSON array.
func WriteJSON(w io.Writer, results ...*analysis.Result) error {
	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = NewDocument(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
