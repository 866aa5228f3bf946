package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/slabwave/internal/guide"
)

var fixedColumns = []string{"m", "theory", "polarization", "root", "residual", "error"}

// paramColumns returns the derived parameter columns of modes, taken from
// the first mode that has any. Modes of one analysis share a layout.
func paramColumns(modes []guide.Mode) guide.Params {
	for _, m := range modes {
		if len(m.Params) > 0 {
			return m.Params
		}
	}
	return nil
}

func columnName(p guide.Param) string {
	if p.Unit == "" {
		return p.Name
	}
	return fmt.Sprintf("%s [%s]", p.Name, p.Unit)
}

func parseColumn(col string) guide.Param {
	name, rest, ok := strings.Cut(col, " [")
	if !ok {
		return guide.Param{Name: col}
	}
	return guide.Param{Name: name, Unit: strings.TrimSuffix(rest, "]")}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteModesCSV writes one row per mode with the fixed columns followed
// by the derived parameters.
func WriteModesCSV(w io.Writer, modes []guide.Mode) error {
	cw := csv.NewWriter(w)

	layout := paramColumns(modes)
	header := append([]string(nil), fixedColumns...)
	for _, p := range layout {
		header = append(header, columnName(p))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range modes {
		errText := ""
		if m.Err != nil {
			errText = m.Err.Error()
		}
		row := []string{
			strconv.Itoa(m.Index),
			string(m.Theory),
			string(m.Polarization),
			formatFloat(m.Root),
			formatFloat(m.Residual),
			errText,
		}
		for _, p := range layout {
			v, ok := m.Params.Value(p.Name)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadModesCSV parses the output of WriteModesCSV. Stored errors come back
// as plain errors carrying the original message.
func ReadModesCSV(r io.Reader) ([]guide.Mode, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []guide.Mode{}, nil
	}

	header := records[0]
	if len(header) < len(fixedColumns) {
		return nil, fmt.Errorf("export: modes csv header has %d columns", len(header))
	}
	layout := make([]guide.Param, 0, len(header)-len(fixedColumns))
	for _, col := range header[len(fixedColumns):] {
		layout = append(layout, parseColumn(col))
	}

	modes := make([]guide.Mode, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < len(fixedColumns) {
			continue
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", line+1, err)
		}
		root, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", line+1, err)
		}
		residual, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("export: row %d: %w", line+1, err)
		}

		m := guide.Mode{
			Index:        idx,
			Root:         root,
			Residual:     residual,
			Theory:       guide.Theory(record[1]),
			Polarization: guide.Polarization(record[2]),
		}
		if record[5] != "" {
			m.Err = errors.New(record[5])
		}
		for j, p := range layout {
			col := len(fixedColumns) + j
			if col >= len(record) || record[col] == "" {
				continue
			}
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				continue
			}
			p.Value = v
			m.Params = append(m.Params, p)
		}
		modes = append(modes, m)
	}
	return modes, nil
}
