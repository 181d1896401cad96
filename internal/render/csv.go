package render

import (
	"bytes"
	"encoding/csv"

	"github.com/Guliveer/hwinfo/internal/models"
)

var csvHeader = []string{"component", "field", "value"}

// reportComponent is the component column of rows that belong to the
// report itself rather than to a component.
const reportComponent = "report"

// renderCSV writes one row per leaf value. Nested fields are qualified with
// dots and sequence items with [index], e.g. disks[0].partitions[1].name.
func renderCSV(rep *models.Report, cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, s := range rep.Sections {
		for _, l := range s.Record.Leaves() {
			if err := w.Write([]string{string(s.Component), l.Path, formatScalar(l.Value)}); err != nil {
				return nil, err
			}
		}
	}
	if ts, ok := timestamp(rep, cfg); ok {
		if err := w.Write([]string{reportComponent, "timestamp", ts}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
