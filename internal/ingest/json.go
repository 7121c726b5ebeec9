package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
)

// readJSON decodes an array of objects. Objects carry no column order, so
// columns are the union of keys in sorted order.
func readJSON(r io.Reader) (*Table, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	t := &Table{Records: make([]applicant.Record, 0, len(rows))}
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				t.Columns = append(t.Columns, k)
			}
		}
		t.Records = append(t.Records, applicant.Record(row))
	}
	slices.Sort(t.Columns)

	return t, nil
}
