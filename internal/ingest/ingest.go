// Package ingest decodes applicant spreadsheets into raw records keyed by
// column header.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
)

// ErrUnsupportedFormat is returned for file types with no decoder
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format identifies an input encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// Table is a decoded sheet. Columns keeps the header order for export.
type Table struct {
	Columns []string
	Records []applicant.Record
}

// Options controls decoding
type Options struct {
	Sheet string // xlsx sheet name; the first sheet when empty
}

// ParseFormat resolves a format name or file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ReadFile opens and decodes path, detecting the format from its extension
func ReadFile(path string, opts Options) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	t, err := Read(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Read decodes r in the given format
func Read(r io.Reader, format Format, opts Options) (*Table, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r, opts.Sheet)
	case FormatJSON:
		return readJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// fromRows builds a table from a header row and data rows. Repeated headers
// get " (2)", " (3)" suffixes; blank rows are skipped; short rows leave the
// missing columns absent.
func fromRows(rows [][]string) *Table {
	t := &Table{}
	if len(rows) == 0 {
		return t
	}

	t.Columns = uniqueHeaders(rows[0])
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(applicant.Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// uniqueHeaders names repeated headers "A (2)", "A (3)" and so on, skipping
// any name already taken by an earlier column
func uniqueHeaders(header []string) []string {
	used := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		name := h
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s (%d)", h, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
