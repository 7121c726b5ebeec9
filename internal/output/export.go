package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
)

// Computed column names appended after the input columns
const (
	ColumnAge      = "ComputedAge"
	ColumnScore    = "Score"
	ColumnCategory = "Category"
	ColumnReasons  = "Reasons"
)

// ComputedColumns lists the columns the engine adds to every row
var ComputedColumns = []string{ColumnAge, ColumnScore, ColumnCategory, ColumnReasons}

// ExportFormat identifies an export encoding
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportJSON ExportFormat = "json"
)

const sheetName = "Applicants"

// ParseExportFormat resolves a format name or file extension
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "csv":
		return ExportCSV, nil
	case "xlsx":
		return ExportXLSX, nil
	case "json":
		return ExportJSON, nil
	default:
		return "", fmt.Errorf("unknown export format: %s (use csv, xlsx or json)", s)
	}
}

// ExportColumns returns the input columns followed by the computed columns.
// Input columns that clash with a computed name are replaced.
func ExportColumns(input []string) []string {
	out := make([]string, 0, len(input)+len(ComputedColumns))
	for _, c := range input {
		if !slices.Contains(ComputedColumns, c) {
			out = append(out, c)
		}
	}
	return append(out, ComputedColumns...)
}

// Cell returns the text of one column for an applicant
func Cell(a applicant.Scored, column string) string {
	switch column {
	case ColumnAge:
		return a.AgeText()
	case ColumnScore:
		return strconv.Itoa(a.Score)
	case ColumnCategory:
		return a.Category.Label()
	case ColumnReasons:
		return a.ReasonText()
	default:
		return a.Record.String(column)
	}
}

// Export writes applicants with the given columns
func Export(w io.Writer, format ExportFormat, columns []string, applicants []applicant.Scored) error {
	switch format {
	case ExportCSV:
		return exportCSV(w, columns, applicants)
	case ExportXLSX:
		return exportXLSX(w, columns, applicants)
	case ExportJSON:
		return exportJSON(w, columns, applicants)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// ExportFile writes applicants to path, picking the format from its extension
func ExportFile(path string, columns []string, applicants []applicant.Scored) error {
	format, err := ParseExportFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}

	if err := Export(f, format, columns, applicants); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}

func exportCSV(w io.Writer, columns []string, applicants []applicant.Scored) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return err
	}

	row := make([]string, len(columns))
	for _, a := range applicants {
		for i, c := range columns {
			row[i] = Cell(a, c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportXLSX(w io.Writer, columns []string, applicants []applicant.Scored) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return err
	}

	for r, a := range applicants {
		row := make([]any, len(columns))
		for i, c := range columns {
			switch {
			case c == ColumnScore:
				row[i] = a.Score
			case c == ColumnAge && a.Age != nil:
				row[i] = *a.Age
			default:
				row[i] = Cell(a, c)
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}

func exportJSON(w io.Writer, columns []string, applicants []applicant.Scored) error {
	rows := make([]map[string]string, 0, len(applicants))
	for _, a := range applicants {
		row := make(map[string]string, len(columns))
		for _, c := range columns {
			row[c] = Cell(a, c)
		}
		rows = append(rows, row)
	}
	return JSONTo(w, rows)
}
