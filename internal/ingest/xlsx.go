package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateLayout is how date cells reach the engine, whatever the cell's
// display format
const dateLayout = "2006-01-02 15:04:05"

func readXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return &Table{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	for i, row := range rows {
		for j, cell := range row {
			if i >= len(raw) || j >= len(raw[i]) || raw[i][j] == cell {
				continue
			}
			if iso, ok := d.format(j+1, i+1, raw[i][j]); ok {
				row[j] = iso
			}
		}
	}

	return fromRows(rows), nil
}

// dateCells rewrites date-formatted numeric cells as ISO text. Display
// formats like "m/d/yy" lose the century, so the serial value is used.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func (d *dateCells) format(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	idx, err := d.f.GetCellStyle(d.sheet, name)
	if err != nil || !d.isDateStyle(idx) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

func (d *dateCells) isDateStyle(idx int) bool {
	if v, ok := d.styles[idx]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(idx); err == nil && style != nil {
		v = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	d.styles[idx] = v
	return v
}

// isDateNumFmt reports whether a number format shows a calendar date.
// Time-only formats are not dates.
func isDateNumFmt(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	case custom == nil:
		return false
	}

	// Quoted literals and bracketed sections like [Red] or [$-409] are not
	// date tokens
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range strings.ToLower(*custom) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	code := b.String()
	return strings.ContainsAny(code, "yd")
}
