package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffEmail,Degree,Degree,Age\n" +
		"a@example.com,BSc,MSc,2001\n" +
		",,,\n" +
		"b@example.com,,\n"

	tbl, err := Read(strings.NewReader(input), FormatCSV, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "Degree", "Degree (2)", "Age"}, tbl.Columns)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, "MSc", tbl.Records[0].String("Degree (2)"))
	assert.Equal(t, "2001", tbl.Records[0].String("Age"))

	_, hasAge := tbl.Records[1]["Age"]
	assert.False(t, hasAge)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\nx\"y,1\n"), FormatCSV, Options{})
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applicants.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Email", "Age", "Country of Citizenship"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"a@example.com", 2001, "Canada"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"b@example.com", "17"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadFile(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Email", "Age", "Country of Citizenship"}, tbl.Columns)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, "2001", tbl.Records[0].String("Age"))
	assert.Equal(t, "Canada", tbl.Records[0].String("Country of Citizenship"))
	assert.Equal(t, "", tbl.Records[1].String("Country of Citizenship"))
}

func TestReadXLSX_DateCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Email", "Date of Birth", "Date Created", "Score"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "a@example.com"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", time.Date(2001, time.May, 13, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", time.Date(2025, time.March, 4, 14, 30, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "D2", 45.5))

	custom := "dd.mm.yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "b@example.com"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", time.Date(1998, time.December, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellStyle("Sheet1", "B3", "B3", style))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)

	assert.Equal(t, "2001-05-13 00:00:00", tbl.Records[0].String("Date of Birth"))
	assert.Equal(t, "2025-03-04 14:30:00", tbl.Records[0].String("Date Created"))
	assert.Equal(t, "45.5", tbl.Records[0].String("Score"))
	assert.Equal(t, "1998-12-01 00:00:00", tbl.Records[1].String("Date of Birth"))
}

func TestIsDateNumFmt(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name   string
		id     int
		custom *string
		want   bool
	}{
		{"general", 0, nil, false},
		{"builtin date", 14, nil, true},
		{"builtin datetime", 22, nil, true},
		{"builtin time only", 20, nil, false},
		{"decimal", 2, nil, false},
		{"custom date", 0, str("yyyy-mm-dd"), true},
		{"custom locale date", 0, str("[$-409]d-mmm-yy"), true},
		{"custom quoted text", 0, str(`0 "days"`), false},
		{"custom time", 0, str("hh:mm:ss"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateNumFmt(tt.id, tt.custom))
		})
	}
}

func TestUniqueHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"repeats", []string{"A", "A", "A"}, []string{"A", "A (2)", "A (3)"}},
		{"clash with generated", []string{"A", "A (2)", "A"}, []string{"A", "A (2)", "A (3)"}},
		{"blank", []string{"", "Column 1"}, []string{"Column 1", "Column 1 (2)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueHeaders(tt.header))
		})
	}
}

func TestReadXLSX_MissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadFile(path, Options{Sheet: "Responses"})
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	input := `[{"Email": "a@example.com", "Age": 2001}, {"Email": "b@example.com", "Degree": null}]`

	tbl, err := Read(strings.NewReader(input), FormatJSON, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Age", "Degree", "Email"}, tbl.Columns)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, "2001", tbl.Records[0].String("Age"))
	assert.Equal(t, "", tbl.Records[1].String("Degree"))
}

func TestReadJSON_NotAnArray(t *testing.T) {
	_, err := Read(strings.NewReader(`{"Email": "a@example.com"}`), FormatJSON, Options{})
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"intake.csv", FormatCSV, false},
		{"Intake.XLSX", FormatXLSX, false},
		{"dump.json", FormatJSON, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
