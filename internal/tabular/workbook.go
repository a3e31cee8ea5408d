package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook parses an XLSX workbook into a Sheet. sheetName selects the
// worksheet; empty means the workbook's first sheet. The first row with any
// non-empty cell becomes the header row and everything below it the data rows.
func ReadWorkbook(data []byte, sheetName string) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, badUpload("open workbook: %v", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, badUpload("read sheet %q: %v", sheetName, err)
	}

	// Skip leading blank rows; spreadsheets often carry empty padding rows
	// above the real header.
	start := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, badUpload("sheet %q has no header row", sheetName)
	}

	return &Sheet{Headers: rows[start], Rows: rows[start+1:]}, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
