// Package tabular reads uploaded tabular files — delimited text or spreadsheet
// workbooks — into a uniform Sheet of header row plus data rows.
//
// The package deals only with file formats. Header-to-field resolution, value
// parsing, and all import semantics live in the service layer.
package tabular

import (
	"fmt"
	"strings"

	"github.com/traveler-app/backend/internal/domain"
)

// Sheet is one parsed tabular upload: the header row and every data row below
// it, all as raw cell strings. Rows may be ragged; Cell pads missing columns.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value of column col in row, or "" when the row is shorter
// than the header. Negative col means "column not present" and also yields "".
func (s *Sheet) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// workbookExtensions lists the upload filename extensions routed to the
// spreadsheet reader. Everything else is treated as delimited text.
var workbookExtensions = []string{".xlsx", ".xlsm", ".xltm", ".xltx"}

// Read parses an uploaded file into a Sheet, dispatching on the filename
// extension. delimiter and sheetName are optional overrides; zero values mean
// "sniff the delimiter" and "first sheet" respectively.
//
// All failures wrap domain.ErrBadUpload: a file that cannot be read is a
// batch-level fatal error, never a per-row one.
func Read(filename string, data []byte, delimiter rune, sheetName string) (*Sheet, error) {
	lower := strings.ToLower(filename)
	for _, ext := range workbookExtensions {
		if strings.HasSuffix(lower, ext) {
			return ReadWorkbook(data, sheetName)
		}
	}
	return ReadCSV(data, delimiter)
}

func badUpload(format string, args ...any) error {
	return fmt.Errorf("tabular: "+format+": %w", append(args, domain.ErrBadUpload)...)
}
