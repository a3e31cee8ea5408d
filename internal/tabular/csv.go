package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"
)

// sniffWindow is how much of the upload SniffDelimiter examines.
const sniffWindow = 2048

// candidateDelimiters are tried in order; on a tie the earlier one wins,
// so a plain comma-separated file never sniffs as something exotic.
var candidateDelimiters = []rune{',', ';', '\t'}

// SniffDelimiter guesses the delimiter of a delimited-text upload by counting
// candidate occurrences in the first ~2KB, ignoring characters inside double
// quotes. Returns ',' for content with no recognizable delimiter at all.
func SniffDelimiter(data []byte) rune {
	sample := data
	if len(sample) > sniffWindow {
		sample = sample[:sniffWindow]
	}

	counts := map[rune]int{}
	inQuotes := false
	for _, r := range string(sample) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		default:
			counts[r]++
		}
	}

	best := ','
	bestCount := 0
	for _, cand := range candidateDelimiters {
		if counts[cand] > bestCount {
			best = cand
			bestCount = counts[cand]
		}
	}
	return best
}

// ReadCSV parses delimited text into a Sheet. A zero delimiter means sniff it
// from the content. The first record is the header row.
func ReadCSV(data []byte, delimiter rune) (*Sheet, error) {
	data = stripBOM(data)
	if !utf8.Valid(data) {
		return nil, badUpload("file content is not valid UTF-8 text")
	}
	if delimiter == 0 {
		delimiter = SniffDelimiter(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	// Uploads are loosely structured; ragged rows are handled downstream.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, badUpload("empty file")
		}
		return nil, badUpload("read header row: %v", err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, badUpload("read row: %v", err)
		}
		rows = append(rows, record)
	}

	return &Sheet{Headers: headers, Rows: rows}, nil
}

// stripBOM removes a leading UTF-8 byte order mark, common in CSV files
// exported from Excel on Windows.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
