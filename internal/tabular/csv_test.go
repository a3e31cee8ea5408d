package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveler-app/backend/internal/domain"
	"github.com/traveler-app/backend/internal/tabular"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Park,City,State\nBlue Camp,Austin,TX\n", ','},
		{"semicolon", "Park;City;State\nBlue Camp;Austin;TX\n", ';'},
		{"tab", "Park\tCity\tState\nBlue Camp\tAustin\tTX\n", '\t'},
		{"quoted commas do not fool the sniffer", "Park;Notes\nBlue Camp;\"a, b, c, d\"\n", ';'},
		{"no delimiter falls back to comma", "just a line of text\n", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabular.SniffDelimiter([]byte(tt.data)))
		})
	}
}

func TestReadCSV_SniffedDelimiter(t *testing.T) {
	sheet, err := tabular.ReadCSV([]byte("Park;City\nBlue Camp;Austin\n"), 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"Park", "City"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, []string{"Blue Camp", "Austin"}, sheet.Rows[0])
}

func TestReadCSV_ExplicitDelimiterWins(t *testing.T) {
	// Content full of semicolons, but the caller selected comma.
	sheet, err := tabular.ReadCSV([]byte("a;b,c;d\n1;2,3;4\n"), ',')

	require.NoError(t, err)
	assert.Equal(t, []string{"a;b", "c;d"}, sheet.Headers)
}

func TestReadCSV_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Park,City\nBlue Camp,Austin\n")...)
	sheet, err := tabular.ReadCSV(data, 0)

	require.NoError(t, err)
	assert.Equal(t, "Park", sheet.Headers[0], "BOM must not stick to the first header")
}

func TestReadCSV_RaggedRows(t *testing.T) {
	sheet, err := tabular.ReadCSV([]byte("Park,City,State\nBlue Camp,Austin\n"), 0)

	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "", sheet.Cell(sheet.Rows[0], 2), "missing trailing cell reads as empty")
}

func TestReadCSV_EmptyFileIsBatchFatal(t *testing.T) {
	_, err := tabular.ReadCSV(nil, 0)

	assert.ErrorIs(t, err, domain.ErrBadUpload)
}

func TestReadCSV_NonUTF8IsBatchFatal(t *testing.T) {
	_, err := tabular.ReadCSV([]byte{0xFF, 0xFE, 0x00, 0x41}, 0)

	assert.ErrorIs(t, err, domain.ErrBadUpload)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	// A .csv filename routes to the text reader regardless of delimiter.
	sheet, err := tabular.Read("stays.csv", []byte("Park,City\nBlue Camp,Austin\n"), 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Park", "City"}, sheet.Headers)

	// A .xlsx filename routes to the workbook reader; garbage bytes are a
	// batch-level failure, not a CSV parse attempt.
	_, err = tabular.Read("stays.xlsx", []byte("Park,City\n"), 0, "")
	assert.ErrorIs(t, err, domain.ErrBadUpload)
}

func TestSheet_Cell(t *testing.T) {
	sheet := &tabular.Sheet{Headers: []string{"a", "b"}}
	row := []string{" x ", "y"}

	assert.Equal(t, "x", sheet.Cell(row, 0), "cells are trimmed")
	assert.Equal(t, "", sheet.Cell(row, -1), "unresolved column reads as empty")
	assert.Equal(t, "", sheet.Cell(row, 5))
}
