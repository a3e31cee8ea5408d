package domain

import "fmt"

// DedupeMode controls what happens when an imported row's natural key matches
// an existing record.
type DedupeMode string

const (
	// DedupeSkip leaves the existing record alone and skips the row.
	DedupeSkip DedupeMode = "skip"
	// DedupeUpdate overwrites the existing record's mutable fields from the row.
	DedupeUpdate DedupeMode = "update"
	// DedupeNone inserts a new record even when a match exists, for
	// intentionally repeated stays.
	DedupeNone DedupeMode = "none"
)

// ParseDedupeMode validates a dedupe mode string. The empty string defaults
// to DedupeSkip.
func ParseDedupeMode(s string) (DedupeMode, error) {
	switch DedupeMode(s) {
	case "":
		return DedupeSkip, nil
	case DedupeSkip, DedupeUpdate, DedupeNone:
		return DedupeMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown dedupe mode %q", ErrValidation, s)
}

// ImportOptions carries the request-level options for one import run.
// The core reads nothing from the environment; everything it needs arrives here.
type ImportOptions struct {
	// Delimiter forces a CSV delimiter. Zero means sniff from the content.
	Delimiter rune
	// Sheet names the workbook sheet to read. Empty means the first sheet.
	Sheet string
	// DryRun runs all parsing, normalization, and dedup decisioning without
	// writing any persisted changes.
	DryRun bool
	// AutoGeocode enables the geocode fallback for rows missing coordinates.
	// Explicit opt-in: each lookup is a blocking network call.
	AutoGeocode bool
	// Dedupe selects the duplicate-row disposition. Defaults to DedupeSkip.
	Dedupe DedupeMode
}

// SkippedRow is a snapshot of one input row excluded from persistence,
// kept in the original column order with the reason it was skipped.
type SkippedRow struct {
	Row    []string `json:"row"`
	Reason string   `json:"reason"`
}

// Skip reasons reported by the import engine.
const (
	SkipReasonEmpty     = "empty city/state/dates"
	SkipReasonDuplicate = "duplicate"
)

// ImportReport summarizes one import run.
type ImportReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`

	// SkippedRows lists every excluded row with its reason. All skip reasons
	// are user-visible here, not just logged.
	SkippedRows []SkippedRow `json:"skipped_rows,omitempty"`

	// SkipReportPath references the CSV artifact written for skipped rows.
	// Empty for dry runs and for runs with no skipped rows.
	SkipReportPath string `json:"skip_report,omitempty"`
}
