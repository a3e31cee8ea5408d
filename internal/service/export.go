package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traveler-app/backend/internal/domain"
	"github.com/traveler-app/backend/internal/repo"
)

// ExportColumns is the fixed header row of the canonical CSV export, the
// round-trip counterpart to the import engine's field set.
var ExportColumns = []string{
	"Park", "City", "State", "Check in", "Leave", "#Nts",
	"Rate/nt", "Total", "Fees", "Paid?", "Rating", "Site", "Notes",
}

// ExportService renders the full record set to the canonical CSV and
// optionally persists the bytes under a sandboxed exports directory.
type ExportService struct {
	stays      repo.StayRepo
	exportsDir string
}

// NewExportService constructs an ExportService. exportsDir is the base
// directory for saved exports; SaveExport refuses to write outside it.
func NewExportService(stays repo.StayRepo, exportsDir string) *ExportService {
	return &ExportService{stays: stays, exportsDir: exportsDir}
}

// ExportCSV renders all stays — ordered by check-in descending then id
// descending — as CSV bytes.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	stays, err := s.stays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.ExportCSV: %w", err)
	}
	return RenderCSV(stays), nil
}

// RenderCSV serializes stays in the given order to the fixed export schema.
// Formatting rules: dates as YYYY-MM-DD or empty, money to 2 decimal places
// or empty, paid as Yes/No, state upper-cased and truncated to 2 characters,
// rating as a plain integer or empty.
func RenderCSV(stays []domain.Stay) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	w.Write(ExportColumns)
	for _, s := range stays {
		//nolint:errcheck
		w.Write([]string{
			s.Park,
			s.City,
			domain.NormalizeState(s.State),
			formatDate(s.CheckIn),
			formatDate(s.LeaveDate),
			strconv.Itoa(s.Nights),
			formatMoney(s.PricePerNight),
			formatMoney(s.Total),
			formatMoney(s.Fees),
			formatPaid(s.Paid),
			formatRating(s.Rating),
			s.Site,
			s.Notes,
		})
	}
	w.Flush()
	return buf.Bytes()
}

// SaveExport writes data under the exports directory at subdir/filename.
// Both components are sanitized to a restricted character set and the final
// path is resolved to guarantee containment; attempts to escape are rejected
// with domain.ErrValidation before any filesystem write.
// Returns the absolute path written.
func (s *ExportService) SaveExport(subdir, filename string, data []byte) (string, error) {
	if s.exportsDir == "" {
		return "", fmt.Errorf("service.ExportService.SaveExport: no exports directory configured: %w", domain.ErrValidation)
	}

	if filename == "" {
		filename = "stays_export.csv"
	}
	filename = sanitizePathComponent(filename)
	if filename == "" || strings.Trim(filename, ".") == "" {
		return "", fmt.Errorf("service.ExportService.SaveExport: invalid filename: %w", domain.ErrValidation)
	}

	base, err := filepath.Abs(s.exportsDir)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.SaveExport: %w", err)
	}

	parts := []string{base}
	for _, seg := range strings.FieldsFunc(subdir, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg = sanitizePathComponent(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	parts = append(parts, filename)
	full := filepath.Join(parts...)

	// Join cleans the path, so any surviving ".." collapses here; reject
	// anything that resolved outside the base directory.
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("service.ExportService.SaveExport: path escapes exports directory: %w", domain.ErrValidation)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("service.ExportService.SaveExport: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("service.ExportService.SaveExport: %w", err)
	}
	return full, nil
}

// sanitizePathComponent keeps letters, digits, dot, dash, and underscore;
// every other rune is dropped.
func sanitizePathComponent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return -1
	}, s)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func formatPaid(paid bool) string {
	if paid {
		return "Yes"
	}
	return "No"
}

func formatRating(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
