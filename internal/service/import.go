package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/traveler-app/backend/internal/domain"
	"github.com/traveler-app/backend/internal/geocode"
	"github.com/traveler-app/backend/internal/repo"
	"github.com/traveler-app/backend/internal/tabular"
)

// ImportService drives one import run: it reads the upload into a sheet,
// binds headers, builds a candidate record per row, decides each row's fate
// against the dedupe index, optionally geocodes, and persists.
//
// Row-level problems never escalate: an unparsable value degrades the record,
// a skip condition records the row and moves on. Only structural file problems
// (wrapped domain.ErrBadUpload) and storage failures abort the run.
type ImportService struct {
	stays      repo.StayRepo
	geocoder   geocode.Geocoder
	reportsDir string

	// now stamps skip-report filenames; overridable in tests.
	now func() time.Time
}

// NewImportService constructs an ImportService. geocoder may be nil when
// auto-geocode will never be requested; reportsDir is where skip-report CSV
// artifacts are written (empty disables the artifact, counts still report).
func NewImportService(stays repo.StayRepo, geocoder geocode.Geocoder, reportsDir string) *ImportService {
	return &ImportService{
		stays:      stays,
		geocoder:   geocoder,
		reportsDir: reportsDir,
		now:        time.Now,
	}
}

// rowCandidate is one input row assembled into a candidate stay, plus the
// address/zip cells that exist only to feed the geocode query builder.
type rowCandidate struct {
	stay    domain.Stay
	address string
	zip     string
}

// Import runs the whole import for one uploaded file.
//
// A dry run executes every parsing, normalization, and dedup decision but
// performs no persistence and no geocoding; candidate construction is
// identical between dry and live runs.
func (s *ImportService) Import(ctx context.Context, filename string, data []byte, opts domain.ImportOptions) (domain.ImportReport, error) {
	if opts.Dedupe == "" {
		opts.Dedupe = domain.DedupeSkip
	}

	sheet, err := tabular.Read(filename, data, opts.Delimiter, opts.Sheet)
	if err != nil {
		return domain.ImportReport{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}
	cols := ResolveHeaders(sheet.Headers)

	var existing []domain.Stay
	if opts.Dedupe != domain.DedupeNone {
		existing, err = s.stays.List(ctx)
		if err != nil {
			return domain.ImportReport{}, fmt.Errorf("service.ImportService.Import: load existing: %w", err)
		}
	}
	index := newDedupeIndex(existing)

	var report domain.ImportReport
	skip := func(row []string, reason string) {
		report.Skipped++
		report.SkippedRows = append(report.SkippedRows, domain.SkippedRow{
			Row:    padRow(row, len(sheet.Headers)),
			Reason: reason,
		})
	}

	for _, row := range sheet.Rows {
		cand := buildCandidate(sheet, row, cols)

		if emptyRow(cand.stay) {
			skip(row, domain.SkipReasonEmpty)
			continue
		}

		key := cand.stay.NaturalKey()
		if opts.Dedupe != domain.DedupeNone && key.Strong() {
			if match := index.find(key); match != nil {
				switch opts.Dedupe {
				case domain.DedupeSkip:
					skip(row, domain.SkipReasonDuplicate)
					continue

				case domain.DedupeUpdate:
					applyRowUpdate(match, cand.stay)
					domain.DeriveComputedFields(match)
					if !opts.DryRun {
						s.maybeGeocode(ctx, opts, match, cand)
						updated, err := s.stays.Update(ctx, *match)
						if err != nil {
							return report, fmt.Errorf("service.ImportService.Import: update row: %w", err)
						}
						*match = updated
					}
					report.Updated++
					continue
				}
			}
		}

		stay := cand.stay
		domain.DeriveComputedFields(&stay)
		if !opts.DryRun {
			s.maybeGeocode(ctx, opts, &stay, cand)
			created, err := s.stays.Create(ctx, stay)
			if err != nil {
				return report, fmt.Errorf("service.ImportService.Import: create row: %w", err)
			}
			stay = created
		}
		index.add(&stay)
		report.Created++
	}

	if len(report.SkippedRows) > 0 && !opts.DryRun {
		path, err := s.writeSkipReport(sheet.Headers, report.SkippedRows)
		if err != nil {
			return report, fmt.Errorf("service.ImportService.Import: %w", err)
		}
		report.SkipReportPath = path
	}

	return report, nil
}

// buildCandidate assembles one candidate stay from a raw row using the
// resolved header map. Field parsers drop unparsable values to nil; a partial
// coordinate pair is dropped entirely so the pair invariant holds.
func buildCandidate(sheet *tabular.Sheet, row []string, cols HeaderMap) rowCandidate {
	cell := func(field string) string {
		return sheet.Cell(row, cols.Col(field))
	}

	rawCity := cell(FieldCity)
	rawState := cell(FieldState)

	// Combined "City/State" column: only consulted for the halves that have
	// no dedicated column of their own.
	if combined := cols.Col(FieldCityState); combined >= 0 && (cols.Col(FieldCity) < 0 || cols.Col(FieldState) < 0) {
		splitCity, splitState := SplitCityState(sheet.Cell(row, combined))
		if cols.Col(FieldCity) < 0 {
			rawCity = splitCity
		}
		if cols.Col(FieldState) < 0 && rawState == "" {
			rawState = splitState
		}
	}

	city, state := NormalizeLocation(rawCity, rawState)

	stay := domain.Stay{
		Park:          cell(FieldPark),
		City:          city,
		State:         domain.NormalizeState(state),
		CheckIn:       ParseDate(cell(FieldCheckIn)),
		LeaveDate:     ParseDate(cell(FieldLeave)),
		PricePerNight: ParseMoney(cell(FieldPrice)),
		Fees:          ParseMoney(cell(FieldFees)),
		Total:         ParseMoney(cell(FieldTotal)),
		Paid:          ParseBool(cell(FieldPaid)),
		Site:          cell(FieldSite),
		Notes:         cell(FieldNotes),
		Rating:        ParseRating(cell(FieldRating)),
	}

	lat := ParseCoordinate(cell(FieldLatitude))
	lng := ParseCoordinate(cell(FieldLongitude))
	if lat != nil && lng != nil {
		stay.Latitude = lat
		stay.Longitude = lng
	}

	return rowCandidate{
		stay:    stay,
		address: cell(FieldAddress),
		zip:     cell(FieldZip),
	}
}

// emptyRow reports the empty-row skip condition: city and state both blank
// and both interval dates null, regardless of other populated fields.
func emptyRow(s domain.Stay) bool {
	return s.City == "" && s.State == "" && s.CheckIn == nil && s.LeaveDate == nil
}

// maybeGeocode fills a missing coordinate pair immediately before a
// create/update write. Queries run coarsest-last; the first hit wins. Geocode
// failure is never a row failure — the row persists without coordinates.
func (s *ImportService) maybeGeocode(ctx context.Context, opts domain.ImportOptions, stay *domain.Stay, cand rowCandidate) {
	if !opts.AutoGeocode || s.geocoder == nil || stay.HasCoordinates() {
		return
	}

	for _, query := range geocode.BuildQueries(cand.address, stay.Park, stay.City, stay.State, cand.zip) {
		coords, err := s.geocoder.Geocode(ctx, query)
		if err != nil {
			// Transient geocoder errors are treated as "no result".
			continue
		}
		if coords != nil {
			lat, lng := coords.Latitude, coords.Longitude
			stay.Latitude = &lat
			stay.Longitude = &lng
			return
		}
	}
}

// writeSkipReport serializes the skipped rows to a CSV artifact in the input's
// own column set plus a trailing Reason column, for operator review.
func (s *ImportService) writeSkipReport(headers []string, skipped []domain.SkippedRow) (string, error) {
	if s.reportsDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", fmt.Errorf("write skip report: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	w.Write(append(append([]string{}, headers...), "Reason"))
	for _, sr := range skipped {
		//nolint:errcheck
		w.Write(append(append([]string{}, sr.Row...), sr.Reason))
	}
	w.Flush()

	path := filepath.Join(s.reportsDir, fmt.Sprintf("skipped_%s.csv", s.now().Format("20060102-150405")))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write skip report: %w", err)
	}
	return path, nil
}

// padRow extends a ragged row with empty cells so the skip report lines up
// with the input header.
func padRow(row []string, width int) []string {
	out := append([]string{}, row...)
	for len(out) < width {
		out = append(out, "")
	}
	return out
}
