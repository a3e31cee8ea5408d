package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/traveler-app/backend/internal/domain"
)

// maxImportBytes caps the in-memory part of the multipart parse.
// The engine operates on an in-memory upload by design; it is not a
// streaming ingestion path.
const maxImportBytes = 32 << 20

// handleImport implements POST /stays/import.
//
// Multipart form fields:
//
//	file         — the uploaded CSV/XLSX (required)
//	delimiter    — explicit CSV delimiter; empty means sniff
//	sheet        — workbook sheet name; empty means first sheet
//	dry_run      — truthy to evaluate without persisting
//	auto_geocode — truthy to fill missing coordinates via the geocoder
//	dedupe       — skip | update | none (default skip)
//
// Responds with the structured import report. Batch-level file problems are
// 400; a row-level problem never fails the request.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		badRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, `missing "file" upload`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "read upload: "+err.Error())
		return
	}

	mode, err := domain.ParseDedupeMode(r.FormValue("dedupe"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := domain.ImportOptions{
		Delimiter:   firstRune(r.FormValue("delimiter")),
		Sheet:       r.FormValue("sheet"),
		DryRun:      formTruthy(r.FormValue("dry_run")),
		AutoGeocode: formTruthy(r.FormValue("auto_geocode")),
		Dedupe:      mode,
	}

	report, err := s.importer.Import(r.Context(), header.Filename, data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// firstRune returns the first rune of a form value, or 0 for empty input.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// formTruthy interprets checkbox-style form values.
func formTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
