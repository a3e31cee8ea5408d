package handler

import (
	"net/http"
	"strconv"
)

// handleExport implements GET /stays/export.
// Always streams the canonical CSV as a download. With ?save=1 the same bytes
// are additionally written under the sandboxed exports directory at the
// caller-supplied subdir/filename, and the saved path is reported in the
// X-Saved-To response header.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportCSV(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if formTruthy(r.URL.Query().Get("save")) {
		saved, err := s.exporter.SaveExport(r.URL.Query().Get("subdir"), r.URL.Query().Get("filename"), data)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("X-Saved-To", saved)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="stays_export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — client disconnects surface in the server log, not here.
	w.Write(data)
}
