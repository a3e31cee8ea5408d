// Package handler implements the HTTP handlers for the Traveler Stays API.
// All handlers are methods on Server; routes are registered by Routes.
// Handlers translate HTTP to service calls and domain errors back to statuses —
// no business logic lives here.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/traveler-app/backend/internal/domain"
)

// StayLister defines the read operations the listing handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type StayLister interface {
	List(ctx context.Context) ([]domain.Stay, error)
	ListWithCoordinates(ctx context.Context) ([]domain.Stay, error)
}

// ImportServicer runs one tabular import and reports the outcome.
type ImportServicer interface {
	Import(ctx context.Context, filename string, data []byte, opts domain.ImportOptions) (domain.ImportReport, error)
}

// ExportServicer renders the canonical CSV export and optionally persists it
// under the sandboxed exports directory.
type ExportServicer interface {
	ExportCSV(ctx context.Context) ([]byte, error)
	SaveExport(subdir, filename string, data []byte) (string, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	stays    StayLister
	importer ImportServicer
	exporter ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(stays StayLister, importer ImportServicer, exporter ExportServicer) *Server {
	return &Server{stays: stays, importer: importer, exporter: exporter}
}

// Routes returns the chi router for the API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/stays", s.handleListStays)
	r.Get("/stays/map-data", s.handleMapData)
	r.Post("/stays/import", s.handleImport)
	r.Get("/stays/export", s.handleExport)
	return r
}
