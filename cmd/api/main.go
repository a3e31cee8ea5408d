// Package main is the entry point for the Traveler Stays API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver goose migrates through
	"github.com/pressly/goose/v3"

	"github.com/traveler-app/backend/internal/config"
	"github.com/traveler-app/backend/internal/geocode"
	"github.com/traveler-app/backend/internal/handler"
	"github.com/traveler-app/backend/internal/middleware"
	"github.com/traveler-app/backend/internal/repo"
	"github.com/traveler-app/backend/internal/service"
	"github.com/traveler-app/backend/migrations"
)

// maxUploadBytes bounds request bodies; imports are in-memory by design.
const maxUploadBytes = 32 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger. JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// repo.NewPool registers the decimal codec every connection needs for
	// the money and coordinate columns.
	pool, err := repo.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose runs the embedded SQL migrations against a database/sql
	// connection; the binary is always in sync with its schema.
	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open migration connection", "error", err)
		os.Exit(1)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		slog.Error("failed to create migration provider", "error", err)
		os.Exit(1)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("failed to close migration connection", "error", err)
	}
	slog.Info("migrations applied")

	// --- Services ---------------------------------------------------------
	stays := repo.NewStayRepo(pool)
	geocoder := geocode.NewNominatimClient(cfg.GeocoderURL, cfg.GeocoderUserAgent)
	importSvc := service.NewImportService(stays, geocoder, cfg.ExportsDir)
	exportSvc := service.NewExportService(stays, cfg.ExportsDir)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body size cap.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxUploadBytes))

	srv := handler.NewServer(stays, importSvc, exportSvc)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Imports with auto-geocode block on the geocoder per row, so the write
	// timeout is generous compared to a plain CRUD API.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for an OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
