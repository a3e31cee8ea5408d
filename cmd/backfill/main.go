// Package main is the geocode backfill command: it walks every stored stay
// missing coordinates and fills the pair via the configured geocoding service.
//
// Run it by hand after bulk imports done without auto-geocode. Lookups are
// paced with a politeness delay because public Nominatim instances rate-limit
// aggressively.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/traveler-app/backend/internal/config"
	"github.com/traveler-app/backend/internal/domain"
	"github.com/traveler-app/backend/internal/geocode"
	"github.com/traveler-app/backend/internal/repo"
)

func main() {
	limit := flag.Int("limit", 0, "max rows to geocode (0 = no limit)")
	delay := flag.Duration("delay", 1200*time.Millisecond, "pause between geocoder calls")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	stays := repo.NewStayRepo(pool)
	geocoder := geocode.NewNominatimClient(cfg.GeocoderURL, cfg.GeocoderUserAgent)

	updated, err := backfill(ctx, stays, geocoder, *limit, *delay)
	if err != nil {
		slog.Error("backfill aborted", "error", err, "updated", updated)
		os.Exit(1)
	}
	slog.Info("backfill complete", "updated", updated)
}

// backfill geocodes up to limit stays missing coordinates, pausing delay
// between lookups. Rows the geocoder cannot resolve are logged and left
// untouched; only storage failures abort the run.
func backfill(ctx context.Context, stays repo.StayRepo, geocoder geocode.Geocoder, limit int, delay time.Duration) (int, error) {
	missing, err := stays.ListMissingCoordinates(ctx)
	if err != nil {
		return 0, err
	}
	slog.Info("backfilling coordinates", "candidates", len(missing))

	updated := 0
	for _, stay := range missing {
		if limit > 0 && updated >= limit {
			break
		}

		coords := resolve(ctx, geocoder, stay)
		if coords == nil {
			slog.Warn("no geocode result", "id", stay.ID, "city", stay.City, "state", stay.State)
			continue
		}

		lat, lng := coords.Latitude, coords.Longitude
		stay.Latitude = &lat
		stay.Longitude = &lng
		domain.DeriveComputedFields(&stay)

		if _, err := stays.Update(ctx, stay); err != nil {
			return updated, err
		}
		slog.Info("geocoded", "id", stay.ID, "lat", lat.String(), "lng", lng.String())
		updated++

		time.Sleep(delay)
	}

	return updated, nil
}

// resolve tries the tiered query sequence for one stay, first hit wins.
func resolve(ctx context.Context, geocoder geocode.Geocoder, stay domain.Stay) *geocode.Coordinates {
	for _, query := range geocode.BuildQueries("", stay.Park, stay.City, stay.State, "") {
		coords, err := geocoder.Geocode(ctx, query)
		if err != nil {
			continue
		}
		if coords != nil {
			return coords
		}
	}
	return nil
}
