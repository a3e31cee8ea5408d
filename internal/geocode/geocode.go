// Package geocode resolves free-text location queries to coordinates.
//
// The import engine consumes the Geocoder interface; the only implementation
// shipped here talks to a Nominatim-compatible service. Lookups are blocking
// network calls and are the dominant latency source for large imports, so
// callers treat geocoding as an explicit opt-in.
package geocode

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Coordinates is one resolved latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// Geocoder resolves a free-text query to coordinates.
// A (nil, nil) return means "no result" — not-found queries are not errors.
// Callers treat transient errors the same as no result.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Coordinates, error)
}

// BuildQueries assembles the tiered address-query sequence for a stay,
// progressively coarser so at least one tier has a chance of resolving:
//
//  1. address-or-park + city + state + zip
//  2. city + state
//  3. park + state (omitted when there is no park)
//  4. city alone
//
// Each query gets a ", USA" suffix unless it already names a country, and the
// final list is de-duplicated preserving order.
func BuildQueries(address, park, city, state, zip string) []string {
	place := address
	if place == "" {
		place = park
	}

	tiers := [][]string{
		{place, city, state, zip},
		{city, state},
	}
	// A park-less tier 3 would degenerate to a bare state query; skip it.
	if strings.TrimSpace(park) != "" {
		tiers = append(tiers, []string{park, state})
	}
	tiers = append(tiers, []string{city})

	var queries []string
	seen := map[string]bool{}
	for _, tier := range tiers {
		q := joinParts(tier)
		if q == "" {
			continue
		}
		if !hasCountryMarker(q) {
			q += ", USA"
		}
		if !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}
	return queries
}

func joinParts(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func hasCountryMarker(q string) bool {
	lower := strings.ToLower(q)
	return strings.Contains(lower, "usa") ||
		strings.Contains(lower, "united states") ||
		strings.Contains(lower, "canada") ||
		strings.Contains(lower, "mexico")
}
