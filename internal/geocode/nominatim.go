package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// NominatimClient is a Geocoder backed by a Nominatim-compatible search
// endpoint (e.g. https://nominatim.openstreetmap.org).
//
// Nominatim's usage policy requires an identifying User-Agent; pass one in
// rather than relying on resty's default.
type NominatimClient struct {
	http *resty.Client
}

// nominatimResult is one entry of the /search JSON response.
// Nominatim encodes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimClient builds a client for the given base URL and user agent.
func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &NominatimClient{http: client}
}

// Geocode resolves query via GET /search. Not-found queries return (nil, nil);
// transport failures and non-2xx statuses return an error the caller is
// expected to treat as "no result".
func (c *NominatimClient) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	var results []nominatimResult

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":      query,
			"format": "json",
			"limit":  "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("geocode.NominatimClient.Geocode: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocode.NominatimClient.Geocode: status %d", resp.StatusCode())
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := decimal.NewFromString(results[0].Lat)
	if err != nil {
		return nil, fmt.Errorf("geocode.NominatimClient.Geocode: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := decimal.NewFromString(results[0].Lon)
	if err != nil {
		return nil, fmt.Errorf("geocode.NominatimClient.Geocode: parse lon %q: %w", results[0].Lon, err)
	}

	// Six fractional digits matches the precision stored on a stay record.
	lat = lat.Round(6)
	lon = lon.Round(6)
	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
