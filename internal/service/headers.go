// Package service contains the business logic for the Traveler Stays API:
// the tabular import engine, the canonical CSV export, and everything between
// reading an upload and writing stay records.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import "strings"

// Canonical field names bound by the header resolver. FieldCityState is the
// combined "City/State" column recognized when a sheet lacks separate city
// and state columns.
const (
	FieldPark      = "park"
	FieldCityState = "city_state"
	FieldCity      = "city"
	FieldState     = "state"
	FieldCheckIn   = "check_in"
	FieldLeave     = "leave"
	FieldPrice     = "price_per_night"
	FieldTotal     = "total"
	FieldFees      = "fees"
	FieldPaid      = "paid"
	FieldRating    = "rating"
	FieldSite      = "site"
	FieldNotes     = "notes"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldAddress   = "address"
	FieldZip       = "zip"
)

// fieldCandidate pairs a canonical field with the header spellings that bind
// to it. Declaration order is the collision tie-break: when two fields match
// the same source header, the first-declared field claims it.
//
// FieldCityState is declared before FieldCity/FieldState so a combined
// "City/St" header is claimed by the split heuristic rather than fuzzy-bound
// to the plain city field.
type fieldCandidate struct {
	field   string
	aliases []string
}

var importFields = []fieldCandidate{
	{FieldPark, []string{"park", "campground", "camp", "park name", "location"}},
	{FieldCityState, []string{"city/state", "city/st"}},
	{FieldCity, []string{"city", "town"}},
	{FieldState, []string{"state", "province"}},
	{FieldCheckIn, []string{"check in", "check-in", "checkin", "arrival", "arrive", "arrived", "date in", "start"}},
	{FieldLeave, []string{"leave", "leave date", "check out", "check-out", "checkout", "depart", "departure", "date out", "end"}},
	{FieldPrice, []string{"rate/nt", "rate", "price", "price/night", "price per night", "nightly rate", "cost"}},
	{FieldTotal, []string{"total", "total cost", "amount"}},
	{FieldFees, []string{"fees", "fee", "extra fees"}},
	{FieldPaid, []string{"paid?", "paid"}},
	{FieldRating, []string{"rating", "stars", "score"}},
	{FieldSite, []string{"site", "site #", "spot"}},
	{FieldNotes, []string{"notes", "comments", "remarks"}},
	{FieldLatitude, []string{"latitude", "lat"}},
	{FieldLongitude, []string{"longitude", "lng", "lon", "long"}},
	{FieldAddress, []string{"address", "street address"}},
	{FieldZip, []string{"zip", "zip code", "zipcode", "postal code"}},
}

// HeaderMap maps canonical field names to source column indexes.
// Fields with no matching header are absent from the map.
type HeaderMap map[string]int

// Col returns the source column index for field, or -1 when the field was not
// resolved to any header.
func (m HeaderMap) Col(field string) int {
	if i, ok := m[field]; ok {
		return i
	}
	return -1
}

// ResolveHeaders binds an arbitrary, possibly misspelled set of column headers
// to the canonical field set.
//
// Matching runs in two passes. Pass one binds exact matches (after trimming
// and case-folding). Pass two, for fields still unresolved, strips all
// non-alphanumeric characters from both sides and accepts a header when the
// normalized alias is a substring of the normalized header or vice versa,
// scanning headers in sheet order and taking the first hit.
//
// Each header is claimed by at most one field. There is no similarity scoring:
// ambiguity resolves by source order and field declaration order, which keeps
// the behavior deterministic at the cost of occasionally arbitrary bindings on
// sheets with near-duplicate column names.
func ResolveHeaders(headers []string) HeaderMap {
	resolved := HeaderMap{}
	claimed := make([]bool, len(headers))

	folded := make([]string, len(headers))
	normalized := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = strings.ToLower(strings.TrimSpace(h))
		normalized[i] = normalizeHeader(h)
	}

	// Pass 1: exact matches.
	for _, fc := range importFields {
		for i := range headers {
			if claimed[i] {
				continue
			}
			if matchExact(fc.aliases, folded[i]) {
				resolved[fc.field] = i
				claimed[i] = true
				break
			}
		}
	}

	// Pass 2: fuzzy substring matches for still-unresolved fields.
	for _, fc := range importFields {
		if _, ok := resolved[fc.field]; ok {
			continue
		}
		for i := range headers {
			if claimed[i] || normalized[i] == "" {
				continue
			}
			if matchFuzzy(fc.aliases, normalized[i]) {
				resolved[fc.field] = i
				claimed[i] = true
				break
			}
		}
	}

	return resolved
}

func matchExact(aliases []string, foldedHeader string) bool {
	for _, a := range aliases {
		if a == foldedHeader {
			return true
		}
	}
	return false
}

func matchFuzzy(aliases []string, normalizedHeader string) bool {
	for _, a := range aliases {
		na := normalizeHeader(a)
		if na == "" {
			continue
		}
		if strings.Contains(normalizedHeader, na) || strings.Contains(na, normalizedHeader) {
			return true
		}
	}
	return false
}

// normalizeHeader strips all non-alphanumeric characters and case-folds,
// so "Check-In " and "check_in" compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitCityState breaks a combined "City/State" cell value into its city part
// and state fragment. Separators "/", "|", " - ", and "-" are normalized to a
// comma first; the first two non-empty comma-separated parts become city and
// state-fragment. When only one token results and it contains a space, the
// last space splits it as a City-then-State fallback.
//
// The state fragment is returned as-is; the caller truncates it to the
// 2-letter code at final assignment.
func SplitCityState(value string) (city, state string) {
	s := value
	for _, sep := range []string{" - ", "/", "|", "-"} {
		s = strings.ReplaceAll(s, sep, ",")
	}

	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch {
	case len(parts) >= 2:
		return parts[0], parts[1]
	case len(parts) == 1:
		if i := strings.LastIndex(parts[0], " "); i >= 0 {
			return strings.TrimSpace(parts[0][:i]), strings.TrimSpace(parts[0][i+1:])
		}
		return parts[0], ""
	}
	return "", ""
}
