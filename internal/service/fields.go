package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried in order; the first that parses wins.
// Dates carry no timezone component.
var dateFormats = []string{"2006-01-02", "01/02/2006", "01/02/06"}

// ParseDate parses a raw cell into a date. Unparsable or empty input is nil,
// never an error: a bad date degrades the row, it does not fail it.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// ParseMoney parses a money cell, tolerating thousands separators and a
// currency symbol ("$1,234.50"). Unparsable input is nil.
func ParseMoney(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// ParseCoordinate parses a latitude or longitude cell as a base-10 decimal,
// falling back to a float parse for exponent notation. Unparsable input is nil.
func ParseCoordinate(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return &d
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}

// ParseBool reports whether a cell holds an affirmative value: one of
// y/yes/true/1, case-insensitive. Everything else — including empty and
// unparsable input — is false, so "unrecognized" and "explicitly false" are
// indistinguishable. Documented behavior, not inferred intent.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

// ParseRating parses a 1–5 star rating. Out-of-range or unparsable input is
// dropped to nil, never clamped silently into range.
func ParseRating(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return nil
	}
	return &n
}
