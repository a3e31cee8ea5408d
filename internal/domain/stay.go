// Package domain contains the core data types for the Traveler Stays application.
// This package has zero dependencies on other internal packages and is imported
// by every other internal package (tabular, repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stay represents a single overnight stay at a campground or hotel.
//
// Nights and Total are derived values: they are recomputed from the stay
// interval and price fields by DeriveComputedFields before every persist and
// are never trusted from user input.
type Stay struct {
	ID    uuid.UUID `json:"id"`
	Park  string    `json:"park,omitempty"`
	City  string    `json:"city,omitempty"`
	State string    `json:"state,omitempty"` // 2-letter code, upper-cased

	// CheckIn and LeaveDate are calendar dates; nil when unknown.
	CheckIn   *time.Time `json:"check_in,omitempty"`
	LeaveDate *time.Time `json:"leave,omitempty"`

	// Nights is derived: max(0, LeaveDate - CheckIn) in days.
	Nights int `json:"nights"`

	PricePerNight *decimal.Decimal `json:"price_per_night,omitempty"`
	Fees          *decimal.Decimal `json:"fees,omitempty"`
	// Total is derived as PricePerNight × Nights + Fees when the price and
	// interval are both present; otherwise it is left as provided.
	Total *decimal.Decimal `json:"total,omitempty"`

	Paid   bool   `json:"paid"`
	Site   string `json:"site,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Rating *int   `json:"rating,omitempty"` // 1..5 inclusive; nil when unrated

	// Latitude and Longitude form an all-or-nothing pair: the import path
	// never writes one without the other.
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`

	// Photo is an opaque asset reference managed outside the import/export core.
	Photo string `json:"photo,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCoordinates reports whether the stay carries a complete coordinate pair.
func (s Stay) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// DeriveComputedFields recomputes Nights and Total from the interval and price
// fields, overriding any user-supplied value for those two fields.
//
// It is an explicitly named pre-persistence normalization step: every path
// that writes a Stay must call it so Nights and Total stay consistent with
// CheckIn/LeaveDate and PricePerNight/Fees.
func DeriveComputedFields(s *Stay) {
	s.Nights = 0
	if s.CheckIn != nil && s.LeaveDate != nil {
		days := int(s.LeaveDate.Sub(*s.CheckIn).Hours() / 24)
		if days > 0 {
			s.Nights = days
		}
	}

	if s.PricePerNight != nil && s.CheckIn != nil && s.LeaveDate != nil {
		total := s.PricePerNight.Mul(decimal.NewFromInt(int64(s.Nights)))
		if s.Fees != nil {
			total = total.Add(*s.Fees)
		}
		total = total.Round(2)
		s.Total = &total
	}
}

// NormalizeState upper-cases a state value and truncates it to 2 characters.
// Applied at the point of final assignment to a record, regardless of where
// the state text came from.
func NormalizeState(state string) string {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) > 2 {
		state = state[:2]
	}
	return state
}

// NaturalKey identifies a stay for deduplication: park, city, state, and the
// two interval dates, case-insensitive on the text components.
type NaturalKey struct {
	Park    string
	City    string
	State   string
	CheckIn string // "2006-01-02", or "" when the date is nil
	Leave   string
}

// NaturalKey computes the dedup key for the stay.
func (s Stay) NaturalKey() NaturalKey {
	return NaturalKey{
		Park:    foldKeyText(s.Park),
		City:    foldKeyText(s.City),
		State:   foldKeyText(s.State),
		CheckIn: formatKeyDate(s.CheckIn),
		Leave:   formatKeyDate(s.LeaveDate),
	}
}

// Strong reports whether the key is eligible for dedup matching: all five
// components must be non-empty. Rows lacking a strong key are never
// deduplicated and always insert as new records.
func (k NaturalKey) Strong() bool {
	return k.Park != "" && k.City != "" && k.State != "" && k.CheckIn != "" && k.Leave != ""
}

func foldKeyText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatKeyDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
