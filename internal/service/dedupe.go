package service

import "github.com/traveler-app/backend/internal/domain"

// dedupeIndex answers natural-key lookups over the existing record set plus
// every record inserted earlier in the current run, so in-file duplicates get
// the same disposition as cross-run ones.
//
// When several existing records share a key, the first one in storage order
// wins — update mode mutates that first match only.
type dedupeIndex struct {
	byKey map[domain.NaturalKey]*domain.Stay
}

func newDedupeIndex(existing []domain.Stay) *dedupeIndex {
	idx := &dedupeIndex{byKey: make(map[domain.NaturalKey]*domain.Stay, len(existing))}
	for i := range existing {
		idx.add(&existing[i])
	}
	return idx
}

// add registers a stay under its natural key when the key is strong and not
// already taken. Weak keys are never indexed: rows lacking one are never
// deduplicated.
func (idx *dedupeIndex) add(s *domain.Stay) {
	key := s.NaturalKey()
	if !key.Strong() {
		return
	}
	if _, exists := idx.byKey[key]; !exists {
		idx.byKey[key] = s
	}
}

// find returns the indexed stay for a key, or nil. Callers must check
// key.Strong() themselves; a weak key performs no lookup by contract.
func (idx *dedupeIndex) find(key domain.NaturalKey) *domain.Stay {
	return idx.byKey[key]
}

// applyRowUpdate overwrites the mutable fields of an existing record from an
// import row candidate: price, total, fees, paid, rating, site, notes,
// coordinates, park, city, state. The interval dates are part of the natural
// key that matched and stay untouched.
func applyRowUpdate(existing *domain.Stay, row domain.Stay) {
	existing.Park = row.Park
	existing.City = row.City
	existing.State = row.State
	existing.PricePerNight = row.PricePerNight
	existing.Fees = row.Fees
	existing.Total = row.Total
	existing.Paid = row.Paid
	existing.Rating = row.Rating
	existing.Site = row.Site
	existing.Notes = row.Notes
	existing.Latitude = row.Latitude
	existing.Longitude = row.Longitude
}
