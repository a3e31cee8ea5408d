package handler

import (
	"net/http"

	"github.com/traveler-app/backend/internal/domain"
)

// handleListStays implements GET /stays.
// Returns every stay as JSON, most recent check-in first.
func (s *Server) handleListStays(w http.ResponseWriter, r *http.Request) {
	stays, err := s.stays.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if stays == nil {
		stays = []domain.Stay{}
	}
	writeJSON(w, http.StatusOK, stays)
}

// mapPoint is the trimmed-down stay view consumed by the map front end.
type mapPoint struct {
	ID        string `json:"id"`
	Park      string `json:"park,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// handleMapData implements GET /stays/map-data.
// Only stays carrying a complete coordinate pair appear; the core never
// produces a record with half a pair.
func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	stays, err := s.stays.ListWithCoordinates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	points := make([]mapPoint, 0, len(stays))
	for _, st := range stays {
		if !st.HasCoordinates() {
			continue
		}
		points = append(points, mapPoint{
			ID:        st.ID.String(),
			Park:      st.Park,
			City:      st.City,
			State:     st.State,
			Latitude:  st.Latitude.String(),
			Longitude: st.Longitude.String(),
		})
	}
	writeJSON(w, http.StatusOK, points)
}
