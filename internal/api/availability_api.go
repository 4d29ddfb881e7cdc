package api

import (
	"net/http"
	"time"

	"hibachi/internal/availability"
	"hibachi/internal/metrics"
	"hibachi/internal/model"
)

// AvailabilityResponse is the 30-day rolling availability window.
type AvailabilityResponse struct {
	Anchor       string                `json:"anchor"`
	Days         int                   `json:"days"`
	Availability availability.Snapshot `json:"availability"`
}

// handleAvailability returns remaining seats per slot for the 30 days
// starting at the anchor date. Changing the anchor triggers a full
// recompute of the cached window.
// GET /api/availability?anchor=YYYY-MM-DD
func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var anchor time.Time
	if r.URL.Query().Get("anchor") == "" {
		anchor = startOfDay(time.Now())
	} else {
		var err error
		anchor, err = parseDateParam(r, "anchor")
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if !anchor.Equal(s.availability.Anchor()) {
		s.availability.Recompute(anchor)
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Anchor:       anchor.Format(model.DateLayout),
		Days:         availability.WindowDays,
		Availability: s.availability.Snapshot(),
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
