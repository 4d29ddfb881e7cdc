package api

import (
	"net/http"
	"time"

	"hibachi/internal/metrics"
	"hibachi/internal/model"
	"hibachi/internal/slots"
)

// SlotsResponse lists the bookable time labels for one date.
type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// handleSlots returns the bookable slots for a date.
// GET /api/slots?date=YYYY-MM-DD
func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("slots")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SlotsResponse{
		Date:  date.Format(model.DateLayout),
		Slots: slots.Generate(date),
	})
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, &paramError{name: name, reason: "is required"}
	}
	date, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, &paramError{name: name, reason: "must be YYYY-MM-DD"}
	}
	return date, nil
}

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return e.name + " " + e.reason
}
