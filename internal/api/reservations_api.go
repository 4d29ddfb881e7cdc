package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"hibachi/internal/conflict"
	"hibachi/internal/metrics"
	"hibachi/internal/model"
	"hibachi/internal/schedule"
	"hibachi/internal/slots"
)

// CreateReservationRequest is the submission shape. Chair IDs are
// accepted as strings or numbers, matching the persisted record format.
type CreateReservationRequest struct {
	Date                string          `json:"date"`
	Time                string          `json:"time"`
	Name                string          `json:"name"`
	PhoneNumber         string          `json:"phoneNumber"`
	Email               string          `json:"email,omitempty"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	SelectedChairs      model.ChairList `json:"selectedChairs"`
}

// ConflictResponse reports the chairs that blocked a submission.
type ConflictResponse struct {
	Error             string `json:"error"`
	ConflictingChairs []int  `json:"conflictingChairs"`
}

// handleReservations lists or creates reservations.
// GET  /api/reservations?date=YYYY-MM-DD (date optional)
// POST /api/reservations
func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_list")

	list := s.store.List()
	if date := r.URL.Query().Get("date"); date != "" {
		filtered := list[:0]
		for _, res := range list {
			if res.Date == date {
				filtered = append(filtered, res)
			}
		}
		list = filtered
	}

	sort.Slice(list, func(a, b int) bool {
		if list[a].Date != list[b].Date {
			return list[a].Date < list[b].Date
		}
		ma, _ := schedule.ParseClock(list[a].Time)
		mb, _ := schedule.ParseClock(list[b].Time)
		return ma < mb
	})

	writeJSON(w, http.StatusOK, map[string]any{"reservations": list})
}

func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_create")

	var req CreateReservationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reservation := model.Reservation{
		Date:                req.Date,
		Time:                req.Time,
		Name:                req.Name,
		PhoneNumber:         req.PhoneNumber,
		Email:               req.Email,
		SpecialInstructions: req.SpecialInstructions,
		SelectedChairs:      req.SelectedChairs,
	}
	if err := reservation.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if !slotExists(date, req.Time) {
		writeError(w, http.StatusBadRequest, "time is not a bookable slot for that date")
		return
	}

	// Submission gate: the wider guard window, so a chair stays free
	// for the full dining stay of the party already holding it.
	clash := conflict.Blocked(date, req.Time, reservation.SelectedChairs, s.store.List(), conflict.GuardWindow)
	if len(clash) > 0 {
		metrics.IncSeatConflict()
		sort.Ints(clash)
		writeJSON(w, http.StatusConflict, ConflictResponse{
			Error:             "one or more chairs are already reserved in this time window",
			ConflictingChairs: clash,
		})
		return
	}

	// Optimistic decrement first; the store publish triggers the
	// authoritative recompute that replaces it.
	s.availability.ApplyDecrement(req.Date, req.Time, len(reservation.SelectedChairs))
	if err := s.store.Add(r.Context(), &reservation); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.IncReservationCreated()

	s.logger.Info().
		Str("id", reservation.ID).
		Str("date", reservation.Date).
		Str("time", reservation.Time).
		Int("seats", len(reservation.SelectedChairs)).
		Msg("reservation created")

	writeJSON(w, http.StatusCreated, reservation)
}

// handleReservationByID deletes a single reservation.
// DELETE /api/reservations/{id}
func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("reservations_delete")
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/reservations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "reservation id is required")
		return
	}

	if !s.store.Remove(r.Context(), id) {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	metrics.IncReservationDeleted()

	s.logger.Info().Str("id", id).Msg("reservation deleted")
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func slotExists(date time.Time, label string) bool {
	for _, slot := range slots.Generate(date) {
		if slot == label {
			return true
		}
	}
	return false
}
