package api

import (
	"net/http"

	"hibachi/internal/conflict"
	"hibachi/internal/metrics"
	"hibachi/internal/model"
	"hibachi/internal/schedule"
)

// Seat is one chair on the table map.
type Seat struct {
	ID          int  `json:"id"`
	Table       int  `json:"table"`
	SeatInTable int  `json:"seatInTable"`
	Reserved    bool `json:"reserved"`
}

// SeatMapResponse is the table layout for one date and slot.
type SeatMapResponse struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Seats []Seat `json:"seats"`
}

// handleSeatMap returns all 48 chairs with their reserved flag for a
// date and slot. Graying uses the render window: only chairs committed
// to the immediately adjacent seating are marked.
// GET /api/seatmap?date=YYYY-MM-DD&time=hh:mm+PM
func (s *HTTPServer) handleSeatMap(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("seatmap")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	label := r.URL.Query().Get("time")
	if _, err := schedule.ParseClock(label); err != nil {
		writeError(w, http.StatusBadRequest, "time must be a 12-hour label like 06:30 PM")
		return
	}

	reserved := conflict.ReservedSeats(date, label, s.store.List(), conflict.RenderWindow)

	seats := make([]Seat, model.TotalSeats)
	for id := 1; id <= model.TotalSeats; id++ {
		table, pos := model.TableForSeat(id)
		_, held := reserved[id]
		seats[id-1] = Seat{ID: id, Table: table, SeatInTable: pos, Reserved: held}
	}

	writeJSON(w, http.StatusOK, SeatMapResponse{
		Date:  date.Format(model.DateLayout),
		Time:  label,
		Seats: seats,
	})
}
