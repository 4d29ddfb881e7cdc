package conflict

import (
	"time"

	"hibachi/internal/model"
	"hibachi/internal/schedule"
)

// Window is a time-difference threshold under which two bookings of the
// same chair on the same date are treated as conflicting.
type Window struct {
	Minutes   int
	Inclusive bool
}

// The two windows are deliberately different and must stay that way:
// the seat map only grays chairs committed to the immediately adjacent
// seating (one table turn), while the selection guard keeps a chair
// free for the whole dining stay of the party already holding it.
var (
	// RenderWindow controls seat-map graying: diff < 45 minutes.
	RenderWindow = Window{Minutes: 45, Inclusive: false}
	// GuardWindow gates chair selection and submission: diff <= 120 minutes.
	GuardWindow = Window{Minutes: 120, Inclusive: true}
)

// Contains reports whether a time difference in minutes falls inside
// the window.
func (w Window) Contains(diff int) bool {
	if diff < 0 {
		diff = -diff
	}
	if w.Inclusive {
		return diff <= w.Minutes
	}
	return diff < w.Minutes
}

// ReservedSeats returns the chair IDs held by reservations on the same
// calendar day whose slot time falls within the window of the target
// label. Dates are compared by year/month/day so records with differing
// date-text forms still match. Reservations with unparseable dates or
// labels are skipped.
func ReservedSeats(date time.Time, label string, reservations []model.Reservation, window Window) map[int]struct{} {
	target, err := schedule.ParseClock(label)
	if err != nil {
		return nil
	}

	seats := make(map[int]struct{})
	for i := range reservations {
		r := &reservations[i]
		day, err := r.Day()
		if err != nil {
			continue
		}
		if day.Year() != date.Year() || day.Month() != date.Month() || day.Day() != date.Day() {
			continue
		}
		minutes, err := schedule.ParseClock(r.Time)
		if err != nil {
			continue
		}
		if !window.Contains(minutes - target) {
			continue
		}
		for _, id := range r.SelectedChairs {
			seats[id] = struct{}{}
		}
	}
	return seats
}

// Blocked reports whether any of the wanted chairs is held within the
// window. Used as the submission gate.
func Blocked(date time.Time, label string, wanted []int, reservations []model.Reservation, window Window) []int {
	held := ReservedSeats(date, label, reservations, window)
	var clash []int
	for _, id := range wanted {
		if _, ok := held[id]; ok {
			clash = append(clash, id)
		}
	}
	return clash
}
