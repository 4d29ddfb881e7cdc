package availability

import (
	"time"

	"hibachi/internal/model"
	"hibachi/internal/slots"
)

// WindowDays is the size of the rolling availability window, anchor day
// included.
const WindowDays = 30

// SlotAvailability is the remaining capacity of one slot.
type SlotAvailability struct {
	AvailableSeats int `json:"availableSeats"`
	TotalSeats     int `json:"totalSeats"`
}

// Snapshot maps date (YYYY-MM-DD) to slot label to remaining capacity.
type Snapshot map[string]map[string]SlotAvailability

// Compute derives the full 30-day snapshot from the reservation list.
// It is pure: identical inputs produce an identical snapshot, and every
// call replaces the whole window rather than patching it. Reserved
// counts come from exact date+label matches only; overlap semantics
// belong to the conflict resolver.
func Compute(anchor time.Time, reservations []model.Reservation) Snapshot {
	// Index reservations by date+label once; the window scan below
	// touches 30 days x up to 15 slots.
	reserved := make(map[string]map[string]int)
	for i := range reservations {
		r := &reservations[i]
		byLabel := reserved[r.Date]
		if byLabel == nil {
			byLabel = make(map[string]int)
			reserved[r.Date] = byLabel
		}
		byLabel[r.Time] += len(r.SelectedChairs)
	}

	snapshot := make(Snapshot, WindowDays)
	for i := 0; i < WindowDays; i++ {
		day := anchor.AddDate(0, 0, i)
		dateStr := day.Format(model.DateLayout)
		byLabel := make(map[string]SlotAvailability)
		for _, label := range slots.Generate(day) {
			byLabel[label] = SlotAvailability{
				AvailableSeats: model.TotalSeats - reserved[dateStr][label],
				TotalSeats:     model.TotalSeats,
			}
		}
		snapshot[dateStr] = byLabel
	}
	return snapshot
}
