package slots

import (
	"sort"
	"time"

	"hibachi/internal/schedule"
)

// StepMinutes is the seating cadence: a new party can be seated every
// 45 minutes within business hours.
const StepMinutes = 45

// Generate returns the bookable slot labels for a date, in chronological
// order. For each open interval the cursor starts at the interval start
// and advances in 45-minute steps; a slot is emitted as long as its
// start is strictly before the interval end, so an interval whose length
// is not a multiple of 45 still yields its final partial-step slot.
func Generate(date time.Time) []string {
	var minutes []int
	for _, iv := range schedule.Hours(date) {
		start, err := schedule.ParseClock(iv.Start)
		if err != nil {
			continue
		}
		end, err := schedule.ParseClock(iv.End)
		if err != nil {
			continue
		}
		for cursor := start; cursor < end; cursor += StepMinutes {
			minutes = append(minutes, cursor)
		}
	}

	sort.Ints(minutes)

	labels := make([]string, 0, len(minutes))
	prev := -1
	for _, m := range minutes {
		if m == prev {
			continue
		}
		labels = append(labels, schedule.FormatClock(m))
		prev = m
	}
	return labels
}
