package schedule

import "time"

// Interval is one contiguous open period within a day, bounded by
// 12-hour clock labels.
type Interval struct {
	Start string
	End   string
}

// Hours returns the open intervals for the weekday of date. Weekdays
// with a lunch/dinner split return two intervals; weekend days one.
func Hours(date time.Time) []Interval {
	switch date.Weekday() {
	case time.Sunday:
		return []Interval{{Start: "12:00 PM", End: "9:30 PM"}}
	case time.Saturday:
		return []Interval{{Start: "11:00 AM", End: "10:00 PM"}}
	case time.Friday:
		return []Interval{
			{Start: "11:00 AM", End: "2:30 PM"},
			{Start: "4:30 PM", End: "10:00 PM"},
		}
	default: // Monday through Thursday
		return []Interval{
			{Start: "11:00 AM", End: "2:30 PM"},
			{Start: "4:30 PM", End: "9:30 PM"},
		}
	}
}
