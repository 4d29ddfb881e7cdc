package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockLayout is the 12-hour slot-label format, e.g. "06:30 PM".
const ClockLayout = "03:04 PM"

// ParseClock converts a 12-hour label to minutes since midnight.
// "12:00 AM" maps to 0, "12:00 PM" to 720. All time arithmetic in the
// scheduling packages goes through this single conversion so the two
// conflict windows and the slot generator never disagree on a label.
func ParseClock(label string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}

	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, fmt.Errorf("invalid meridiem in %q", label)
	}

	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", label, err)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", label, err)
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time label %q out of range", label)
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to a zero-padded
// 12-hour label.
func FormatClock(minutes int) string {
	t := time.Date(2000, time.January, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format(ClockLayout)
}
