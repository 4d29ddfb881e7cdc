package slots

import (
	"testing"
	"time"

	"hibachi/internal/schedule"
)

// 2024-06-10 is a Monday.
var monday = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func TestGenerateWeekday(t *testing.T) {
	want := []string{
		"11:00 AM", "11:45 AM", "12:30 PM", "01:15 PM", "02:00 PM",
		"04:30 PM", "05:15 PM", "06:00 PM", "06:45 PM", "07:30 PM",
		"08:15 PM", "09:00 PM",
	}

	got := Generate(monday)
	if len(got) != len(want) {
		t.Fatalf("got %d slots %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGeneratePerDay(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		count int
		first string
		last  string
	}{
		{"monday", monday, 12, "11:00 AM", "09:00 PM"},
		{"thursday", monday.AddDate(0, 0, 3), 12, "11:00 AM", "09:00 PM"},
		{"friday", monday.AddDate(0, 0, 4), 13, "11:00 AM", "09:45 PM"},
		{"saturday", monday.AddDate(0, 0, 5), 15, "11:00 AM", "09:30 PM"},
		{"sunday", monday.AddDate(0, 0, 6), 13, "12:00 PM", "09:00 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.date)
			if len(got) != tt.count {
				t.Fatalf("got %d slots %v, want %d", len(got), got, tt.count)
			}
			if got[0] != tt.first {
				t.Errorf("first slot = %q, want %q", got[0], tt.first)
			}
			if got[len(got)-1] != tt.last {
				t.Errorf("last slot = %q, want %q", got[len(got)-1], tt.last)
			}
		})
	}
}

func TestGenerateSortedNoDuplicates(t *testing.T) {
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		got := Generate(date)
		seen := make(map[string]struct{}, len(got))
		prev := -1
		for _, label := range got {
			m, err := schedule.ParseClock(label)
			if err != nil {
				t.Fatalf("%s: bad label %q: %v", date.Weekday(), label, err)
			}
			if m <= prev {
				t.Errorf("%s: labels out of order at %q", date.Weekday(), label)
			}
			if _, dup := seen[label]; dup {
				t.Errorf("%s: duplicate label %q", date.Weekday(), label)
			}
			seen[label] = struct{}{}
			prev = m
		}
	}
}

func TestGenerateSlotsFallInsideHours(t *testing.T) {
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		intervals := schedule.Hours(date)
		for _, label := range Generate(date) {
			m, _ := schedule.ParseClock(label)
			inside := false
			for _, iv := range intervals {
				start, _ := schedule.ParseClock(iv.Start)
				end, _ := schedule.ParseClock(iv.End)
				if m >= start && m < end {
					inside = true
					break
				}
			}
			if !inside {
				t.Errorf("%s: slot %q outside business hours", date.Weekday(), label)
			}
		}
	}
}
