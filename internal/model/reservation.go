package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// TotalSeats is the fixed seating capacity of the dining room.
	TotalSeats = 48
	// SeatsPerTable is the number of chairs around one hibachi table.
	SeatsPerTable = 8
	// TableCount is the number of hibachi tables.
	TableCount = TotalSeats / SeatsPerTable
)

// DateLayout is the calendar-date format used in persisted records.
const DateLayout = "2006-01-02"

var (
	ErrNoChairs      = errors.New("reservation has no chairs selected")
	ErrDuplicateSeat = errors.New("duplicate chair in selection")
	ErrSeatRange     = errors.New("chair id out of range")
	ErrMissingField  = errors.New("required field is missing")
)

// Reservation is a single booking of one or more chairs for a date and
// time slot. Chair IDs are integers in memory but travel as decimal
// strings in persisted JSON (see ChairList).
type Reservation struct {
	ID                  string    `json:"id"`
	Date                string    `json:"date"` // YYYY-MM-DD
	Time                string    `json:"time"` // slot label, e.g. "06:30 PM"
	Name                string    `json:"name"`
	PhoneNumber         string    `json:"phoneNumber"`
	Email               string    `json:"email,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	SelectedChairs      ChairList `json:"selectedChairs"`
	CreatedAt           time.Time `json:"createdAt,omitempty"`
}

// ChairList carries chair IDs as ints in memory and as decimal strings
// on the wire. The string encoding is a compatibility contract with the
// stored record format and must not change.
type ChairList []int

// MarshalJSON encodes chair IDs as an array of decimal strings.
func (c ChairList) MarshalJSON() ([]byte, error) {
	out := make([]string, len(c))
	for i, id := range c {
		out[i] = strconv.Itoa(id)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both string and numeric chair IDs. Older records
// written by hand sometimes carried bare numbers.
func (c *ChairList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make([]int, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			id, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("chair id %q: %w", s, err)
			}
			ids = append(ids, id)
			continue
		}
		var n int
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("chair id: %w", err)
		}
		ids = append(ids, n)
	}
	*c = ids
	return nil
}

// TableForSeat maps a chair id (1..48) to its table (1..6) and position
// within the table (1..8).
func TableForSeat(seatID int) (tableID, seatInTable int) {
	return (seatID-1)/SeatsPerTable + 1, (seatID-1)%SeatsPerTable + 1
}

// Validate checks the reservation shape before it is accepted into the
// store. Seat conflicts are a separate concern handled by the conflict
// resolver.
func (r *Reservation) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if r.PhoneNumber == "" {
		return fmt.Errorf("%w: phoneNumber", ErrMissingField)
	}
	if r.Time == "" {
		return fmt.Errorf("%w: time", ErrMissingField)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	if len(r.SelectedChairs) == 0 {
		return ErrNoChairs
	}
	seen := make(map[int]struct{}, len(r.SelectedChairs))
	for _, id := range r.SelectedChairs {
		if id < 1 || id > TotalSeats {
			return fmt.Errorf("%w: %d", ErrSeatRange, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateSeat, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Day parses the reservation's calendar date.
func (r *Reservation) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}
