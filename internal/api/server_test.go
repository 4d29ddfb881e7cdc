package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibachi/internal/auth"
	"hibachi/internal/availability"
	"hibachi/internal/events"
	"hibachi/internal/store"
)

// 2024-06-10 is a Monday.
var anchor = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return value, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Close() error { return nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.New(io.Discard)
	bus := events.NewBus()
	s := store.Open(context.Background(), &memKV{data: make(map[string][]byte)}, bus, &logger)
	avail := availability.NewService(s, anchor)
	avail.Attach(bus)
	srv := NewHTTPServer(s, avail, auth.NewVerifier("1234"), 0, 0, &logger)
	return srv.Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestVerifyPin(t *testing.T) {
	handler := newTestServer(t)

	w := doJSON(t, handler, http.MethodPost, "/api/auth/pin", PinRequest{PIN: "1234"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp PinResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)

	w = doJSON(t, handler, http.MethodPost, "/api/auth/pin", PinRequest{PIN: "0000"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
}

func TestSlotsEndpoint(t *testing.T) {
	handler := newTestServer(t)

	w := doJSON(t, handler, http.MethodGet, "/api/slots?date=2024-06-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-10", resp.Date)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:00 AM", resp.Slots[0])
	assert.Equal(t, "09:00 PM", resp.Slots[len(resp.Slots)-1])

	w = doJSON(t, handler, http.MethodGet, "/api/slots?date=junk", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationEndToEnd(t *testing.T) {
	handler := newTestServer(t)

	// Submit seats 1 and 2 for Monday dinner.
	req := CreateReservationRequest{
		Date: "2024-06-10", Time: "06:00 PM", Name: "Kim",
		PhoneNumber: "555-0101", SelectedChairs: []int{1, 2},
	}
	w := doJSON(t, handler, http.MethodPost, "/api/reservations", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// The seat map grays exactly those chairs.
	w = doJSON(t, handler, http.MethodGet, "/api/seatmap?date=2024-06-10&time=06:00%20PM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var seatMap SeatMapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seatMap))
	require.Len(t, seatMap.Seats, 48)
	for _, seat := range seatMap.Seats {
		wantReserved := seat.ID == 1 || seat.ID == 2
		assert.Equal(t, wantReserved, seat.Reserved, "seat %d", seat.ID)
	}

	// Availability for the slot dropped to 46.
	w = doJSON(t, handler, http.MethodGet, "/api/availability?anchor=2024-06-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var avail AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.Equal(t, 46, avail.Availability["2024-06-10"]["06:00 PM"].AvailableSeats)
	assert.Equal(t, 48, avail.Availability["2024-06-10"]["07:30 PM"].AvailableSeats)

	// A chair held 90 minutes away is still guarded at submission.
	clashReq := req
	clashReq.Time = "07:30 PM"
	clashReq.SelectedChairs = []int{2, 9}
	w = doJSON(t, handler, http.MethodPost, "/api/reservations", clashReq)
	require.Equal(t, http.StatusConflict, w.Code)
	var clash ConflictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clash))
	assert.Equal(t, []int{2}, clash.ConflictingChairs)

	// Outside the 2-hour guard the same chair books fine.
	lateReq := req
	lateReq.Time = "09:00 PM"
	w = doJSON(t, handler, http.MethodPost, "/api/reservations", lateReq)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Deleting the first booking frees its seats everywhere.
	w = doJSON(t, handler, http.MethodDelete, "/api/reservations/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, handler, http.MethodGet, "/api/availability?anchor=2024-06-10", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.Equal(t, 48, avail.Availability["2024-06-10"]["06:00 PM"].AvailableSeats)

	w = doJSON(t, handler, http.MethodGet, "/api/reservations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Reservations []struct {
			ID   string `json:"id"`
			Time string `json:"time"`
		} `json:"reservations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, "09:00 PM", list.Reservations[0].Time)
}

func TestCreateRejectsUnknownSlot(t *testing.T) {
	handler := newTestServer(t)

	req := CreateReservationRequest{
		Date: "2024-06-10", Time: "03:00 PM", Name: "Kim",
		PhoneNumber: "555-0101", SelectedChairs: []int{1},
	}
	w := doJSON(t, handler, http.MethodPost, "/api/reservations", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRejectsInvalidShape(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(*CreateReservationRequest)
	}{
		{"no chairs", func(r *CreateReservationRequest) { r.SelectedChairs = nil }},
		{"chair out of range", func(r *CreateReservationRequest) { r.SelectedChairs = []int{49} }},
		{"missing name", func(r *CreateReservationRequest) { r.Name = "" }},
		{"bad date", func(r *CreateReservationRequest) { r.Date = "June 10" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateReservationRequest{
				Date: "2024-06-10", Time: "06:00 PM", Name: "Kim",
				PhoneNumber: "555-0101", SelectedChairs: []int{1},
			}
			tt.mutate(&req)
			w := doJSON(t, handler, http.MethodPost, "/api/reservations", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDeleteUnknownReservation(t *testing.T) {
	handler := newTestServer(t)

	w := doJSON(t, handler, http.MethodDelete, "/api/reservations/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeatMapChairsAcceptStringIDs(t *testing.T) {
	handler := newTestServer(t)

	// Persisted records carry string chair IDs; the API accepts them too.
	body := []byte(`{"date":"2024-06-10","time":"06:00 PM","name":"Kim","phoneNumber":"555-0101","selectedChairs":["7","8"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := doJSON(t, handler, http.MethodGet, "/api/seatmap?date=2024-06-10&time=06:00%20PM", nil)
	var seatMap SeatMapResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &seatMap))
	assert.True(t, seatMap.Seats[6].Reserved)
	assert.True(t, seatMap.Seats[7].Reserved)
	assert.False(t, seatMap.Seats[8].Reserved)
}

func TestThrottle(t *testing.T) {
	logger := zerolog.New(io.Discard)
	bus := events.NewBus()
	s := store.Open(context.Background(), &memKV{data: make(map[string][]byte)}, bus, &logger)
	avail := availability.NewService(s, anchor)
	srv := NewHTTPServer(s, avail, auth.NewVerifier("1234"), 1, 1, &logger)
	handler := srv.Handler()

	first := doJSON(t, handler, http.MethodGet, "/api/slots?date=2024-06-10", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, handler, http.MethodGet, "/api/slots?date=2024-06-10", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
