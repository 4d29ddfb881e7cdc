package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"hibachi/internal/auth"
	"hibachi/internal/availability"
	"hibachi/internal/store"
)

// HTTPServer serves the staff-facing reservation API.
type HTTPServer struct {
	store        *store.Store
	availability *availability.Service
	verifier     *auth.Verifier
	limiter      *rate.Limiter
	logger       *zerolog.Logger
}

// NewHTTPServer wires the API over the store and derived services.
// rateLimit <= 0 disables throttling.
func NewHTTPServer(s *store.Store, avail *availability.Service, verifier *auth.Verifier, rateLimit float64, rateBurst int, logger *zerolog.Logger) *HTTPServer {
	var limiter *rate.Limiter
	if rateLimit > 0 {
		if rateBurst <= 0 {
			rateBurst = int(rateLimit)
		}
		limiter = rate.NewLimiter(rate.Limit(rateLimit), rateBurst)
	}
	return &HTTPServer{
		store:        s,
		availability: avail,
		verifier:     verifier,
		limiter:      limiter,
		logger:       logger,
	}
}

// Handler returns the routed API handler.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/pin", s.handleVerifyPin)
	mux.HandleFunc("/api/slots", s.handleSlots)
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/seatmap", s.handleSeatMap)
	mux.HandleFunc("/api/reservations", s.handleReservations)
	mux.HandleFunc("/api/reservations/", s.handleReservationByID)
	mux.HandleFunc("/api/export", s.handleExport)
	return s.throttle(mux)
}

func (s *HTTPServer) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
