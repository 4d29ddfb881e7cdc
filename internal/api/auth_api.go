package api

import (
	"encoding/json"
	"net/http"

	"hibachi/internal/metrics"
)

// PinRequest is the request body for POST /api/auth/pin.
type PinRequest struct {
	PIN string `json:"pin"`
}

// PinResponse is the pass/fail verdict. There is no session or lockout;
// the front end simply gates its screens on this answer.
type PinResponse struct {
	Authenticated bool `json:"authenticated"`
}

// handleVerifyPin checks the staff PIN.
// POST /api/auth/pin
func (s *HTTPServer) handleVerifyPin(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("auth_pin")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req PinRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ok := s.verifier.Verify(req.PIN)
	if !ok {
		metrics.IncPinFailure()
	}
	writeJSON(w, http.StatusOK, PinResponse{Authenticated: ok})
}
