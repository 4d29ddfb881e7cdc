package auth

import "crypto/subtle"

// Verifier checks the staff PIN. Pass/fail is the whole contract: no
// lockout, no sessions, no rate limiting at this layer.
type Verifier struct {
	pin string
}

// NewVerifier builds a verifier for the configured PIN.
func NewVerifier(pin string) *Verifier {
	return &Verifier{pin: pin}
}

// Verify reports whether the attempt matches the configured PIN. The
// comparison is constant time so response latency does not leak digits.
func (v *Verifier) Verify(attempt string) bool {
	if len(attempt) != len(v.pin) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(v.pin)) == 1
}
