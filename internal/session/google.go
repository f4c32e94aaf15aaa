package session

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// ErrGoogleNotConfigured is returned when Google sign-in is attempted
// without a configured OAuth client ID.
var ErrGoogleNotConfigured = errors.New("google sign-in not configured")

// ErrInvalidIDToken is returned when a Google ID token fails local
// verification before any backend exchange.
var ErrInvalidIDToken = errors.New("invalid google id token")

// GoogleVerifier validates Google ID tokens against the configured OAuth
// client ID before they are exchanged with the backend.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier. An empty client ID disables Google
// sign-in.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks the token's signature, audience and expiry.
func (v *GoogleVerifier) Verify(idToken string) error {
	if v.clientID == "" {
		return ErrGoogleNotConfigured
	}
	verifier := googleAuthIDTokenVerifier.Verifier{}
	return verifier.VerifyIDToken(idToken, []string{v.clientID})
}
