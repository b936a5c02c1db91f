package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/promptshare/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Hint is what can be read from an access token without its signing key.
// The backend is the only authority on validity; a Hint is for display and logging.
type Hint struct {
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// HasExpiry reports whether the token carried an exp claim
func (h Hint) HasExpiry() bool {
	return !h.ExpiresAt.IsZero()
}

// Expired reports whether the exp claim is in the past
func (h Hint) Expired() bool {
	return h.HasExpiry() && !NowTimeFunc().Before(h.ExpiresAt)
}

// ExpiresIn returns the time left until exp, zero when expired or unknown
func (h Hint) ExpiresIn() time.Duration {
	if !h.HasExpiry() {
		return 0
	}
	left := h.ExpiresAt.Sub(NowTimeFunc())
	if left < 0 {
		return 0
	}
	return left
}

// Inspect reads the registered claims of a JWT access token without verifying it.
// Opaque tokens return ErrInvalidInput.
func Inspect(rawToken string) (Hint, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Hint{}, errors.Wrapf(errors.ErrInvalidInput, "empty token")
	}

	claims := jwtlib.RegisteredClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, &claims); err != nil {
		return Hint{}, errors.Wrapf(errors.ErrInvalidInput, "parse token: %v", err)
	}

	hint := Hint{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		hint.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		hint.ExpiresAt = claims.ExpiresAt.Time
	}
	return hint, nil
}
