package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated admin as presented to the rest of the app.
type Identity struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Session holds the admin identity together with its access/refresh token
// pair. The two tokens are only ever replaced together - a Session never
// carries a rotated access token alongside a stale refresh token.
type Session struct {
	Identity     Identity  `json:"identity"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// Valid reports whether the session carries a usable token pair.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// Clone returns an independent copy so callers can hand sessions out
// without exposing the manager's internal state to mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// WithTokens returns a copy of the session carrying a freshly rotated
// token pair. Identity is preserved.
func (s *Session) WithTokens(accessToken, refreshToken string) *Session {
	c := s.Clone()
	c.AccessToken = accessToken
	c.RefreshToken = refreshToken
	return c
}

// Expiry returns the access token's exp claim. The token is decoded
// without signature verification - the client holds no key material and
// the claim is used only for display and refresh hints, never for
// authorization decisions.
func (s *Session) Expiry() (time.Time, bool) {
	if s == nil || s.AccessToken == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Subject returns the access token's sub claim, when present.
func (s *Session) Subject() string {
	if s == nil || s.AccessToken == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
