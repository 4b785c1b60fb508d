package gateway

import (
	"context"
	"net/http"
)

// LoginResult is the response of the admin login endpoint.
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// TokenPair is the response of the token refresh endpoint. Both tokens
// rotate together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges admin credentials for a token pair. Rejected
// credentials surface as ErrUnauthorized; the auth manager translates
// that into the expected "invalid credentials" outcome.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.requestJSON(ctx, http.MethodPost, "/admin/login", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RefreshSession exchanges a refresh token for a freshly rotated pair.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var pair TokenPair
	if err := c.requestJSON(ctx, http.MethodPost, "/auth/refresh", nil, body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
