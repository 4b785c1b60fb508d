// Package gateway is the typed request layer over the platform's admin
// REST API. It is the only package that knows the wire shapes: JSON
// bodies, the pagination envelope (and its bare-array legacy variant),
// and the HTTP status code mapping.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TokenProvider supplies the current access token for authorized calls.
// It is queried per request, so a token rotated by a refresh is picked
// up automatically on retry.
type TokenProvider func() string

// Client performs all remote resource operations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenProvider
	logger     zerolog.Logger
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for
// injecting test servers and custom timeouts).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a gateway client for the given API base URL.
// tokenProvider may return "" while unauthenticated; the Authorization
// header is simply omitted then.
func NewClient(baseURL string, tokenProvider TokenProvider, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}
	if tokenProvider == nil {
		return nil, errors.New("[NewClient] tokenProvider is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		token:      tokenProvider,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// errorBody is the backend's uniform non-2xx response shape.
type errorBody struct {
	Error string `json:"error"`
}

// request performs a single HTTP call and returns the raw response body
// for 2xx responses. Non-2xx statuses are normalized into the failure
// taxonomy; transport failures become NetworkError.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.request] marshal body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.request] build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	var apiErr errorBody
	_ = json.Unmarshal(data, &apiErr)
	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("error", apiErr.Error).
		Msg("request failed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, &ValidationError{Message: apiErr.Error}
	case resp.StatusCode >= 500:
		return nil, errors.Wrap(ErrServer, apiErr.Error)
	default:
		return nil, errors.Errorf("[Client.request] unexpected status %d: %s", resp.StatusCode, apiErr.Error)
	}
}

// requestJSON performs a call and decodes the 2xx body into out. A 2xx
// body that fails to decode is a transport-level failure, not a domain
// outcome.
func (c *Client) requestJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.request(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Err: errors.Wrapf(err, "decode %s %s response", method, path)}
	}
	return nil
}
