// Package client is the typed HTTP client for the restaurant backend. It
// reads the backend address and auth token live from the session store,
// bounds every call with the configured timeout, and maps failures onto
// the three error classes the screens distinguish: unreachable backend,
// backend-reported rejection, and undecodable response. No call is ever
// retried; a failure is surfaced and the user re-acts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"pub-pocket/internal/model"
	"pub-pocket/internal/store"
)

// Client talks to the restaurant backend.
type Client struct {
	http    *http.Client
	session *store.Session
	logger  zerolog.Logger
}

// New creates a backend client. The timeout applies per request; a timeout
// is reported the same way as any other transport failure.
func New(session *store.Session, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		session: session,
		logger:  logger.With().Str("component", "backend-client").Logger(),
	}
}

// endpoint builds the full URL for a path. The backend is addressed as
// plain http on host:port, matching the deployment this client ships
// against.
func (c *Client) endpoint(path string, query url.Values) string {
	u := url.URL{
		Scheme:   "http",
		Host:     c.session.BaseURL(),
		Path:     path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// tokenQuery returns a query value set seeded with the session token.
func (c *Client) tokenQuery() url.Values {
	q := url.Values{}
	q.Set("token", c.session.Token())
	return q
}

// do performs a JSON round trip. A nil payload sends no body; a nil out
// discards the response body after the status check. A non-empty idemKey
// is sent as an Idempotency-Key header so the backend can drop duplicate
// submissions from rapid double-taps.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any, idemKey string) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("backend unreachable")
		return fmt.Errorf("%s %s: %w", method, path, model.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("reading backend response failed")
		return fmt.Errorf("%s %s: %w", method, path, model.ErrNetworkFailure)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("backend call")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var rejection struct {
			Message string `json:"message"`
		}
		// A non-JSON error body still produces a usable BackendError.
		_ = json.Unmarshal(raw, &rejection)
		return &model.BackendError{StatusCode: resp.StatusCode, Message: rejection.Message}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.logger.Warn().
				Err(err).
				Str("method", method).
				Str("path", path).
				Msg("undecodable backend response")
			return fmt.Errorf("%s %s: %w", method, path, model.ErrInvalidResponse)
		}
	}

	return nil
}

// get performs a JSON GET round trip.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, "")
}
