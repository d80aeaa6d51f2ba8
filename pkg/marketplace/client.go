package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUnauthorized signals that the marketplace rejected the session token.
// Callers must invalidate the local session; the error is never surfaced
// as an inline message.
var ErrUnauthorized = errors.New("marketplace: unauthorized")

// APIError is a non-2xx response carrying the server-provided message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a minimal HTTP client for the marketplace REST API. It attaches
// the bearer token when present and decodes the standard response envelope.
// It performs no retries; retry is an explicit caller action.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a marketplace client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		debug:      os.Getenv("ENV") == "development",
	}
}

// do performs an authenticated request and decodes the envelope. A 401
// returns ErrUnauthorized without decoding the body; any other non-2xx
// returns an APIError with the server message, falling back to
// "http error: <status>" when the body is unparsable.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (*Envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	var err error
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			RawJSON("request", orEmptyJSON(payload)).
			Msg("[MARKETPLACE] Outgoing request")
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", path).
			Int("status_code", resp.StatusCode).
			RawJSON("response", orEmptyJSON(respBody)).
			Msg("[MARKETPLACE] Incoming response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env Envelope
		if err := json.Unmarshal(respBody, &env); err == nil && env.ErrMessage() != "" {
			return nil, &APIError{Status: resp.StatusCode, Message: env.ErrMessage()}
		}
		return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("http error: %d", resp.StatusCode)}
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env, nil
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, path, token string, query url.Values) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, token, query, nil)
}

func orEmptyJSON(b []byte) []byte {
	if len(b) == 0 {
		return []byte("{}")
	}
	return b
}
