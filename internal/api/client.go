// Package api is the HTTP client for the Golden Duck game session endpoints.
//
// Every call is a GET with a bearer token. Balances are returned as the
// server formatted them; the client never converts them to numbers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Client talks to the game session API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for baseURL authenticating with token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client calls.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Start opens a game session for the given duck skin.
func (c *Client) Start(ctx context.Context, skin int) (StartResponse, error) {
	var resp StartResponse
	q := url.Values{"skin": {strconv.Itoa(skin)}}
	if err := c.get(ctx, "start", "/game/start", q, &resp); err != nil {
		return resp, err
	}
	if resp.SessionID == "" {
		return resp, &Error{Status: http.StatusOK, Action: "start", Message: "response has no session_id"}
	}
	c.logger.Debug("session started", "session", resp.SessionID, "win_next", resp.WinNext)
	return resp, nil
}

// Collect reports one collected egg. It is not idempotent: call it exactly
// once per egg.
func (c *Client) Collect(ctx context.Context) (CheckResponse, error) {
	return c.check(ctx, ActionCoin)
}

// End closes the session and returns the final balances.
func (c *Client) End(ctx context.Context) (CheckResponse, error) {
	return c.check(ctx, ActionEnd)
}

func (c *Client) check(ctx context.Context, action Action) (CheckResponse, error) {
	var resp CheckResponse
	q := url.Values{"action": {string(action)}}
	if err := c.get(ctx, string(action), "/game/check", q, &resp); err != nil {
		return resp, err
	}
	if resp.OK != nil && !*resp.OK {
		return resp, &Error{Status: http.StatusOK, Action: string(action), Message: resp.Message}
	}
	return resp, nil
}

// get performs an authenticated GET and decodes a JSON body into out.
func (c *Client) get(ctx context.Context, action, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("api: %s: build request: %w", action, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", action, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return fmt.Errorf("api: %s: read body: %w", action, err)
	}
	c.logger.Debug("request", "action", action, "status", res.StatusCode, "took", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &Error{Status: res.StatusCode, Action: action, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: %s: decode response: %w", action, err)
	}
	return nil
}

// errorMessage extracts a message from an error body: the "message" or
// "detail" field of a JSON object, else the trimmed text.
func errorMessage(body []byte) string {
	var obj struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Detail != "" {
			return obj.Detail
		}
	}
	return strings.TrimSpace(string(body))
}
