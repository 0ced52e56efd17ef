package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLocalURL is the development fallback endpoint.
	DefaultLocalURL = "http://localhost:8080/api/blackjack"

	requestTimeout = 10 * time.Second
)

// Error is an HTTP-level failure. Message carries the server's error
// string when the response body had one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// ValidateBaseURL checks that raw is a well-formed http(s) URL.
// Outside development only https is accepted, except for localhost.
func ValidateBaseURL(raw string, production bool) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("api base URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid api base URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api base URL %q: scheme must be http or https", raw)
	}

	localhost := u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1"
	if production && !localhost && u.Scheme != "https" {
		return "", fmt.Errorf("insecure api base URL %q: https required in production", raw)
	}

	return raw, nil
}

// Client talks to the remote game service. One client per player: the
// cookie jar is the session identity, the same way a browser carries
// the server's session cookie.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

func NewClient(baseURL string, production bool) (*Client, error) {
	validated, err := ValidateBaseURL(baseURL, production)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: validated,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		log: logrus.WithField("component", "api"),
	}, nil
}

func (c *Client) Start(ctx context.Context, decks int, dealerHitsOnSoft17 bool) (*GameResponse, error) {
	query := url.Values{
		"decks":              {strconv.Itoa(decks)},
		"dealerHitsOnSoft17": {strconv.FormatBool(dealerHitsOnSoft17)},
	}
	return c.get(ctx, "/start", query)
}

func (c *Client) Hit(ctx context.Context) (*GameResponse, error) {
	return c.post(ctx, "/hit", nil)
}

func (c *Client) Stand(ctx context.Context) (*GameResponse, error) {
	return c.post(ctx, "/stand", nil)
}

func (c *Client) DoubleDown(ctx context.Context) (*GameResponse, error) {
	return c.post(ctx, "/doubledown", nil)
}

func (c *Client) Split(ctx context.Context) (*GameResponse, error) {
	return c.post(ctx, "/split", nil)
}

func (c *Client) PlaceBet(ctx context.Context, amount int) (*GameResponse, error) {
	return c.post(ctx, "/bet", map[string]int{"amount": amount})
}

func (c *Client) ResolveInsurance(ctx context.Context, amount int) (*GameResponse, error) {
	return c.post(ctx, "/insurance", map[string]int{"amount": amount})
}

func (c *Client) State(ctx context.Context) (*GameResponse, error) {
	return c.get(ctx, "/state", nil)
}

func (c *Client) Reset(ctx context.Context, decks int, dealerHitsOnSoft17 bool) (*GameResponse, error) {
	return c.post(ctx, "/reset", map[string]any{
		"decks":              decks,
		"dealerHitsOnSoft17": dealerHitsOnSoft17,
	})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*GameResponse, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any) (*GameResponse, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req)
}

// do executes the request. Failures are logged with the status code
// only, no payload, and returned without retrying.
func (c *Client) do(req *http.Request) (*GameResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithField("path", req.URL.Path).Warn("request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil {
			apiErr.Message = body.Error
		}
		c.log.WithFields(logrus.Fields{
			"path":   req.URL.Path,
			"status": resp.StatusCode,
		}).Warn("request rejected")
		return nil, apiErr
	}

	var out GameResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.WithField("path", req.URL.Path).Warn("malformed response body")
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &out, nil
}
