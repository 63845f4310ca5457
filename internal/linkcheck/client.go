package linkcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Checker is the boundary to the link-checking backend. *Client implements it;
// tests substitute fakes.
type Checker interface {
	CheckLinks(ctx context.Context, req CheckRequest) ([]LinkResult, error)
}

var _ Checker = (*Client)(nil)

// Client talks to the broken-links backend over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	DefaultAPIURL     = "http://localhost:8080"
	defaultUserAgent  = "linkcheck/0.1"
	defaultTimeout    = 60 * time.Second
	checkLinksPath    = "/api/check-links"
	healthPath        = "/api/health"
	maxErrorBodyBytes = 4096
)

// NewClient builds a Client for the backend at apiURL. A zero timeout uses the
// default of one minute.
func NewClient(apiURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// CheckLinks submits a crawl and returns the full result set.
func (c *Client) CheckLinks(ctx context.Context, req CheckRequest) ([]LinkResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var payload []LinkResult
	if err := c.do(ctx, http.MethodPost, checkLinksPath, body, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []LinkResult{}
	}
	return payload, nil
}

// Health pings the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, healthPath, nil, nil)
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Path: path, StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the backend's {"error": "..."} message, falling back
// to the trimmed body text.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
