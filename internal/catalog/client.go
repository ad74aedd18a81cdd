package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mrlokans/shelfcache/internal/entities"
)

const (
	// DefaultBaseURL is the public Gutendex deployment.
	DefaultBaseURL = "https://gutendex.com"

	defaultUserAgent = "shelfcache/1.0 (https://github.com/mrlokans/shelfcache)"
)

// Client reads the default page of the remote catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithMinInterval spaces consecutive requests at least interval apart.
// Zero disables the limiter.
func WithMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a catalog client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  defaultUserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the catalog root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchBooks issues a single GET <base>/books and returns the records of the
// first page. Every failure is wrapped in entities.ErrFetchFailed.
func (c *Client) FetchBooks(ctx context.Context) ([]Record, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fetchFailed("wait for rate limiter", err)
		}
	}

	url := fmt.Sprintf("%s/books", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchFailed("create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fetchFailed("fetch books", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fetchFailed("fetch books", &StatusError{StatusCode: resp.StatusCode})
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fetchFailed("decode response", err)
	}

	return page.Results, nil
}

// StatusError reports a non-200 answer from the catalog.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

func fetchFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", entities.ErrFetchFailed, op, err)
}
