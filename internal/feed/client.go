package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for fetching the availability feed.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchAvailability(ctx context.Context) (*Payload, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the booking site's availability feed.
type Client struct {
	feedURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "courtwatch/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given feed URL.
func NewClient(rawURL string) (*Client, error) {
	parsed, err := parseFeedURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		feedURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchAvailability retrieves and decodes the current feed document.
func (c *Client) FetchAvailability(ctx context.Context) (*Payload, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var payload Payload
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}

func parseFeedURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("feed url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse feed url %q: %w", rawURL, err)
	}
	u.Fragment = ""
	return u, nil
}
