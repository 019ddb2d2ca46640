// Package activity fetches and formats recent GitHub activity for a
// user, with a short-lived file cache.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"fjacquet/expense-cli/internal/ledgererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "expense-cli-activity"
)

// Event is one entry of the GitHub events feed. Payload fields are
// decoded lazily per event type.
type Event struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
	Payload   struct {
		Action  string `json:"action"`
		RefType string `json:"ref_type"`
		Commits []struct {
			Message string `json:"message"`
		} `json:"commits"`
		Issue struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
		} `json:"issue"`
		PullRequest struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
		} `json:"pull_request"`
	} `json:"payload"`
}

// Client talks to the GitHub events API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *Cache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets an API token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithBaseURL overrides the API endpoint, mostly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithCache attaches a response cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a GitHub events client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchOptions narrow a fetch.
type FetchOptions struct {
	// EventType filters to one event type, empty matches all.
	EventType string
	// Limit caps the number of returned events; 0 means 10.
	Limit int
}

// UserEvents returns the recent public events for a user. Fresh cache
// entries short-circuit the network; a failed request falls back to a
// stale cache entry when one exists.
func (c *Client) UserEvents(ctx context.Context, username string, opts FetchOptions) ([]Event, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	if c.cache != nil {
		if events, ok := c.cache.Get(username, opts.EventType); ok {
			log.WithField("user", username).Debug("Using cached activity")
			return clip(events, limit), nil
		}
	}

	events, err := c.fetch(ctx, username)
	if err != nil {
		if c.cache != nil {
			if stale, ok := c.cache.GetStale(username, opts.EventType); ok {
				log.WithError(err).Warn("Fetch failed, falling back to stale cache")
				return clip(stale, limit), nil
			}
		}
		return nil, err
	}

	if opts.EventType != "" {
		filtered := make([]Event, 0, len(events))
		for _, e := range events {
			if e.Type == opts.EventType {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}

	if c.cache != nil {
		c.cache.Set(username, opts.EventType, events)
	}
	return clip(events, limit), nil
}

func (c *Client) fetch(ctx context.Context, username string) ([]Event, error) {
	url := fmt.Sprintf("%s/users/%s/events", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error contacting GitHub API: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		log.WithField("remaining", remaining).Debug("GitHub rate limit")
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &ledgererror.NotFoundError{Kind: "github user", Key: username}
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded, set GITHUB_TOKEN to raise it")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}

func clip(events []Event, limit int) []Event {
	if len(events) > limit {
		return events[:limit]
	}
	return events
}
