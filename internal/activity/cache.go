package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long a cache entry stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// Cache is a file-based cache of event responses keyed by username and
// event type filter. Entries live in a temp directory.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// WithCacheClock overrides the time source, mostly for tests.
func WithCacheClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a cache rooted at dir. An empty dir selects a
// directory under the system temp dir.
func NewCache(dir string, opts ...CacheOption) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "expense-cli-activity-cache")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}

	c := &Cache{
		dir: dir,
		ttl: DefaultCacheTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type cacheEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Events    []Event   `json:"events"`
}

// Get returns the cached events when the entry exists and is fresh.
func (c *Cache) Get(username, eventType string) ([]Event, bool) {
	entry, ok := c.read(username, eventType)
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.Timestamp) > c.ttl {
		return nil, false
	}
	return entry.Events, true
}

// GetStale returns the cached events regardless of age. Used as a
// fallback when the network is unavailable.
func (c *Cache) GetStale(username, eventType string) ([]Event, bool) {
	entry, ok := c.read(username, eventType)
	if !ok {
		return nil, false
	}
	return entry.Events, true
}

// Set stores events for the given key. Write failures are logged and
// otherwise ignored.
func (c *Cache) Set(username, eventType string, events []Event) {
	entry := cacheEntry{
		Timestamp: c.now(),
		Events:    events,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.WithError(err).Warn("Failed to encode cache entry")
		return
	}
	if err := os.WriteFile(c.file(username, eventType), data, 0600); err != nil {
		log.WithError(err).Warn("Failed to write cache entry")
	}
}

func (c *Cache) read(username, eventType string) (cacheEntry, bool) {
	data, err := os.ReadFile(c.file(username, eventType))
	if err != nil {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *Cache) file(username, eventType string) string {
	if eventType == "" {
		eventType = "all"
	}
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.json", username, eventType))
}
