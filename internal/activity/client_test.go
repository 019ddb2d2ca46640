package activity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-cli/internal/ledgererror"
)

const eventsJSON = `[
  {"type": "PushEvent", "repo": {"name": "octocat/hello"}, "created_at": "2026-03-15T10:00:00Z",
   "payload": {"commits": [{"message": "fix bug"}, {"message": "add tests"}]}},
  {"type": "WatchEvent", "repo": {"name": "octocat/spoon"}, "created_at": "2026-03-15T09:00:00Z", "payload": {}},
  {"type": "IssuesEvent", "repo": {"name": "octocat/hello"}, "created_at": "2026-03-15T08:00:00Z",
   "payload": {"action": "opened", "issue": {"number": 42, "title": "Broken build"}}}
]`

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		assert.Equal(t, "expense-cli-activity", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/users/octocat/events":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(eventsJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUserEvents(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(WithBaseURL(server.URL))

	events, err := client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "PushEvent", events[0].Type)
	assert.Equal(t, "octocat/hello", events[0].Repo.Name)
	assert.Len(t, events[0].Payload.Commits, 2)
}

func TestUserEventsTypeFilterAndLimit(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(WithBaseURL(server.URL))

	events, err := client.UserEvents(context.Background(), "octocat", FetchOptions{EventType: "WatchEvent"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "WatchEvent", events[0].Type)

	events, err = client.UserEvents(context.Background(), "octocat", FetchOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestUserEventsNotFound(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(WithBaseURL(server.URL))

	_, err := client.UserEvents(context.Background(), "ghost", FetchOptions{})
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestUserEventsAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("secret"))
	_, err := client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)
}

func TestUserEventsUsesFreshCache(t *testing.T) {
	var hits atomic.Int32
	server := newTestServer(t, &hits)

	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	client := NewClient(WithBaseURL(server.URL), WithCache(cache))

	_, err = client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)
	_, err = client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second fetch served from cache")
}

func TestUserEventsStaleCacheFallback(t *testing.T) {
	server := newTestServer(t, nil)

	clock := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	cache, err := NewCache(t.TempDir(), WithCacheClock(func() time.Time { return clock }))
	require.NoError(t, err)
	client := NewClient(WithBaseURL(server.URL), WithCache(cache))

	_, err = client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)

	// expire the entry and kill the server
	clock = clock.Add(10 * time.Minute)
	server.Close()

	events, err := client.UserEvents(context.Background(), "octocat", FetchOptions{})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestCacheExpiry(t *testing.T) {
	clock := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	cache, err := NewCache(t.TempDir(), WithCacheClock(func() time.Time { return clock }))
	require.NoError(t, err)

	cache.Set("octocat", "", []Event{{Type: "WatchEvent"}})

	_, ok := cache.Get("octocat", "")
	assert.True(t, ok)

	clock = clock.Add(6 * time.Minute)
	_, ok = cache.Get("octocat", "")
	assert.False(t, ok, "entry expired")

	stale, ok := cache.GetStale("octocat", "")
	assert.True(t, ok)
	assert.Len(t, stale, 1)
}

func TestCacheKeysByEventType(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)

	cache.Set("octocat", "PushEvent", []Event{{Type: "PushEvent"}})
	_, ok := cache.Get("octocat", "")
	assert.False(t, ok)
	_, ok = cache.Get("octocat", "PushEvent")
	assert.True(t, ok)
}
