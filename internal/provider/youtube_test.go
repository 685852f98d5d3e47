package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

const sampleSearchJSON = `{
  "items": [
    {"id": {"videoId": "vid1"}},
    {"id": {"videoId": "vid2"}},
    {"id": {"kind": "youtube#channel"}},
    {"id": {"videoId": "vid3"}}
  ]
}`

const sampleVideosJSON = `{
  "items": [
    {
      "id": "vid1",
      "snippet": {
        "title": "Somnath Live Darshan",
        "channelId": "C1",
        "channelTitle": "Somnath Trust",
        "publishedAt": "2026-01-30T04:00:00Z",
        "thumbnails": {"high": {"url": "https://example.com/hq1.jpg"}}
      },
      "liveStreamingDetails": {
        "concurrentViewers": "1523",
        "actualStartTime": "2026-01-30T04:05:00Z"
      },
      "status": {"embeddable": true}
    },
    {
      "id": "vid2",
      "snippet": {
        "title": "Mahakal Aarti",
        "channelId": "C2",
        "channelTitle": "Mahakal Channel",
        "thumbnails": {"default": {"url": "https://example.com/def2.jpg"}}
      },
      "liveStreamingDetails": {},
      "status": {"embeddable": false}
    }
  ]
}`

// newTestClient points a client at an httptest server that answers the
// search and videos endpoints with the sample payloads.
func newTestClient(t *testing.T, searchJSON, videosJSON string) (*YouTube, *[]url.Values) {
	t.Helper()

	var requests []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query())
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			fmt.Fprint(w, searchJSON)
		case strings.HasSuffix(r.URL.Path, "/videos"):
			fmt.Fprint(w, videosJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	orig := youtubeAPIBase
	youtubeAPIBase = server.URL
	t.Cleanup(func() { youtubeAPIBase = orig })

	yt := NewYouTube(types.SearchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		APIKey:     "test-key",
	})
	return yt, &requests
}

func TestSearchMergesDetails(t *testing.T) {
	yt, requests := newTestClient(t, sampleSearchJSON, sampleVideosJSON)

	candidates, err := yt.Search(context.Background(), "live darshan", 50)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// vid3 has no detail record and is dropped; the channel item has no
	// videoId at all.
	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}

	c := candidates[0]
	if c.VideoID != "vid1" || c.Title != "Somnath Live Darshan" || c.ChannelID != "C1" {
		t.Errorf("candidates[0] = %+v", c)
	}
	if c.ViewerCount != 1523 {
		t.Errorf("ViewerCount = %d, want 1523", c.ViewerCount)
	}
	if !c.Embeddable {
		t.Error("vid1 should be embeddable")
	}
	if c.StartedAt.IsZero() {
		t.Error("vid1 StartedAt should be parsed")
	}
	if c.Thumbnail != "https://example.com/hq1.jpg" {
		t.Errorf("Thumbnail = %q", c.Thumbnail)
	}

	// Absent viewer count defaults to 0, explicit embeddable=false sticks,
	// default-resolution thumbnail is the fallback.
	c = candidates[1]
	if c.ViewerCount != 0 || c.Embeddable {
		t.Errorf("candidates[1] = %+v, want 0 viewers and not embeddable", c)
	}
	if c.Thumbnail != "https://example.com/def2.jpg" {
		t.Errorf("Thumbnail = %q", c.Thumbnail)
	}

	// Search call carries the live-event parameters and the key.
	q := (*requests)[0]
	if q.Get("eventType") != "live" || q.Get("type") != "video" || q.Get("videoEmbeddable") != "true" {
		t.Errorf("search params = %v", q)
	}
	if q.Get("key") != "test-key" {
		t.Errorf("key = %q", q.Get("key"))
	}
}

func TestSearchChannelScopesQuery(t *testing.T) {
	yt, requests := newTestClient(t, sampleSearchJSON, sampleVideosJSON)

	if _, err := yt.SearchChannel(context.Background(), "C1", 3); err != nil {
		t.Fatalf("SearchChannel: %v", err)
	}

	q := (*requests)[0]
	if q.Get("channelId") != "C1" {
		t.Errorf("channelId = %q, want C1", q.Get("channelId"))
	}
	if q.Get("q") != "" {
		t.Errorf("channel search should not carry a text query, got %q", q.Get("q"))
	}
	if q.Get("maxResults") != "3" {
		t.Errorf("maxResults = %q, want 3", q.Get("maxResults"))
	}
}

func TestEmbeddableDefaultsTrueWhenAbsent(t *testing.T) {
	videos := `{"items": [{"id": "vid1", "snippet": {"title": "t", "channelId": "C1", "channelTitle": "n"}, "liveStreamingDetails": {}, "status": {}}]}`
	yt, _ := newTestClient(t, sampleSearchJSON, videos)

	details, err := yt.Lookup(context.Background(), []string{"vid1"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !details["vid1"].Embeddable {
		t.Error("absent embeddable flag should default to true")
	}
}

func TestLookupBatches(t *testing.T) {
	yt, requests := newTestClient(t, sampleSearchJSON, sampleVideosJSON)

	ids := make([]string, 70)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%d", i)
	}
	if _, err := yt.Lookup(context.Background(), ids); err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if len(*requests) != 2 {
		t.Fatalf("expected 2 batched videos calls, got %d", len(*requests))
	}
	first := strings.Split((*requests)[0].Get("id"), ",")
	second := strings.Split((*requests)[1].Get("id"), ",")
	if len(first) != 50 || len(second) != 20 {
		t.Errorf("batch sizes = %d, %d, want 50, 20", len(first), len(second))
	}
}

func TestSearchHTTPErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	orig := youtubeAPIBase
	youtubeAPIBase = server.URL
	t.Cleanup(func() { youtubeAPIBase = orig })

	yt := NewYouTube(types.SearchConfig{HTTPConfig: types.HTTPConfig{Timeout: time.Second}})
	_, err := yt.Search(context.Background(), "live darshan", 5)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("expected HTTP 403 error, got %v", err)
	}
}

func TestSearchNoResults(t *testing.T) {
	yt, requests := newTestClient(t, `{"items": []}`, sampleVideosJSON)

	candidates, err := yt.Search(context.Background(), "nothing live", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("len(candidates) = %d, want 0", len(candidates))
	}
	// No videos call when the search returned nothing.
	if len(*requests) != 1 {
		t.Errorf("expected only the search call, got %d calls", len(*requests))
	}
}
