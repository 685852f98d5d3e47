// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider queries the YouTube Data API v3 for live-video
// candidates. Search results are enriched with a batched detail lookup so
// callers receive complete Candidate records: viewer counts, embeddable
// flags, and stream start times come from the videos endpoint, not from
// the search listing.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// youtubeAPIBase is the Data API v3 root. Declared as a var so tests can
// substitute an httptest server.
var youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// detailBatchSize is the videos-endpoint ID limit per call.
const detailBatchSize = 50

// YouTube is a live-search client for the YouTube Data API v3.
type YouTube struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// NewYouTube builds a client from search configuration.
func NewYouTube(cfg types.SearchConfig) *YouTube {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YouTube{
		Client:    &http.Client{Timeout: timeout},
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}
}

// Search returns currently-live candidates for a text query. Results are
// pre-filtered by the API to live, embeddable-searchable videos; the
// embeddable flag on each candidate still reflects the per-video status.
func (p *YouTube) Search(ctx context.Context, query string, maxResults int) ([]types.Candidate, error) {
	params := url.Values{
		"q": {query},
	}
	return p.liveSearch(ctx, params, maxResults)
}

// SearchChannel returns currently-live candidates scoped to one channel.
func (p *YouTube) SearchChannel(ctx context.Context, channelID string, maxResults int) ([]types.Candidate, error) {
	params := url.Values{
		"channelId": {channelID},
	}
	return p.liveSearch(ctx, params, maxResults)
}

// liveSearch runs a search call followed by a detail lookup and merges
// the two into Candidate records preserving search-result order. IDs the
// detail call does not return are dropped.
func (p *YouTube) liveSearch(ctx context.Context, params url.Values, maxResults int) ([]types.Candidate, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	if maxResults > 50 {
		maxResults = 50
	}

	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("eventType", "live")
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", strconv.Itoa(maxResults))

	var sr searchResponse
	if err := p.get(ctx, "search", params, &sr); err != nil {
		return nil, err
	}

	var ids []string
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details, err := p.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, id := range ids {
		d, ok := details[id]
		if !ok {
			continue
		}
		candidates = append(candidates, d.Candidate())
	}
	return candidates, nil
}

// VideoDetail holds the per-video fields the finder and the channel
// tooling care about.
type VideoDetail struct {
	VideoID     string
	Title       string
	ChannelID   string
	ChannelName string
	ViewerCount int
	Embeddable  bool
	StartedAt   time.Time
	PublishedAt time.Time
	Thumbnail   string
}

// Candidate converts the detail record to the shared candidate shape.
func (d VideoDetail) Candidate() types.Candidate {
	return types.Candidate{
		VideoID:     d.VideoID,
		Title:       d.Title,
		ChannelID:   d.ChannelID,
		ChannelName: d.ChannelName,
		ViewerCount: d.ViewerCount,
		Embeddable:  d.Embeddable,
		StartedAt:   d.StartedAt,
		Thumbnail:   d.Thumbnail,
	}
}

// ChannelURL returns the canonical channel page for the detail record.
func (d VideoDetail) ChannelURL() string {
	if d.ChannelID == "" {
		return ""
	}
	return "https://www.youtube.com/channel/" + d.ChannelID
}

// Lookup fetches detail records for the given video IDs, batched at the
// API's 50-ID limit. The returned map may omit IDs the API did not know.
func (p *YouTube) Lookup(ctx context.Context, videoIDs []string) (map[string]VideoDetail, error) {
	details := make(map[string]VideoDetail)

	for start := 0; start < len(videoIDs); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		params := url.Values{
			"part": {"snippet,liveStreamingDetails,status"},
			"id":   {strings.Join(videoIDs[start:end], ",")},
		}

		var vr videosResponse
		if err := p.get(ctx, "videos", params, &vr); err != nil {
			return nil, err
		}

		for _, item := range vr.Items {
			details[item.ID] = item.detail()
		}
	}
	return details, nil
}

// get performs one API call and decodes the JSON response into out.
func (p *YouTube) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("key", p.APIKey)
	reqURL := youtubeAPIBase + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("YouTube API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("YouTube API %s returned HTTP %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing YouTube %s response: %w", endpoint, err)
	}
	return nil
}

// YouTube Data API JSON structures.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID searchItemID `json:"id"`
}

type searchItemID struct {
	VideoID string `json:"videoId"`
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID                   string        `json:"id"`
	Snippet              videoSnippet  `json:"snippet"`
	LiveStreamingDetails liveDetails   `json:"liveStreamingDetails"`
	Status               videoStatus   `json:"status"`
}

type videoSnippet struct {
	Title        string                   `json:"title"`
	ChannelID    string                   `json:"channelId"`
	ChannelTitle string                   `json:"channelTitle"`
	PublishedAt  string                   `json:"publishedAt"`
	Thumbnails   map[string]thumbnailInfo `json:"thumbnails"`
}

type thumbnailInfo struct {
	URL string `json:"url"`
}

type liveDetails struct {
	// ConcurrentViewers is a decimal string in the API, absent when the
	// count is hidden.
	ConcurrentViewers string `json:"concurrentViewers"`
	ActualStartTime   string `json:"actualStartTime"`
}

type videoStatus struct {
	// Embeddable is a pointer so an absent flag defaults to true.
	Embeddable *bool `json:"embeddable"`
}

func (v videoItem) detail() VideoDetail {
	d := VideoDetail{
		VideoID:     v.ID,
		Title:       v.Snippet.Title,
		ChannelID:   v.Snippet.ChannelID,
		ChannelName: v.Snippet.ChannelTitle,
		Embeddable:  v.Status.Embeddable == nil || *v.Status.Embeddable,
	}

	if n, err := strconv.Atoi(v.LiveStreamingDetails.ConcurrentViewers); err == nil && n > 0 {
		d.ViewerCount = n
	}
	if t, err := time.Parse(time.RFC3339, v.LiveStreamingDetails.ActualStartTime); err == nil {
		d.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt); err == nil {
		d.PublishedAt = t
	}

	if thumb, ok := v.Snippet.Thumbnails["high"]; ok {
		d.Thumbnail = thumb.URL
	} else if thumb, ok := v.Snippet.Thumbnails["default"]; ok {
		d.Thumbnail = thumb.URL
	}
	return d
}
