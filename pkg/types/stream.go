// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Candidate is one live-video observation returned by a search query.
// Candidates are ephemeral: they live only for the duration of a run.
type Candidate struct {
	// VideoID is the stable video identifier and the pool dedup key.
	VideoID string `json:"video_id" yaml:"video_id"`

	// Title is the video title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// ChannelID identifies the owning channel.
	ChannelID string `json:"channel_id" yaml:"channel_id"`

	// ChannelName is the owning channel's display name.
	ChannelName string `json:"channel_name" yaml:"channel_name"`

	// ViewerCount is the concurrent viewer count, 0 when unknown.
	ViewerCount int `json:"viewer_count" yaml:"viewer_count"`

	// Embeddable reports whether the video may be embedded. Providers
	// default this to true when the flag is absent.
	Embeddable bool `json:"embeddable" yaml:"embeddable"`

	// StartedAt is when the stream went live, zero when unknown.
	StartedAt time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`

	// Thumbnail is the provider-supplied thumbnail URL, empty when none.
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// StreamInfo is the public record for one assigned venue stream.
type StreamInfo struct {
	VenueID          string `json:"venue_id"`
	VenueName        string `json:"venue_name"`
	VideoID          string `json:"video_id"`
	URL              string `json:"url"`
	EmbedURL         string `json:"embed_url"`
	Title            string `json:"title"`
	Channel          string `json:"channel"`
	ChannelID        string `json:"channel_id"`
	ViewerCount      int    `json:"viewer_count"`
	IsTrustedChannel bool   `json:"is_trusted_channel"`
	StreamStartedAt  string `json:"stream_started_at,omitempty"`
	Thumbnail        string `json:"thumbnail"`
}

// Output is the sole durable artifact of a run. It is regenerated whole
// every run, never merged with a previous run's output. Venues that could
// not be resolved are simply absent from Streams.
type Output struct {
	GeneratedAt   time.Time    `json:"generated_at"`
	AssignedCount int          `json:"assigned_count"`
	TotalVenues   int          `json:"total_venues"`
	Streams       []StreamInfo `json:"streams"`
}
