// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the streamfinder pipeline.
package types

// TrustedChannel identifies a channel pre-declared as authoritative for a
// venue. Candidates from a trusted channel outrank any untrusted candidate
// and are exempt from the viewer-count floor.
type TrustedChannel struct {
	// ID is the channel identifier (e.g. "UCxxxx...").
	ID string `json:"id" yaml:"id"`

	// Name is the channel display name, kept for config readability.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// URL is the canonical channel page, kept for config readability.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Venue is one configured place for which the finder seeks exactly one
// live stream per run.
type Venue struct {
	// ID is the unique venue key (e.g. "somnath").
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable venue name.
	Name string `json:"name" yaml:"name"`

	// Priority orders venues in the output; lower values come first.
	Priority int `json:"priority" yaml:"priority"`

	// TitleKeywords are case-insensitive substrings tested against candidate
	// titles, in order. The first keyword found wins the match.
	TitleKeywords []string `json:"title_keywords" yaml:"title_keywords"`

	// TrustedChannels lists channels considered authoritative for this venue.
	TrustedChannels []TrustedChannel `json:"trusted_channels,omitempty" yaml:"trusted_channels,omitempty"`

	// FallbackQuery is the venue-specific search string used when the bulk
	// pass leaves the venue unassigned. Empty means "<Name> live darshan".
	FallbackQuery string `json:"fallback_query,omitempty" yaml:"fallback_query,omitempty"`
}

// Filters holds the global quality gate applied to every candidate.
type Filters struct {
	// ExcludeTitleKeywords cause automatic rejection when found in a title,
	// case-insensitively, regardless of channel trust.
	ExcludeTitleKeywords []string `json:"exclude_title_keywords" yaml:"exclude_title_keywords"`

	// MinViewerCountUntrusted is the viewer floor for candidates whose
	// channel is not trusted for the matched venue.
	MinViewerCountUntrusted int `json:"min_viewer_count_untrusted" yaml:"min_viewer_count_untrusted"`
}
