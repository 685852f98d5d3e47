package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "streamfinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search phases.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates requests to the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BulkMaxResults caps results per bulk query (default 50).
	BulkMaxResults int `json:"bulk_max_results" yaml:"bulk_max_results"`

	// FallbackMaxResults caps results per fallback query (default 10).
	FallbackMaxResults int `json:"fallback_max_results" yaml:"fallback_max_results"`

	// QueryDelay is the minimum spacing between bulk search calls
	// (default 300ms). Respects provider rate limits.
	QueryDelay time.Duration `json:"query_delay" yaml:"query_delay"`

	// FallbackDelay is the minimum spacing between fallback search calls
	// (default 500ms).
	FallbackDelay time.Duration `json:"fallback_delay" yaml:"fallback_delay"`
}

// OutputConfig holds settings for the run artifact.
type OutputConfig struct {
	// Path is where the output JSON is written (default "live_streams.json").
	Path string `json:"path" yaml:"path"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "data/streamfinder.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations for a finder run.
type PipelineConfig struct {
	// VenuesFile is the venue configuration file (default "venues.yaml").
	VenuesFile string `json:"venues_file" yaml:"venues_file"`

	Search  SearchConfig  `json:"search" yaml:"search"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	History HistoryConfig `json:"history" yaml:"history"`
}
