// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the venue file that drives a finder run: the venue
// definitions, the global quality filters, and the bulk search queries.
// The file is read once before any query is issued; a missing or malformed
// file aborts the run.
package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// VenueFile is the on-disk venue configuration.
type VenueFile struct {
	Venues              []types.Venue `yaml:"venues"`
	Filters             types.Filters `yaml:"filters"`
	GlobalSearchQueries []string      `yaml:"global_search_queries"`
}

// Load reads and validates a venue file. Missing GlobalSearchQueries
// default to a single broad query.
func Load(path string) (*VenueFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading venue file: %w", err)
	}

	var vf VenueFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("parsing venue file %s: %w", path, err)
	}

	if err := vf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid venue file %s: %w", path, err)
	}

	if len(vf.GlobalSearchQueries) == 0 {
		vf.GlobalSearchQueries = []string{"live darshan"}
	}
	return &vf, nil
}

// Validate checks the structural invariants the pipeline relies on.
func (vf *VenueFile) Validate() error {
	if len(vf.Venues) == 0 {
		return fmt.Errorf("no venues defined")
	}

	seen := make(map[string]bool, len(vf.Venues))
	for i, v := range vf.Venues {
		if v.ID == "" {
			return fmt.Errorf("venue %d: missing id", i)
		}
		if v.Name == "" {
			return fmt.Errorf("venue %q: missing name", v.ID)
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate venue id %q", v.ID)
		}
		seen[v.ID] = true

		if len(v.TitleKeywords) == 0 && len(v.TrustedChannels) == 0 {
			return fmt.Errorf("venue %q: needs title_keywords or trusted_channels to be matchable", v.ID)
		}
		for j, ch := range v.TrustedChannels {
			if ch.ID == "" {
				return fmt.Errorf("venue %q: trusted channel %d has no id", v.ID, j)
			}
		}
	}

	if vf.Filters.MinViewerCountUntrusted < 0 {
		return fmt.Errorf("min_viewer_count_untrusted must not be negative")
	}
	return nil
}
