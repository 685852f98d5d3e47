// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package finder assigns at most one live stream to each configured venue.
// A run is a fixed sequence of phases: build a deduplicated candidate pool
// from broad queries, sweep it once matching/filtering/assigning every
// venue, reconcile still-unassigned venues with targeted fallback searches,
// and project the final assignments ordered by venue priority.
package finder

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mesh-intelligence/streamfinder/internal/httputil"
	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// Provider supplies live-video candidates from a remote search index.
// Implementations must return only currently-live items; a failed call
// surfaces as an error, which the finder degrades to zero candidates.
type Provider interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Candidate, error)
	SearchChannel(ctx context.Context, channelID string, maxResults int) ([]types.Candidate, error)
}

// Finder runs the venue-assignment pipeline. State accumulated during a
// run (pool, assignments, unmatched leftovers) is passed explicitly
// between phases; the Finder itself is immutable after New.
type Finder struct {
	provider Provider
	venues   []types.Venue
	filters  types.Filters
	queries  []string
	cfg      types.SearchConfig
	index    *venueIndex
	pacer    *httputil.Pacer
}

// New builds a finder over the given venue configuration. Queries are the
// bulk-phase search templates; a {date} token is resolved at run time.
func New(p Provider, venues []types.Venue, filters types.Filters, queries []string, cfg types.SearchConfig) (*Finder, error) {
	if p == nil {
		return nil, fmt.Errorf("no search provider configured")
	}
	if len(venues) == 0 {
		return nil, fmt.Errorf("no venues configured")
	}
	if len(queries) == 0 {
		queries = []string{"live darshan"}
	}
	if cfg.BulkMaxResults <= 0 {
		cfg.BulkMaxResults = 50
	}
	if cfg.FallbackMaxResults <= 0 {
		cfg.FallbackMaxResults = 10
	}

	return &Finder{
		provider: p,
		venues:   venues,
		filters:  filters,
		queries:  queries,
		cfg:      cfg,
		index:    newVenueIndex(venues),
		pacer:    httputil.NewPacer(),
	}, nil
}

// Run executes one full assignment run, writing progress to w. Provider
// failures degrade to fewer candidates; Run itself fails only when the
// context is cancelled before the run finishes.
func (f *Finder) Run(ctx context.Context, w io.Writer) (types.Output, error) {
	fmt.Fprintln(w, "phase 1: bulk search")
	pool := f.buildPool(ctx, w)
	fmt.Fprintf(w, "pool: %d unique candidates\n", len(pool))

	fmt.Fprintln(w, "phase 2: match and assign")
	assigned, unmatched := f.runBulk(pool, w)
	fmt.Fprintf(w, "assigned %d/%d venues, %d unmatched candidates\n",
		len(assigned), len(f.venues), len(unmatched))

	if len(assigned) < len(f.venues) {
		fmt.Fprintln(w, "phase 3: fallback reconciliation")
		f.reconcile(ctx, assigned, unmatched, w)
	}

	if err := ctx.Err(); err != nil {
		return types.Output{}, err
	}

	out := f.project(assigned)

	trusted := 0
	for _, s := range out.Streams {
		if s.IsTrustedChannel {
			trusted++
		}
	}
	fmt.Fprintf(w, "found %d/%d venues (%d trusted, %d other)\n",
		out.AssignedCount, out.TotalVenues, trusted, out.AssignedCount-trusted)

	return out, nil
}

// project renders the final assignment map as the public output. Venues
// are ordered by ascending priority; declared order breaks priority ties.
// Unresolved venues are absent from the stream list, not sentinels.
func (f *Finder) project(assigned assignments) types.Output {
	ordered := make([]types.Venue, len(f.venues))
	copy(ordered, f.venues)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	out := types.Output{
		GeneratedAt: time.Now().UTC(),
		TotalVenues: len(f.venues),
		Streams:     []types.StreamInfo{},
	}
	for _, v := range ordered {
		a, ok := assigned[v.ID]
		if !ok {
			continue
		}
		out.Streams = append(out.Streams, streamInfo(v, a))
	}
	out.AssignedCount = len(out.Streams)
	return out
}

// streamInfo renders one assignment as the canonical public record. Watch,
// embed, and default-thumbnail URLs derive deterministically from the
// video ID.
func streamInfo(v types.Venue, a assignment) types.StreamInfo {
	c := a.Candidate

	thumb := c.Thumbnail
	if thumb == "" {
		thumb = "https://img.youtube.com/vi/" + c.VideoID + "/hqdefault.jpg"
	}

	info := types.StreamInfo{
		VenueID:          v.ID,
		VenueName:        v.Name,
		VideoID:          c.VideoID,
		URL:              "https://www.youtube.com/watch?v=" + c.VideoID,
		EmbedURL:         "https://www.youtube.com/embed/" + c.VideoID,
		Title:            c.Title,
		Channel:          c.ChannelName,
		ChannelID:        c.ChannelID,
		ViewerCount:      c.ViewerCount,
		IsTrustedChannel: a.Trusted,
		Thumbnail:        thumb,
	}
	if !c.StartedAt.IsZero() {
		info.StreamStartedAt = c.StartedAt.UTC().Format(time.RFC3339)
	}
	return info
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
