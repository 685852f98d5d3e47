// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// reconcile resolves venues the bulk pass left unassigned. Each venue
// first rechecks the unmatched leftovers for a trusted channel whose
// title the keyword matcher missed, then issues its dedicated fallback
// query. A venue with no passing candidate after both steps stays
// unresolved for the run; that is a reported outcome, not an error, and
// it is not retried.
func (f *Finder) reconcile(ctx context.Context, assigned assignments, unmatched []types.Candidate, w io.Writer) {
	for _, venue := range f.venues {
		if _, ok := assigned[venue.ID]; ok {
			continue
		}
		fmt.Fprintf(w, "%s:\n", venue.Name)

		if c, ok := f.fromUnmatched(venue, unmatched); ok {
			assigned[venue.ID] = assignment{Candidate: c, Trusted: true}
			fmt.Fprintf(w, "  recovered from unmatched pool: %s\n", c.ChannelName)
			continue
		}

		c, trusted, ok := f.fallbackSearch(ctx, venue, w)
		if !ok {
			fmt.Fprintln(w, "  no live stream found")
			continue
		}
		assigned[venue.ID] = assignment{Candidate: c, Trusted: trusted}
		fmt.Fprintf(w, "  found via fallback search: %s\n", c.ChannelName)
	}
}

// fromUnmatched scans the bulk leftovers for a passing candidate on one
// of the venue's trusted channels. This recovers venues whose trusted
// stream was in the pool but titled past the keyword matcher.
func (f *Finder) fromUnmatched(venue types.Venue, unmatched []types.Candidate) (types.Candidate, bool) {
	for _, c := range unmatched {
		if !f.index.isTrusted(venue.ID, c.ChannelID) {
			continue
		}
		if ok, _ := passes(c, true, f.filters); ok {
			return c, true
		}
	}
	return types.Candidate{}, false
}

// fallbackQueryFor returns the venue's dedicated search string.
func fallbackQueryFor(v types.Venue) string {
	if v.FallbackQuery != "" {
		return v.FallbackQuery
	}
	return v.Name + " live darshan"
}

// fallbackSearch issues the venue's targeted query and selects the best
// passing candidate: every trusted-channel result first, in result order,
// then all remaining candidates ranked trusted-first and viewers
// descending (stable, so result order breaks exact ties).
func (f *Finder) fallbackSearch(ctx context.Context, venue types.Venue, w io.Writer) (types.Candidate, bool, bool) {
	if err := f.pacer.Wait(ctx, f.cfg.FallbackDelay); err != nil {
		return types.Candidate{}, false, false
	}

	query := fallbackQueryFor(venue)
	fmt.Fprintf(w, "  fallback search: %q\n", query)

	results, err := f.provider.Search(ctx, query, f.cfg.FallbackMaxResults)
	if err != nil {
		fmt.Fprintf(w, "  warning: fallback query failed: %v\n", err)
		return types.Candidate{}, false, false
	}

	for _, c := range results {
		if !f.index.isTrusted(venue.ID, c.ChannelID) {
			continue
		}
		if ok, _ := passes(c, true, f.filters); ok {
			return c, true, true
		}
	}

	ranked := make([]types.Candidate, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		ti := f.index.isTrusted(venue.ID, ranked[i].ChannelID)
		tj := f.index.isTrusted(venue.ID, ranked[j].ChannelID)
		if ti != tj {
			return ti
		}
		return ranked[i].ViewerCount > ranked[j].ViewerCount
	})

	for _, c := range ranked {
		trusted := f.index.isTrusted(venue.ID, c.ChannelID)
		if ok, _ := passes(c, trusted, f.filters); ok {
			return c, trusted, true
		}
	}
	return types.Candidate{}, false, false
}
