// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// istZone is the zone the {date} token resolves in. Fixed offset, so runs
// do not depend on host tzdata.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// dateTokenLayout renders dates the way stream titles carry them,
// e.g. "30 Jan".
const dateTokenLayout = "02 Jan"

// expandDateToken substitutes the {date} placeholder with now's IST
// calendar date.
func expandDateToken(template string, now time.Time) string {
	return strings.ReplaceAll(template, "{date}", now.In(istZone).Format(dateTokenLayout))
}

// buildPool issues the bulk queries in declared order and flattens the
// results into one pool, deduplicated by video ID across all queries and
// preserving first-seen order. Candidates without a usable ID are dropped.
// A failed query contributes zero candidates and the run continues.
func (f *Finder) buildPool(ctx context.Context, w io.Writer) []types.Candidate {
	var pool []types.Candidate
	seen := make(map[string]bool)
	now := time.Now()

	for _, template := range f.queries {
		query := expandDateToken(template, now)

		if err := f.pacer.Wait(ctx, f.cfg.QueryDelay); err != nil {
			return pool
		}

		results, err := f.provider.Search(ctx, query, f.cfg.BulkMaxResults)
		if err != nil {
			fmt.Fprintf(w, "warning: query %q failed: %v\n", query, err)
			continue
		}

		for _, c := range results {
			if c.VideoID == "" || seen[c.VideoID] {
				continue
			}
			seen[c.VideoID] = true
			pool = append(pool, c)
		}
		fmt.Fprintf(w, "  %q: %d results (%d total unique)\n", query, len(results), len(pool))
	}
	return pool
}
