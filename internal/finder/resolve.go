// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// assignment is the current best candidate for one venue.
type assignment struct {
	Candidate types.Candidate
	Trusted   bool
}

// assignments maps venue ID to its current assignment. Entries are
// replaced whole, never merged. The map lives for one run.
type assignments map[string]assignment

// replacedBy reports whether a new (trusted, viewers) pair beats this
// incumbent: trusted beats untrusted, within equal trust more viewers
// wins, and exact ties keep the incumbent (first seen wins).
func (a assignment) replacedBy(trusted bool, viewers int) bool {
	if trusted != a.Trusted {
		return trusted
	}
	return viewers > a.Candidate.ViewerCount
}

// offer assigns the candidate when the venue is empty or the candidate
// beats the incumbent, and reports whether the assignment changed.
func (a assignments) offer(venueID string, c types.Candidate, trusted bool) bool {
	if cur, ok := a[venueID]; ok && !cur.replacedBy(trusted, c.ViewerCount) {
		return false
	}
	a[venueID] = assignment{Candidate: c, Trusted: trusted}
	return true
}

// runBulk sweeps the pool once in pool order, matching, filtering, and
// assigning all venues in a single streaming pass. Candidates that match
// no venue are returned as the unmatched set for the fallback phase.
func (f *Finder) runBulk(pool []types.Candidate, w io.Writer) (assignments, []types.Candidate) {
	assigned := make(assignments)
	var unmatched []types.Candidate

	for _, c := range pool {
		venueID, trusted := f.index.match(c)
		if venueID == "" {
			unmatched = append(unmatched, c)
			continue
		}
		venue := f.index.byID[venueID]

		if ok, reason := passes(c, trusted, f.filters); !ok {
			fmt.Fprintf(w, "  skip %s: %s - %s\n", venue.Name, truncate(c.Title, 40), reason)
			continue
		}

		if assigned.offer(venueID, c, trusted) {
			label := "candidate"
			if trusted {
				label = "trusted"
			}
			fmt.Fprintf(w, "  %s %s: %s (%d viewers)\n", label, venue.Name, c.ChannelName, c.ViewerCount)
		}
	}
	return assigned, unmatched
}
