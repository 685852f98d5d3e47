// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"strings"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// venueIndex precomputes per-venue trusted-channel sets and lowercased
// keywords once at construction, so per-candidate checks are map lookups
// rather than list scans.
type venueIndex struct {
	venues   []types.Venue
	byID     map[string]types.Venue
	trusted  map[string]map[string]bool
	keywords map[string][]string
}

func newVenueIndex(venues []types.Venue) *venueIndex {
	ix := &venueIndex{
		venues:   venues,
		byID:     make(map[string]types.Venue, len(venues)),
		trusted:  make(map[string]map[string]bool, len(venues)),
		keywords: make(map[string][]string, len(venues)),
	}
	for _, v := range venues {
		ix.byID[v.ID] = v

		channels := make(map[string]bool, len(v.TrustedChannels))
		for _, ch := range v.TrustedChannels {
			if ch.ID != "" {
				channels[ch.ID] = true
			}
		}
		ix.trusted[v.ID] = channels

		kws := make([]string, 0, len(v.TitleKeywords))
		for _, kw := range v.TitleKeywords {
			if kw != "" {
				kws = append(kws, strings.ToLower(kw))
			}
		}
		ix.keywords[v.ID] = kws
	}
	return ix
}

// isTrusted reports whether the channel is in the venue's trust set.
func (ix *venueIndex) isTrusted(venueID, channelID string) bool {
	return channelID != "" && ix.trusted[venueID][channelID]
}

// match decides which venue, if any, the candidate belongs to.
//
// Venues are tested in declared order, not priority order: declared order
// is the deterministic tie-break when a title could plausibly match more
// than one venue. Channel trust is tested across all venues before any
// keyword scan, so a trusted stream matches its venue regardless of what
// its title says. Only when no venue trusts the channel does
// case-insensitive keyword containment decide, first keyword hit winning.
func (ix *venueIndex) match(c types.Candidate) (venueID string, trusted bool) {
	for _, v := range ix.venues {
		if ix.isTrusted(v.ID, c.ChannelID) {
			return v.ID, true
		}
	}

	title := strings.ToLower(c.Title)
	for _, v := range ix.venues {
		for _, kw := range ix.keywords[v.ID] {
			if strings.Contains(title, kw) {
				return v.ID, ix.isTrusted(v.ID, c.ChannelID)
			}
		}
	}
	return "", false
}
