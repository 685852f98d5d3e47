// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

// passes reports whether a candidate clears the quality gate at the trust
// level it matched with. The rules short-circuit in precedence order:
// embeddability, excluded title keywords, then the viewer floor. Trusted
// candidates are exempt from the floor; provenance is a stronger quality
// signal than live popularity. The reason names the first failing rule.
func passes(c types.Candidate, trusted bool, filters types.Filters) (bool, string) {
	if !c.Embeddable {
		return false, "not embeddable"
	}

	title := strings.ToLower(c.Title)
	for _, kw := range filters.ExcludeTitleKeywords {
		if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
			return false, fmt.Sprintf("title contains %q", kw)
		}
	}

	if !trusted && c.ViewerCount < filters.MinViewerCountUntrusted {
		return false, fmt.Sprintf("only %d viewers (min %d)", c.ViewerCount, filters.MinViewerCountUntrusted)
	}

	return true, "passed"
}
