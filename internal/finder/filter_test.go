package finder

import (
	"strings"
	"testing"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

func TestPasses(t *testing.T) {
	filters := testFilters() // excludes "recorded", "yesterday"; min 5 viewers

	notEmbeddable := live("X", "Somnath Live", "C9", 100)
	notEmbeddable.Embeddable = false

	tests := []struct {
		name       string
		candidate  types.Candidate
		trusted    bool
		wantPass   bool
		wantReason string
	}{
		{"passes", live("X", "Somnath Live", "C9", 100), false, true, "passed"},
		{"not embeddable", notEmbeddable, false, false, "not embeddable"},
		{"excluded keyword", live("X", "Somnath RECORDED darshan", "C9", 100), false, false, "recorded"},
		{"excluded beats trust and viewers", live("X", "Mahakal yesterday full aarti", "C2", 99999), true, false, "yesterday"},
		{"untrusted below floor", live("X", "Somnath Live", "C9", 4), false, false, "only 4 viewers"},
		{"untrusted at floor", live("X", "Somnath Live", "C9", 5), false, true, "passed"},
		{"trusted exempt from floor", live("X", "Somnath Live", "C1", 0), true, true, "passed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := passes(tt.candidate, tt.trusted, filters)
			if ok != tt.wantPass {
				t.Errorf("passes() = %v, want %v (reason %q)", ok, tt.wantPass, reason)
			}
			if !strings.Contains(reason, tt.wantReason) {
				t.Errorf("reason = %q, want it to contain %q", reason, tt.wantReason)
			}
		})
	}
}

func TestPassesEmbeddableCheckedFirst(t *testing.T) {
	// A candidate failing several rules reports the embeddable failure.
	c := live("X", "recorded aarti", "C9", 0)
	c.Embeddable = false

	ok, reason := passes(c, false, testFilters())
	if ok || reason != "not embeddable" {
		t.Errorf("passes() = (%v, %q), want (false, \"not embeddable\")", ok, reason)
	}
}
