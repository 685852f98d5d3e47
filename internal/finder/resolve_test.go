package finder

import (
	"bytes"
	"testing"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

func TestReplacedBy(t *testing.T) {
	tests := []struct {
		name       string
		incTrusted bool
		incViewers int
		newTrusted bool
		newViewers int
		want       bool
	}{
		{"trust upgrade", false, 10000, true, 0, true},
		{"trust downgrade", true, 0, false, 10000, false},
		{"equal trust more viewers", false, 10, false, 50, true},
		{"equal trust fewer viewers", false, 50, false, 10, false},
		{"exact tie keeps incumbent", false, 50, false, 50, false},
		{"trusted tie keeps incumbent", true, 0, true, 0, false},
		{"trusted more viewers wins", true, 10, true, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := assignment{Candidate: types.Candidate{ViewerCount: tt.incViewers}, Trusted: tt.incTrusted}
			if got := inc.replacedBy(tt.newTrusted, tt.newViewers); got != tt.want {
				t.Errorf("replacedBy(%v, %d) = %v, want %v", tt.newTrusted, tt.newViewers, got, tt.want)
			}
		})
	}
}

func TestOffer(t *testing.T) {
	a := make(assignments)

	if !a.offer("v", live("A", "t", "C9", 10), false) {
		t.Error("first offer should assign")
	}
	if a.offer("v", live("B", "t", "C9", 10), false) {
		t.Error("exact tie should keep the incumbent")
	}
	if !a.offer("v", live("C", "t", "C1", 0), true) {
		t.Error("trusted candidate should evict untrusted incumbent")
	}
	if a["v"].Candidate.VideoID != "C" {
		t.Errorf("incumbent = %s, want C", a["v"].Candidate.VideoID)
	}
}

func TestRunBulkRoutesUnmatched(t *testing.T) {
	f := newTestFinder(t, &mockProvider{}, []string{"bulk"})

	pool := []types.Candidate{
		live("A", "Somnath Live Darshan", "C9", 50), // matches, passes
		live("B", "random stream", "C9", 50),        // no venue
		live("C", "Mahakal recorded aarti", "C9", 50), // matches, fails filter
	}

	var buf bytes.Buffer
	assigned, unmatched := f.runBulk(pool, &buf)

	if len(assigned) != 1 {
		t.Fatalf("len(assigned) = %d, want 1", len(assigned))
	}
	if assigned["somnath"].Candidate.VideoID != "A" {
		t.Errorf("somnath = %s, want A", assigned["somnath"].Candidate.VideoID)
	}
	if len(unmatched) != 1 || unmatched[0].VideoID != "B" {
		t.Errorf("unmatched = %v, want just B", unmatched)
	}
	// A filtered-out match is neither assigned nor unmatched.
	if _, ok := assigned["mahakal"]; ok {
		t.Error("filtered candidate must not be assigned")
	}
}

func TestRunBulkUpgradesOnTrustThenViewers(t *testing.T) {
	f := newTestFinder(t, &mockProvider{}, []string{"bulk"})

	pool := []types.Candidate{
		live("A", "Somnath Live", "C9", 10),
		live("B", "Somnath Darshan", "C8", 500), // more viewers, replaces A
		live("C", "Somnath Aarti", "C1", 0),     // trusted, replaces B
		live("D", "Somnath HD", "C7", 9999),     // untrusted, cannot evict trusted
	}

	var buf bytes.Buffer
	assigned, _ := f.runBulk(pool, &buf)

	got := assigned["somnath"]
	if got.Candidate.VideoID != "C" || !got.Trusted {
		t.Errorf("somnath = (%s, trusted=%v), want (C, true)", got.Candidate.VideoID, got.Trusted)
	}
}
