// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/streamfinder/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "streamfinder.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleOutput(generated time.Time) types.Output {
	return types.Output{
		GeneratedAt:   generated,
		AssignedCount: 2,
		TotalVenues:   3,
		Streams: []types.StreamInfo{
			{
				VenueID: "somnath", VenueName: "Somnath Temple", VideoID: "A",
				Title: "Somnath Live", Channel: "Somnath Trust", ChannelID: "C1",
				ViewerCount: 1500, IsTrustedChannel: true,
			},
			{
				VenueID: "mahakal", VenueName: "Mahakaleshwar", VideoID: "B",
				Title: "Mahakal Aarti", Channel: "Some Channel", ChannelID: "C9",
				ViewerCount: 40,
			},
		},
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	generated := time.Date(2026, 1, 30, 6, 0, 0, 0, time.UTC)

	runID, err := s.Record(ctx, sampleOutput(generated))
	require.NoError(t, err)
	assert.Positive(t, runID)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, runID, r.ID)
	assert.True(t, r.GeneratedAt.Equal(generated))
	assert.Equal(t, 2, r.AssignedCount)
	assert.Equal(t, 3, r.TotalVenues)

	require.Len(t, r.Streams, 2)
	assert.Equal(t, "somnath", r.Streams[0].VenueID)
	assert.True(t, r.Streams[0].IsTrustedChannel)
	assert.Equal(t, 1500, r.Streams[0].ViewerCount)
	assert.False(t, r.Streams[1].IsTrustedChannel)
}

func TestRecentNewestFirstAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 30, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, sampleOutput(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Greater(t, runs[1].ID, runs[2].ID)
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordEmptyRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	out := types.Output{
		GeneratedAt: time.Now().UTC(),
		TotalVenues: 3,
		Streams:     []types.StreamInfo{},
	}
	runID, err := s.Record(ctx, out)
	require.NoError(t, err)

	runs, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Empty(t, runs[0].Streams)
}
