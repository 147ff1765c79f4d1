package snapshot

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func sample(userA, userB string, overall float64) Snapshot {
	c := tier.Classify(overall)
	return Snapshot{
		UserA:        userA,
		UserB:        userB,
		ModelVersion: "1.0.0",
		Strategy:     "weighted_segment",
		Overall:      overall,
		Axes:         map[string]float64{"similarity": 0.91, "values": 0.95},
		Tier:         c.Tier,
		TierLabel:    c.Label,
		Explanation:  "Compatibility score: 0.71. ",
		Match: &match.Score{
			Overall:    overall,
			Similarity: 0.91,
			Strengths:  []string{"Shared core values and life goals"},
		},
		Inputs: Inputs{
			TraitsA:     []float64{0.1, 0.2},
			TraitsB:     []float64{0.3, 0.4},
			Feasibility: 1,
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, sample("alice", "bob", 0.7125))
	require.NoError(t, err)
	require.NotEmpty(t, saved.SnapshotID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.SnapshotID)
	require.NoError(t, err)
	if diff := cmp.Diff(saved, got); diff != "" {
		t.Fatalf("snapshot round trip (-saved +got):\n%s", diff)
	}
}

func TestSaveKeepsProvidedIDAndTime(t *testing.T) {
	s := tempStore(t)
	snap := sample("alice", "", 0.5)
	snap.SnapshotID = "fixed-id"
	snap.CreatedAt = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	saved, err := s.Save(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", saved.SnapshotID)
	assert.True(t, snap.CreatedAt.Equal(saved.CreatedAt))

	_, err = s.Save(context.Background(), snap)
	assert.Error(t, err, "duplicate id must fail")
}

func TestGetNotFound(t *testing.T) {
	s := tempStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	var ids []string
	for i, overall := range []float64{0.2, 0.5, 0.9} {
		snap := sample("alice", "bob", overall)
		snap.CreatedAt = time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		saved, err := s.Save(ctx, snap)
		require.NoError(t, err)
		ids = append(ids, saved.SnapshotID)
	}

	list, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].SnapshotID)
	assert.Equal(t, ids[0], list[2].SnapshotID)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListForUserMatchesEitherSide(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	for _, pair := range [][2]string{{"alice", "bob"}, {"carol", "alice"}, {"bob", "dave"}, {"erin", ""}} {
		_, err := s.Save(ctx, sample(pair[0], pair[1], 0.6))
		require.NoError(t, err)
	}

	alice, err := s.ListForUser(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	erin, err := s.ListForUser(ctx, "erin", 10)
	require.NoError(t, err)
	require.Len(t, erin, 1)
	assert.Empty(t, erin[0].UserB)

	none, err := s.ListForUser(ctx, "zoe", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
