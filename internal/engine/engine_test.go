package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/audit"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/birthdate"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region helpers
func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ptr(v float64) *float64 { return &v }

type recordingSaver struct {
	mu    sync.Mutex
	saved []snapshot.Snapshot
	err   error
}

func (r *recordingSaver) Save(_ context.Context, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	if r.err != nil {
		return snapshot.Snapshot{}, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snap.SnapshotID = "saved-1"
	r.saved = append(r.saved, snap)
	return snap, nil
}

func newEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e := New(cfg, nil, nil)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

// #endregion helpers

// #region score-tests
func TestScoreWeightedSegmentDefault(t *testing.T) {
	e := newEngine(t, nil)

	snap, err := e.Score(context.Background(), Request{
		UserA:   "alice",
		UserB:   "bob",
		TraitsA: fill(32, 0.5),
		TraitsB: fill(32, 0.5),
	})
	require.NoError(t, err)

	assert.Equal(t, string(StrategyWeightedSegment), snap.Strategy)
	assert.Equal(t, "1.0.0", snap.ModelVersion)
	assert.InDelta(t, 0.7125, snap.Overall, 1e-9)
	assert.Equal(t, tier.Good, snap.Tier)
	assert.Equal(t, "Good Match", snap.TierLabel)
	assert.False(t, snap.SoulmateFlag)
	assert.Equal(t, "Compatibility score: 0.71. ", snap.Explanation)
	require.NotNil(t, snap.Match)
	assert.Nil(t, snap.Resonance)
	assert.Equal(t, 0.9, snap.Axes["attachment"])
	assert.Equal(t, 0.65, snap.Axes["conflict"])
	assert.Len(t, snap.Axes, 6)
	assert.Empty(t, snap.Warnings)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), snap.CreatedAt)
}

func TestScoreResonanceStrategy(t *testing.T) {
	e := newEngine(t, nil)

	snap, err := e.Score(context.Background(), Request{
		UserA:     "alice",
		TraitsA:   fill(32, 0.5),
		TraitsB:   fill(32, 0.5),
		Resonance: fill(7, 1),
		Strategy:  StrategyResonance,
	})
	require.NoError(t, err)

	require.NotNil(t, snap.Resonance)
	assert.Nil(t, snap.Match)
	assert.Equal(t, 1.0, snap.Resonance.CTraits)
	assert.Equal(t, snap.Resonance.SHat, snap.Overall)
	assert.InDelta(t, 1.0, snap.Overall, 1e-12)
	assert.True(t, snap.SoulmateFlag)
	assert.Equal(t, tier.Soulmate, snap.Tier)
	assert.Equal(t, 1.0, snap.Axes["alignment_values"])
	assert.Len(t, snap.Alignments, 7)
}

func TestScoreResonanceFeasibility(t *testing.T) {
	e := newEngine(t, nil)

	snap, err := e.Score(context.Background(), Request{
		TraitsA:     fill(32, 0.5),
		TraitsB:     fill(32, 0.5),
		Resonance:   fill(7, 1),
		Feasibility: ptr(0.5),
		Strategy:    StrategyResonance,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, snap.Overall, 1e-12)
	assert.Equal(t, 0.5, snap.Inputs.Feasibility)

	_, err = e.Score(context.Background(), Request{
		TraitsA:  fill(32, 0.5),
		TraitsB:  fill(32, 0.5),
		Strategy: StrategyResonance,
	})
	assert.ErrorIs(t, err, ErrMissingResonance)
}

func TestScoreRejectsBadInputs(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()

	_, err := e.Score(ctx, Request{TraitsA: fill(31, 0.5), TraitsB: fill(32, 0.5)})
	assert.ErrorIs(t, err, profile.ErrInvalidDimension)

	_, err = e.Score(ctx, Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5), Resonance: fill(6, 0.5), Strategy: StrategyResonance})
	assert.ErrorIs(t, err, profile.ErrInvalidDimension)

	_, err = e.Evaluate(ctx, Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5), Resonance: []float64{0.1, 0.2}})
	assert.ErrorIs(t, err, profile.ErrInvalidDimension, "resonance shape is checked under weighted_segment too")

	_, err = e.Score(ctx, Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5), Strategy: "astral"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = e.Score(ctx, Request{
		TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5),
		BirthdateA: "1990-01-01", BirthdateB: "1990-13-40", AllowAstrology: true,
	})
	assert.ErrorIs(t, err, birthdate.ErrInvalidDate)
}

func TestScoreAuditWarnsOrRejects(t *testing.T) {
	traits := fill(32, 0.5)
	traits[3] = 1.4

	lenient := newEngine(t, nil)
	snap, err := lenient.Score(context.Background(), Request{TraitsA: traits, TraitsB: fill(32, 0.5)})
	require.NoError(t, err)
	assert.Equal(t, []string{"traits_a has 1 values outside [0, 1]"}, snap.Warnings)
	assert.Equal(t, 1.4, snap.Inputs.TraitsA[3], "inputs are never clamped")
	assert.Contains(t, snap.Audit, audit.Metric{Name: "traits_a_out_of_range", Value: 1, Pass: false})
	assert.Contains(t, snap.Audit, audit.Metric{Name: "traits_a_max", Value: 1.4, Pass: true})

	strict := newEngine(t, func(c *Config) { c.RejectOutOfRange = true })
	_, err = strict.Score(context.Background(), Request{TraitsA: traits, TraitsB: fill(32, 0.5)})
	assert.ErrorIs(t, err, ErrInputRejected)
}

func TestScoreBirthdateAdjunctsDoNotChangeOverall(t *testing.T) {
	e := newEngine(t, nil)
	base := Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)}

	plain, err := e.Score(context.Background(), base)
	require.NoError(t, err)

	withDates := base
	withDates.BirthdateA = "2000-03-25"
	withDates.BirthdateB = "2000-06-15"
	withDates.AllowAstrology = true
	withDates.AllowNumerology = true
	snap, err := e.Score(context.Background(), withDates)
	require.NoError(t, err)

	assert.Equal(t, plain.Overall, snap.Overall)
	assert.True(t, snap.AstroUsed)
	assert.True(t, snap.NumUsed)
	assert.Equal(t, 0.7, snap.Axes["astrology"])
	assert.Contains(t, snap.Axes, "numerology")
	assert.Equal(t, "Compatibility score: 0.71. Astrology insights included. Numerology insights included. ", snap.Explanation)

	oneDate := base
	oneDate.BirthdateA = "2000-03-25"
	oneDate.AllowAstrology = true
	snap, err = e.Score(context.Background(), oneDate)
	require.NoError(t, err)
	assert.False(t, snap.AstroUsed)
}

func TestScoreCopiesInputs(t *testing.T) {
	e := newEngine(t, nil)
	traits := fill(32, 0.5)

	snap, err := e.Score(context.Background(), Request{TraitsA: traits, TraitsB: fill(32, 0.5)})
	require.NoError(t, err)

	traits[0] = 0.99
	assert.Equal(t, 0.5, snap.Inputs.TraitsA[0])
}

func TestScorePersistsThroughSaver(t *testing.T) {
	saver := &recordingSaver{}
	e := New(DefaultConfig(), nil, saver)

	snap, err := e.Score(context.Background(), Request{UserA: "alice", TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)})
	require.NoError(t, err)
	assert.Equal(t, "saved-1", snap.SnapshotID)
	require.Len(t, saver.saved, 1)

	failing := New(DefaultConfig(), nil, &recordingSaver{err: errors.New("disk full")})
	_, err = failing.Score(context.Background(), Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)})
	assert.ErrorContains(t, err, "save snapshot: disk full")
}

func TestEvaluateSkipsSaver(t *testing.T) {
	saver := &recordingSaver{}
	e := New(DefaultConfig(), nil, saver)

	snap, err := e.Evaluate(context.Background(), Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)})
	require.NoError(t, err)
	assert.Empty(t, snap.SnapshotID)
	assert.InDelta(t, 0.7125, snap.Overall, 1e-9)
	assert.Empty(t, saver.saved)
}

func TestScoreHonorsCanceledContext(t *testing.T) {
	e := newEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Score(ctx, Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSetModelSwapsWeights(t *testing.T) {
	e := newEngine(t, nil)
	w := resonance.DefaultWeights()
	w.GammaTraits, w.GammaResonance = 1, 0
	m, err := resonance.NewModel(w)
	require.NoError(t, err)

	e.SetModel(m)
	e.SetModel(nil)
	assert.Same(t, m, e.Model())

	snap, err := e.Score(context.Background(), Request{
		TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5), Resonance: fill(7, 0), Strategy: StrategyResonance,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, snap.Overall)
}

func TestScoreKeepsValidResonanceUnderWeightedSegment(t *testing.T) {
	e := newEngine(t, nil)

	snap, err := e.Evaluate(context.Background(), Request{
		TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5), Resonance: fill(7, 0.4),
	})
	require.NoError(t, err)
	assert.Equal(t, fill(7, 0.4), snap.Inputs.Resonance)
	assert.Nil(t, snap.Resonance)
	assert.InDelta(t, 0.7125, snap.Overall, 1e-9)
}

func TestReloadStampsNewModelVersion(t *testing.T) {
	e := newEngine(t, nil)
	req := Request{TraitsA: fill(32, 0.5), TraitsB: fill(32, 0.5)}

	e.Reload(resonance.DefaultModel(), "2.0.0")
	assert.Equal(t, "2.0.0", e.ModelVersion())
	assert.Equal(t, "2.0.0", e.Config().ModelVersion)

	snap, err := e.Evaluate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", snap.ModelVersion)

	e.SetModel(resonance.DefaultModel())
	e.Reload(nil, "3.0.0")
	assert.Equal(t, "2.0.0", e.ModelVersion())
}

func TestParseStrategy(t *testing.T) {
	id, err := ParseStrategy("resonance")
	require.NoError(t, err)
	assert.Equal(t, StrategyResonance, id)

	_, err = ParseStrategy("")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

// #endregion score-tests
