// Package engine selects a scoring formula per request, runs the input audit
// and birthdate adjuncts, and assembles the result into a snapshot.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/audit"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/birthdate"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region engine-struct
// Saver persists a snapshot and returns it as stored.
type Saver interface {
	Save(ctx context.Context, snap snapshot.Snapshot) (snapshot.Snapshot, error)
}

// Engine is safe for concurrent use. The resonance model and its version can
// be swapped at runtime with SetModel or Reload.
type Engine struct {
	config  Config
	current atomic.Pointer[loadedModel]
	audit   *audit.Harness
	saver   Saver
	now     func() time.Time
}

// loadedModel pairs a model with the version stamped on its snapshots.
type loadedModel struct {
	model   *resonance.Model
	version string
}

// #endregion engine-struct

// #region constructor
// New creates an engine. A nil model uses resonance defaults; a nil saver
// disables persistence.
func New(config Config, model *resonance.Model, saver Saver) *Engine {
	if model == nil {
		model = resonance.DefaultModel()
	}
	if config.RankConcurrency <= 0 {
		config.RankConcurrency = 1
	}
	e := &Engine{
		config: config,
		audit:  audit.NewHarness(audit.DefaultConfig()),
		saver:  saver,
		now:    func() time.Time { return time.Now().UTC() },
	}
	e.current.Store(&loadedModel{model: model, version: config.ModelVersion})
	return e
}

// SetModel replaces the resonance model for subsequent requests and keeps
// the current model version.
func (e *Engine) SetModel(m *resonance.Model) {
	e.Reload(m, "")
}

// Reload replaces the model and the version stamped on new snapshots in one
// step. A nil model is ignored; an empty version keeps the current one.
func (e *Engine) Reload(m *resonance.Model, version string) {
	if m == nil {
		return
	}
	if version == "" {
		version = e.ModelVersion()
	}
	e.current.Store(&loadedModel{model: m, version: version})
}

// Model returns the resonance model currently in use.
func (e *Engine) Model() *resonance.Model {
	return e.current.Load().model
}

// ModelVersion returns the version stamped on new snapshots.
func (e *Engine) ModelVersion() string {
	return e.current.Load().version
}

// Config returns the engine configuration with the current model version.
func (e *Engine) Config() Config {
	c := e.config
	c.ModelVersion = e.ModelVersion()
	return c
}

// #endregion constructor

// #region score
// Score computes a snapshot for one pair and persists it when a saver is set.
func (e *Engine) Score(ctx context.Context, req Request) (snapshot.Snapshot, error) {
	snap, err := e.compute(ctx, req)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	if e.saver == nil {
		return snap, nil
	}
	saved, err := e.saver.Save(ctx, snap)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return saved, nil
}

// Evaluate computes a snapshot without persisting it.
func (e *Engine) Evaluate(ctx context.Context, req Request) (snapshot.Snapshot, error) {
	return e.compute(ctx, req)
}

func (e *Engine) resolveStrategy(id StrategyID) (StrategyConfig, error) {
	if id == "" {
		id = e.config.DefaultStrategy
	}
	cfg, ok := Strategies[id]
	if !ok {
		return StrategyConfig{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return cfg, nil
}

// compute is Score without persistence.
func (e *Engine) compute(ctx context.Context, req Request) (snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Snapshot{}, err
	}

	strategy, err := e.resolveStrategy(req.Strategy)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	a, err := profile.NewTraitVector(req.TraitsA)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("traits_a: %w", err)
	}
	b, err := profile.NewTraitVector(req.TraitsB)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("traits_b: %w", err)
	}

	inputs := []audit.Input{
		{Name: "traits_a", Values: req.TraitsA},
		{Name: "traits_b", Values: req.TraitsB},
	}
	if strategy.NeedsResonance && req.Resonance == nil {
		return snapshot.Snapshot{}, ErrMissingResonance
	}
	// A resonance vector is stored with the snapshot whatever the strategy,
	// so it is held to the same shape either way.
	var r profile.ResonanceVector
	if req.Resonance != nil {
		if r, err = profile.NewResonanceVector(req.Resonance); err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("resonance: %w", err)
		}
		inputs = append(inputs, audit.Input{Name: "resonance", Values: req.Resonance})
	}

	check := e.audit.Run(inputs...)
	if !check.Passed && e.config.RejectOutOfRange {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %s", ErrInputRejected, check.Reason)
	}

	feasibility := 1.0
	if req.Feasibility != nil {
		feasibility = *req.Feasibility
	}

	current := e.current.Load()
	snap := snapshot.Snapshot{
		UserA:        req.UserA,
		UserB:        req.UserB,
		ModelVersion: current.version,
		Strategy:     string(strategy.ID),
		Axes:         make(map[string]float64),
		Warnings:     check.Warnings,
		Audit:        check.Metrics,
		Inputs: snapshot.Inputs{
			TraitsA:     copyOf(req.TraitsA),
			TraitsB:     copyOf(req.TraitsB),
			Resonance:   copyOf(req.Resonance),
			Feasibility: feasibility,
			BirthdateA:  req.BirthdateA,
			BirthdateB:  req.BirthdateB,
		},
	}

	switch strategy.ID {
	case StrategyWeightedSegment:
		s := match.CalculateVectors(a, b)
		snap.Match = &s
		snap.Overall = s.Overall
		snap.Axes["similarity"] = s.Similarity
		snap.Axes["complementarity"] = s.Complementarity
		snap.Axes["attachment"] = s.AttachmentMatch
		snap.Axes["conflict"] = s.ConflictMatch
		snap.Axes["social"] = s.SocialMatch
		snap.Axes["values"] = s.ValuesMatch
	case StrategyResonance:
		res, err := current.model.Total(a, b, r, feasibility)
		if err != nil {
			return snapshot.Snapshot{}, err
		}
		snap.Resonance = &res
		snap.Alignments = resonance.DimensionAlignments(a, b)
		snap.Overall = res.SHat
		snap.Inputs.Feasibility = res.Feasibility
		snap.Axes["c_traits"] = res.CTraits
		snap.Axes["c_res"] = res.CRes
		snap.Axes["c_total"] = res.CTotal
		snap.Axes["feasibility"] = res.Feasibility
		for id, v := range snap.Alignments {
			snap.Axes["alignment_"+string(id)] = v
		}
	}

	if err := e.adjuncts(&snap, req); err != nil {
		return snapshot.Snapshot{}, err
	}

	c := tier.Classify(snap.Overall)
	snap.Tier = c.Tier
	snap.TierLabel = c.Label
	snap.SoulmateFlag = snap.Overall >= tier.SoulmateThreshold
	snap.Explanation = explain(snap)
	snap.CreatedAt = e.now()
	return snap, nil
}

// #endregion score

// #region adjuncts
// adjuncts adds birthdate axes. They never change the overall score.
func (e *Engine) adjuncts(snap *snapshot.Snapshot, req Request) error {
	if req.BirthdateA == "" || req.BirthdateB == "" {
		return nil
	}
	if req.AllowAstrology {
		v, err := birthdate.AstrologyCompatibility(req.BirthdateA, req.BirthdateB)
		if err != nil {
			return err
		}
		snap.Axes["astrology"] = v
		snap.AstroUsed = true
	}
	if req.AllowNumerology {
		v, err := birthdate.NumerologyCompatibility(req.BirthdateA, req.BirthdateB)
		if err != nil {
			return err
		}
		snap.Axes["numerology"] = v
		snap.NumUsed = true
	}
	return nil
}

func explain(snap snapshot.Snapshot) string {
	out := fmt.Sprintf("Compatibility score: %.2f. ", snap.Overall)
	if snap.AstroUsed {
		out += "Astrology insights included. "
	}
	if snap.NumUsed {
		out += "Numerology insights included. "
	}
	return out
}

// #endregion adjuncts

// #region helpers
func copyOf(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// #endregion helpers
