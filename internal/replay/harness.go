// Package replay re-scores recorded pairs and reports how far the current
// model has drifted from the results they produced.
package replay

import (
	"context"
	"math"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region types
// Evaluator scores a request without side effects.
type Evaluator interface {
	Evaluate(ctx context.Context, req engine.Request) (snapshot.Snapshot, error)
}

// Status is the outcome of one replayed case.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusErrored Status = "errored"
)

// CaseResult captures the outcome of replaying one case.
type CaseResult struct {
	ID       string    `json:"id"`
	Status   Status    `json:"status"`
	Expected float64   `json:"expected"`
	Actual   float64   `json:"actual"`
	Drift    float64   `json:"drift"`
	Tier     tier.Tier `json:"tier,omitempty"`
	Reason   string    `json:"reason"`
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errored  int     `json:"errored"`
	MaxDrift float64 `json:"max_drift"`
}

// OK reports whether every case passed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// #endregion types

// #region replay
// Replay scores every case in order. A case fails when its overall drifts
// past the fixture tolerance or its tier changes; a scoring error marks it
// errored and replay moves on. Only a cancelled context stops the run.
func Replay(ctx context.Context, ev Evaluator, f *Fixture) ([]CaseResult, error) {
	tolerance := f.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	results := make([]CaseResult, 0, len(f.Cases))

	for _, c := range f.Cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r := CaseResult{ID: c.ID, Expected: c.Expected.Overall}
		snap, err := ev.Evaluate(ctx, c.ToRequest())
		if err != nil {
			r.Status = StatusErrored
			r.Reason = err.Error()
			results = append(results, r)
			continue
		}

		r.Actual = snap.Overall
		r.Tier = snap.Tier
		r.Drift = math.Abs(snap.Overall - c.Expected.Overall)
		switch {
		case r.Drift > tolerance:
			r.Status = StatusFailed
			r.Reason = "overall drifted past tolerance"
		case c.Expected.Tier != "" && snap.Tier != c.Expected.Tier:
			r.Status = StatusFailed
			r.Reason = "tier changed from " + string(c.Expected.Tier) + " to " + string(snap.Tier)
		default:
			r.Status = StatusPassed
			r.Reason = "within tolerance"
		}
		results = append(results, r)
	}

	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusErrored:
			s.Errored++
		}
		if r.Status != StatusErrored && r.Drift > s.MaxDrift {
			s.MaxDrift = r.Drift
		}
	}
	return s
}

// #endregion replay
