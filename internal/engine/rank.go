package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region rank
// Rank scores req.Traits against every candidate, at most RankConcurrency at
// a time, and returns them best first. Ties keep candidate id order. The top
// SoulmateTopPercent of the batch is flagged. Ranked snapshots are not persisted.
func (e *Engine) Rank(ctx context.Context, req RankRequest) ([]Ranked, error) {
	if len(req.Candidates) == 0 {
		return []Ranked{}, nil
	}

	snaps := make([]snapshot.Snapshot, len(req.Candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.RankConcurrency)

	for i, c := range req.Candidates {
		g.Go(func() error {
			snap, err := e.compute(gctx, Request{
				UserA:           req.UserID,
				UserB:           c.ID,
				TraitsA:         req.Traits,
				TraitsB:         c.Traits,
				Resonance:       c.Resonance,
				Feasibility:     req.Feasibility,
				BirthdateA:      req.Birthdate,
				BirthdateB:      c.Birthdate,
				Strategy:        req.Strategy,
				AllowAstrology:  req.AllowAstrology,
				AllowNumerology: req.AllowNumerology,
			})
			if err != nil {
				return fmt.Errorf("candidate %s: %w", c.ID, err)
			}
			snaps[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Ranked, len(snaps))
	for i, s := range snaps {
		out[i] = Ranked{
			CandidateID: req.Candidates[i].ID,
			Overall:     s.Overall,
			Tier:        s.Tier,
			Snapshot:    s,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overall != out[j].Overall {
			return out[i].Overall > out[j].Overall
		}
		return out[i].CandidateID < out[j].CandidateID
	})

	scores := make([]float64, len(out))
	for i := range out {
		scores[i] = out[i].Overall
	}
	flags, err := tier.SoulmateFlags(scores, e.config.SoulmateTopPercent)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Rank = i + 1
		out[i].SoulmateFlag = flags[i]
	}
	return out, nil
}

// #endregion rank
