// Package resonance implements the exponential/resonance compatibility model:
// trait compatibility decays exponentially with weighted trait distance and is
// blended with a pair's resonance mean and stability.
package resonance

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

const sumTolerance = 1e-3

// #region validate
// Validate checks that every weight is finite and non-negative and that both
// blend pairs sum to 1.
func (w Weights) Validate() error {
	for i, a := range w.Alphas {
		if !finiteNonNegative(a) {
			return fmt.Errorf("%w: alpha[%d] = %v", ErrInvalidWeights, i, a)
		}
	}
	named := []struct {
		name string
		v    float64
	}{
		{"beta_mean", w.BetaMean},
		{"beta_stability", w.BetaStability},
		{"gamma_traits", w.GammaTraits},
		{"gamma_resonance", w.GammaResonance},
		{"outcome.longevity", w.Outcome.Longevity},
		{"outcome.satisfaction", w.Outcome.Satisfaction},
		{"outcome.growth", w.Outcome.Growth},
		{"outcome.conflict_toxicity", w.Outcome.ConflictToxicity},
		{"outcome.repair_efficiency", w.Outcome.RepairEfficiency},
		{"outcome.trajectory_alignment", w.Outcome.TrajectoryAlignment},
	}
	for _, n := range named {
		if !finiteNonNegative(n.v) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidWeights, n.name, n.v)
		}
	}
	if s := w.BetaMean + w.BetaStability; math.Abs(s-1) > sumTolerance {
		return fmt.Errorf("%w: beta weights sum to %v", ErrInvalidWeights, s)
	}
	if s := w.GammaTraits + w.GammaResonance; math.Abs(s-1) > sumTolerance {
		return fmt.Errorf("%w: gamma weights sum to %v", ErrInvalidWeights, s)
	}
	return nil
}

func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}

// #endregion validate

// #region model
// Model scores trait and resonance vectors under a fixed weight set.
// It holds no mutable state and is safe for concurrent use.
type Model struct {
	weights Weights
}

// NewModel validates w and returns a model using it.
func NewModel(w Weights) (*Model, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Model{weights: w}, nil
}

// DefaultModel returns a model with DefaultWeights.
func DefaultModel() *Model {
	return &Model{weights: DefaultWeights()}
}

// Weights returns a copy of the model's weights.
func (m *Model) Weights() Weights {
	return m.weights
}

// #endregion model

// #region traits
// TraitDistance is sqrt(Σ αₖ(aₖ−bₖ)²).
func (m *Model) TraitDistance(a, b profile.TraitVector) float64 {
	d, _ := vecmath.WeightedEuclideanDistance(a[:], b[:], m.weights.Alphas[:])
	return d
}

// TraitCompatibility is exp(−TraitDistance), in (0, 1].
func (m *Model) TraitCompatibility(a, b profile.TraitVector) float64 {
	return math.Exp(-m.TraitDistance(a, b))
}

// #endregion traits

// #region resonance
// Stability is 1 − population variance of r, clamped to [0, 1].
func Stability(r profile.ResonanceVector) float64 {
	v, _ := vecmath.Variance(r[:])
	return vecmath.Clamp(1-v, 0, 1)
}

// ResonanceCompatibility is β_mean·mean(r) + β_stability·Stability(r).
func (m *Model) ResonanceCompatibility(r profile.ResonanceVector) float64 {
	mean, _ := vecmath.Mean(r[:])
	return m.weights.BetaMean*mean + m.weights.BetaStability*Stability(r)
}

// #endregion resonance

// #region total
// Total blends trait and resonance compatibility and scales the blend by
// feasibility. Feasibility is clamped to [0, 1]; NaN is rejected.
func (m *Model) Total(a, b profile.TraitVector, r profile.ResonanceVector, feasibility float64) (Result, error) {
	if math.IsNaN(feasibility) {
		return Result{}, ErrInvalidFeasibility
	}
	feasibility = vecmath.Clamp(feasibility, 0, 1)

	cTraits := m.TraitCompatibility(a, b)
	cRes := m.ResonanceCompatibility(r)
	cTotal := m.weights.GammaTraits*cTraits + m.weights.GammaResonance*cRes

	return Result{
		CTraits:     cTraits,
		CRes:        cRes,
		CTotal:      cTotal,
		SHat:        feasibility * cTotal,
		Feasibility: feasibility,
	}, nil
}

// TotalCompatibility scores raw slices with the default model. Trait vectors
// must have 32 values and the resonance vector 7.
func TotalCompatibility(p1, p2, r []float64, feasibility float64) (Result, error) {
	a, err := profile.NewTraitVector(p1)
	if err != nil {
		return Result{}, fmt.Errorf("p1: %w", err)
	}
	b, err := profile.NewTraitVector(p2)
	if err != nil {
		return Result{}, fmt.Errorf("p2: %w", err)
	}
	res, err := profile.NewResonanceVector(r)
	if err != nil {
		return Result{}, fmt.Errorf("resonance: %w", err)
	}
	return DefaultModel().Total(a, b, res, feasibility)
}

// #endregion total
