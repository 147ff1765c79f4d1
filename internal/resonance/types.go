package resonance

import (
	"errors"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
)

// #region errors
var (
	// ErrInvalidWeights is returned when a weight set is non-finite, negative,
	// or a blend pair does not sum to 1.
	ErrInvalidWeights = errors.New("resonance: invalid weights")

	// ErrInvalidFeasibility is returned for a NaN feasibility multiplier.
	ErrInvalidFeasibility = errors.New("resonance: invalid feasibility")
)

// #endregion errors

// #region weights
// Weights parameterizes the exponential/resonance model.
type Weights struct {
	Alphas         [profile.TraitDims]float64 `json:"alphas"`          // per-dimension distance weights
	BetaMean       float64                    `json:"beta_mean"`       // resonance mean share
	BetaStability  float64                    `json:"beta_stability"`  // resonance stability share
	GammaTraits    float64                    `json:"gamma_traits"`    // trait compatibility share of c_total
	GammaResonance float64                    `json:"gamma_resonance"` // resonance compatibility share of c_total
	Outcome        OutcomeWeights             `json:"outcome"`
}

// DefaultWeights returns unit alphas, an even resonance split and a 0.6/0.4
// trait/resonance blend.
func DefaultWeights() Weights {
	w := Weights{
		BetaMean:       0.5,
		BetaStability:  0.5,
		GammaTraits:    0.6,
		GammaResonance: 0.4,
		Outcome:        DefaultOutcomeWeights(),
	}
	for i := range w.Alphas {
		w.Alphas[i] = 1.0
	}
	return w
}

// #endregion weights

// #region result
// Result is the output of Total.
type Result struct {
	CTraits     float64 `json:"c_traits"`
	CRes        float64 `json:"c_res"`
	CTotal      float64 `json:"c_total"`
	SHat        float64 `json:"s_hat"`
	Feasibility float64 `json:"feasibility"`
}

// Alignments maps each named segment to 1 − mean absolute difference, in [0, 1].
type Alignments map[profile.SegmentID]float64

// #endregion result

// #region outcome
// Outcome holds observed relationship outcomes, each in [0, 1] with higher
// better, except ConflictToxicity which counts against the score.
type Outcome struct {
	Longevity           float64 `json:"longevity"`
	Satisfaction        float64 `json:"satisfaction"`
	Growth              float64 `json:"growth"`
	ConflictToxicity    float64 `json:"conflict_toxicity"`
	RepairEfficiency    float64 `json:"repair_efficiency"`
	TrajectoryAlignment float64 `json:"trajectory_alignment"`
}

// OutcomeWeights are the w1..w6 coefficients of the soulmate score.
type OutcomeWeights struct {
	Longevity           float64 `json:"longevity"`
	Satisfaction        float64 `json:"satisfaction"`
	Growth              float64 `json:"growth"`
	ConflictToxicity    float64 `json:"conflict_toxicity"`
	RepairEfficiency    float64 `json:"repair_efficiency"`
	TrajectoryAlignment float64 `json:"trajectory_alignment"`
}

// DefaultOutcomeWeights weights every outcome equally.
func DefaultOutcomeWeights() OutcomeWeights {
	return OutcomeWeights{1, 1, 1, 1, 1, 1}
}

// #endregion outcome
