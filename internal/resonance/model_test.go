package resonance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func traits(v float64) profile.TraitVector {
	t, _ := profile.NewTraitVector(fill(profile.TraitDims, v))
	return t
}

func flatResonance(v float64) profile.ResonanceVector {
	r, _ := profile.NewResonanceVector(fill(profile.ResonanceDims, v))
	return r
}

// #region total-tests
func TestSelfTraitCompatibilityIsOne(t *testing.T) {
	m := DefaultModel()
	for _, v := range []float64{0, 0.3, 0.5, 1} {
		res, err := m.Total(traits(v), traits(v), flatResonance(0.2), 1.0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, res.CTraits)
	}
}

func TestTotalCompatibilityFlatResonance(t *testing.T) {
	res, err := TotalCompatibility(fill(32, 0.5), fill(32, 0.5), fill(7, 0.5), 1.0)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.CTraits)
	assert.Equal(t, 0.75, res.CRes)
	assert.InDelta(t, 0.9, res.CTotal, 1e-12)
	assert.InDelta(t, 0.9, res.SHat, 1e-12)
	assert.Equal(t, 1.0, res.Feasibility)
}

func TestTotalCompatibilityRejectsWrongDimensions(t *testing.T) {
	cases := []struct {
		name      string
		p1, p2, r []float64
	}{
		{"short p1", fill(31, 0.5), fill(32, 0.5), fill(7, 0.5)},
		{"long p2", fill(32, 0.5), fill(33, 0.5), fill(7, 0.5)},
		{"short resonance", fill(32, 0.5), fill(32, 0.5), fill(6, 0.5)},
		{"long resonance", fill(32, 0.5), fill(32, 0.5), fill(8, 0.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TotalCompatibility(tc.p1, tc.p2, tc.r, 1.0)
			assert.ErrorIs(t, err, profile.ErrInvalidDimension)
			assert.ErrorIs(t, err, vecmath.ErrDimensionMismatch)
		})
	}
}

func TestFeasibilityIsClamped(t *testing.T) {
	m := DefaultModel()
	a, b, r := traits(0.4), traits(0.6), flatResonance(0.5)

	high, err := m.Total(a, b, r, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, high.Feasibility)
	assert.Equal(t, high.CTotal, high.SHat)

	low, err := m.Total(a, b, r, -0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.Feasibility)
	assert.Equal(t, 0.0, low.SHat)

	half, err := m.Total(a, b, r, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5*half.CTotal, half.SHat)

	_, err = m.Total(a, b, r, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidFeasibility)
}

func TestTraitCompatibilityDecreasesWithDistance(t *testing.T) {
	m := DefaultModel()
	near := m.TraitCompatibility(traits(0.5), traits(0.55))
	far := m.TraitCompatibility(traits(0.5), traits(0.9))
	assert.Greater(t, near, far)
	assert.Greater(t, far, 0.0)
}

// #endregion total-tests

// #region weight-tests
func TestUnitAlphasMatchEuclidean(t *testing.T) {
	a := traits(0.2)
	b := traits(0.7)
	b[3], b[20] = 0.1, 0.95

	want, err := vecmath.EuclideanDistance(a[:], b[:])
	require.NoError(t, err)
	assert.Equal(t, want, DefaultModel().TraitDistance(a, b))
}

func TestAlphasWeightDistance(t *testing.T) {
	w := DefaultWeights()
	for i := range w.Alphas {
		w.Alphas[i] = 0
	}
	w.Alphas[0] = 4
	m, err := NewModel(w)
	require.NoError(t, err)

	a := traits(0.5)
	b := traits(0.5)
	b[0] = 1.0
	b[31] = 0.0 // zero alpha, ignored

	assert.Equal(t, 1.0, m.TraitDistance(a, b))
	assert.Equal(t, math.Exp(-1), m.TraitCompatibility(a, b))
}

func TestValidateWeights(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	even := DefaultWeights()
	even.GammaTraits, even.GammaResonance = 0.5, 0.5
	assert.NoError(t, even.Validate())

	nearly := DefaultWeights()
	nearly.BetaMean = 0.5005
	assert.NoError(t, nearly.Validate())

	cases := map[string]func(w *Weights){
		"beta sum":       func(w *Weights) { w.BetaStability = 0.6 },
		"gamma sum":      func(w *Weights) { w.GammaTraits = 0.9 },
		"negative alpha": func(w *Weights) { w.Alphas[7] = -1 },
		"nan gamma":      func(w *Weights) { w.GammaResonance = math.NaN() },
		"inf outcome":    func(w *Weights) { w.Outcome.Growth = math.Inf(1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			w := DefaultWeights()
			mutate(&w)
			assert.ErrorIs(t, w.Validate(), ErrInvalidWeights)
			_, err := NewModel(w)
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}
}

// #endregion weight-tests

// #region resonance-tests
func TestStabilityClamp(t *testing.T) {
	assert.Equal(t, 1.0, Stability(flatResonance(0.3)))

	wild := profile.ResonanceVector{0, 10, 0, 10, 0, 10, 0}
	assert.Equal(t, 0.0, Stability(wild))
}

func TestResonanceCompatibilityUsesBetas(t *testing.T) {
	w := DefaultWeights()
	w.BetaMean, w.BetaStability = 1, 0
	m, err := NewModel(w)
	require.NoError(t, err)

	r := profile.ResonanceVector{0.25, 0.25, 0.25, 0.25, 0.25, 0.25, 0.25}
	assert.Equal(t, 0.25, m.ResonanceCompatibility(r))
}

// #endregion resonance-tests

// #region outcome-tests
func TestSoulmateScore(t *testing.T) {
	m := DefaultModel()
	all := Outcome{1, 1, 1, 1, 1, 1}
	assert.Equal(t, 4.0, m.SoulmateScore(all))

	toxic := Outcome{ConflictToxicity: 1}
	assert.Equal(t, -1.0, m.SoulmateScore(toxic))
}

// #endregion outcome-tests
