// Package tier buckets compatibility scores into named tiers and flags the
// top slice of a batch as soulmate candidates.
package tier

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// #region tiers
// Tier is a named score bucket.
type Tier string

const (
	Soulmate    Tier = "soulmate"
	Excellent   Tier = "excellent"
	Good        Tier = "good"
	Moderate    Tier = "moderate"
	Challenging Tier = "challenging"
)

// Lower bounds, inclusive.
const (
	SoulmateThreshold  = 0.85
	ExcellentThreshold = 0.75
	GoodThreshold      = 0.65
	ModerateThreshold  = 0.50
)

// Classification is a tier plus its display label.
type Classification struct {
	Tier  Tier   `json:"tier"`
	Label string `json:"label"`
}

var labels = map[Tier]string{
	Soulmate:    "Soulmate Tier",
	Excellent:   "Excellent Match",
	Good:        "Good Match",
	Moderate:    "Moderate Match",
	Challenging: "Challenging Match",
}

// Label returns the display label for t.
func (t Tier) Label() string {
	return labels[t]
}

// Classify maps any float to a tier. Scores above 1 are soulmate; scores
// below 0 and NaN are challenging.
func Classify(score float64) Classification {
	var t Tier
	switch {
	case score >= SoulmateThreshold:
		t = Soulmate
	case score >= ExcellentThreshold:
		t = Excellent
	case score >= GoodThreshold:
		t = Good
	case score >= ModerateThreshold:
		t = Moderate
	default:
		t = Challenging
	}
	return Classification{Tier: t, Label: t.Label()}
}

// #endregion tiers

// #region soulmate-flags
// DefaultTopPercent flags the top 10% of a batch.
const DefaultTopPercent = 0.10

// ErrInvalidTopPercent is returned when topPercent is outside (0, 1].
var ErrInvalidTopPercent = errors.New("tier: top percent must be in (0, 1]")

// SoulmateFlags marks every score at or above the (1 − topPercent) percentile
// of the batch. The percentile interpolates linearly between order statistics.
// The result is index-aligned with scores.
func SoulmateFlags(scores []float64, topPercent float64) ([]bool, error) {
	if math.IsNaN(topPercent) || topPercent <= 0 || topPercent > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidTopPercent, topPercent)
	}
	flags := make([]bool, len(scores))
	if len(scores) == 0 {
		return flags, nil
	}
	threshold := Percentile(scores, 1-topPercent)
	for i, s := range scores {
		flags[i] = s >= threshold
	}
	return flags, nil
}

// Percentile returns the q-quantile (q in [0, 1]) of values using linear
// interpolation. values is not modified. It returns NaN for an empty input.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q = math.Max(0, math.Min(1, q))
	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// #endregion soulmate-flags
