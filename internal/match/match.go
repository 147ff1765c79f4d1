// Package match implements the weighted-segment compatibility model: cosine
// similarity, complementarity and four segment comparators blended into one
// overall score, plus rule-based strengths, challenges and insights.
package match

import (
	"fmt"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

// #region calculate
// Calculate scores two raw trait vectors. Both must have exactly 32 values;
// anything else fails with profile.ErrInvalidDimension.
func Calculate(userTraits, partnerTraits []float64) (Score, error) {
	a, err := profile.NewTraitVector(userTraits)
	if err != nil {
		return Score{}, fmt.Errorf("user traits: %w", err)
	}
	b, err := profile.NewTraitVector(partnerTraits)
	if err != nil {
		return Score{}, fmt.Errorf("partner traits: %w", err)
	}
	return CalculateVectors(a, b), nil
}

// CalculateVectors scores two validated trait vectors.
func CalculateVectors(a, b profile.TraitVector) Score {
	c := components{
		similarity:      Similarity(a, b),
		complementarity: Complementarity(a, b),
		attachment:      AttachmentMatch(a, b),
		conflict:        ConflictMatch(a, b),
		social:          SocialMatch(a, b),
		values:          ValuesMatch(a, b),
		socialDiff:      socialDifference(a, b),
	}

	return Score{
		Overall:         overall(c, DefaultWeights()),
		Similarity:      c.similarity,
		Complementarity: c.complementarity,
		AttachmentMatch: c.attachment,
		ConflictMatch:   c.conflict,
		SocialMatch:     c.social,
		ValuesMatch:     c.values,
		Strengths:       strengths(c),
		Challenges:      challenges(c),
		Insights:        insights(c),
	}
}

// #endregion calculate

// #region overall
func overall(c components, w Weights) float64 {
	sum := w.Similarity*c.similarity +
		w.Complementarity*c.complementarity +
		w.Attachment*c.attachment +
		w.Conflict*c.conflict +
		w.Social*c.social +
		w.Values*c.values
	return vecmath.Clamp(sum, 0, 1)
}

// #endregion overall
