package resonance

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

// DimensionAlignments returns 1 − (Σ|aᵢ−bᵢ|)/width for every segment, clamped to [0, 1].
func DimensionAlignments(a, b profile.TraitVector) Alignments {
	out := make(Alignments, len(profile.Segments))
	for _, seg := range profile.Segments {
		var sum float64
		for i := seg.Start; i < seg.End; i++ {
			sum += math.Abs(a[i] - b[i])
		}
		out[seg.ID] = vecmath.Clamp(1-sum/float64(seg.Width()), 0, 1)
	}
	return out
}

// CalculateDimensionAlignments is DimensionAlignments over raw slices.
func CalculateDimensionAlignments(p1, p2 []float64) (Alignments, error) {
	a, err := profile.NewTraitVector(p1)
	if err != nil {
		return nil, fmt.Errorf("p1: %w", err)
	}
	b, err := profile.NewTraitVector(p2)
	if err != nil {
		return nil, fmt.Errorf("p2: %w", err)
	}
	return DimensionAlignments(a, b), nil
}
