package match

import (
	"math"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/vecmath"
)

// Thresholds are product policy. Changing any of them changes every stored score.

// #region policy
const (
	secureLow  = 0.3
	secureHigh = 0.7

	conflictLow      = 0.4
	conflictModerate = 0.6
	conflictHigh     = 0.6

	socialClose    = 0.2
	socialModerate = 0.4

	valuesClose    = 0.15
	valuesModerate = 0.3

	idealDiff = 0.35
)

// #endregion policy

// #region segment-average
// segmentAverage is the mean of one named segment. The fixed-size vector
// guarantees the bounds are valid.
func segmentAverage(v profile.TraitVector, id profile.SegmentID) float64 {
	seg, _ := profile.SegmentByID(id)
	avg, _ := vecmath.SegmentAverage(v[:], seg.Start, seg.Last())
	return avg
}

func secure(x float64) bool {
	return x >= secureLow && x <= secureHigh
}

// #endregion segment-average

// #region attachment
// AttachmentMatch compares the Attachment & Regulation averages (indices 0–4).
func AttachmentMatch(a, b profile.TraitVector) float64 {
	avgA := segmentAverage(a, profile.SegmentAttachment)
	avgB := segmentAverage(b, profile.SegmentAttachment)

	switch {
	case secure(avgA) && secure(avgB):
		return 0.9
	case secure(avgA) || secure(avgB):
		return 0.7
	case (avgA > secureHigh && avgB > secureHigh) || (avgA < secureLow && avgB < secureLow):
		return 0.5
	default:
		// one anxious, one avoidant
		return 0.6
	}
}

// #endregion attachment

// #region conflict
// ConflictMatch compares the Conflict & Communication averages (indices 5–9).
// Lower averages mean calmer conflict styles.
func ConflictMatch(a, b profile.TraitVector) float64 {
	avgA := segmentAverage(a, profile.SegmentConflict)
	avgB := segmentAverage(b, profile.SegmentConflict)

	switch {
	case avgA < conflictLow && avgB < conflictLow:
		return 0.95
	case (avgA < conflictLow && avgB < conflictModerate) || (avgB < conflictLow && avgA < conflictModerate):
		return 0.8
	case avgA > conflictHigh && avgB > conflictHigh:
		return 0.4
	default:
		return 0.65
	}
}

// #endregion conflict

// #region social
// SocialMatch compares the Social & Interpersonal averages (indices 21–25).
func SocialMatch(a, b profile.TraitVector) float64 {
	diff := socialDifference(a, b)
	switch {
	case diff < socialClose:
		return 0.9
	case diff < socialModerate:
		return 0.75
	default:
		return 0.6
	}
}

func socialDifference(a, b profile.TraitVector) float64 {
	return math.Abs(segmentAverage(a, profile.SegmentSocial) - segmentAverage(b, profile.SegmentSocial))
}

// #endregion social

// #region values
// ValuesMatch compares the Value Architecture averages (indices 15–20).
func ValuesMatch(a, b profile.TraitVector) float64 {
	diff := math.Abs(segmentAverage(a, profile.SegmentValues) - segmentAverage(b, profile.SegmentValues))
	switch {
	case diff < valuesClose:
		return 0.95
	case diff < valuesModerate:
		return 0.8
	default:
		return 0.5
	}
}

// #endregion values

// #region complementarity
// Complementarity rewards a per-dimension difference close to 0.35 and
// averages max(0, 1 − ||aᵢ−bᵢ| − 0.35| / 0.35) over all 32 dimensions.
// Identical vectors score 0.
func Complementarity(a, b profile.TraitVector) float64 {
	var sum float64
	for i := range a {
		diff := math.Abs(a[i] - b[i])
		c := 1 - math.Abs(diff-idealDiff)/idealDiff
		sum += math.Max(0, c)
	}
	return sum / float64(len(a))
}

// #endregion complementarity

// #region similarity
// Similarity is the cosine similarity of the full vectors, 0.5 when either is all zeros.
func Similarity(a, b profile.TraitVector) float64 {
	s, _ := vecmath.CosineSimilarity(a[:], b[:])
	return s
}

// #endregion similarity
