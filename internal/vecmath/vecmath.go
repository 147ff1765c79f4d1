// Package vecmath holds the numeric building blocks shared by both scoring models.
// Every function is pure and never mutates its arguments.
package vecmath

import (
	"fmt"
	"math"
)

// NeutralSimilarity is returned by CosineSimilarity when either vector has zero norm.
const NeutralSimilarity = 0.5

// #region validation
func checkPair(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return ErrEmptyVector
	}
	return nil
}

// #endregion validation

// #region products
// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Norm returns the L2 norm of v. The norm of an empty vector is 0.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// #endregion products

// #region distances
// EuclideanDistance returns sqrt(Σ(aᵢ−bᵢ)²).
func EuclideanDistance(a, b []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// WeightedEuclideanDistance returns sqrt(Σ wᵢ(aᵢ−bᵢ)²). With all weights 1 it equals
// EuclideanDistance bit for bit.
func WeightedEuclideanDistance(a, b, w []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	if len(w) != len(a) {
		return 0, fmt.Errorf("%w: %d weights for %d dimensions", ErrDimensionMismatch, len(w), len(a))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += w[i] * d * d
	}
	return math.Sqrt(sum), nil
}

// CosineSimilarity returns dot(a,b)/(‖a‖·‖b‖). When either norm is zero the
// result is NeutralSimilarity instead of an error. Finite inputs whose squares
// overflow or underflow are rescaled first, so the result stays in [-1, 1].
func CosineSimilarity(a, b []float64) (float64, error) {
	if err := checkPair(a, b); err != nil {
		return 0, err
	}
	dot, denom := cosineTerms(a, b, 1, 1)
	if denom == 0 || math.IsInf(denom, 0) || math.IsInf(dot, 0) {
		sa, sb := maxAbs(a), maxAbs(b)
		if sa == 0 || sb == 0 {
			return NeutralSimilarity, nil
		}
		dot, denom = cosineTerms(a, b, sa, sb)
	}
	return dot / denom, nil
}

func cosineTerms(a, b []float64, sa, sb float64) (dot, denom float64) {
	var normA, normB float64
	for i := range a {
		x, y := a[i]/sa, b[i]/sb
		dot += x * y
		normA += x * x
		normB += y * y
	}
	return dot, math.Sqrt(normA) * math.Sqrt(normB)
}

func maxAbs(v []float64) float64 {
	var m float64
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}

// #endregion distances

// #region statistics
// Mean returns the arithmetic mean of v.
func Mean(v []float64) (float64, error) {
	if len(v) == 0 {
		return 0, ErrEmptyVector
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v)), nil
}

// Variance returns the population variance of v (divides by N).
func Variance(v []float64) (float64, error) {
	m, err := Mean(v)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range v {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(v)), nil
}

// SegmentAverage returns the mean of v[start..end], both bounds inclusive.
func SegmentAverage(v []float64, start, end int) (float64, error) {
	if start < 0 || end >= len(v) || start > end {
		return 0, fmt.Errorf("%w: [%d, %d] in vector of length %d", ErrIndexOutOfRange, start, end, len(v))
	}
	return Mean(v[start : end+1])
}

// #endregion statistics

// #region clamp
// Clamp bounds x to [lo, hi]. NaN passes through unchanged.
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// #endregion clamp
