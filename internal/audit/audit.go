// Package audit checks scorer inputs for non-finite and out-of-range values.
// It reports; it never clamps or rewrites the vectors it is given.
package audit

import (
	"fmt"
	"math"
)

// #region audit-harness
// Harness audits named input vectors against a Config.
type Harness struct {
	config Config
}

// NewHarness creates an audit harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Run audits every input and returns pass/fail with metrics. min and max
// metrics are informational and always pass.
func (h *Harness) Run(inputs ...Input) Result {
	var metrics []Metric
	var warnings []string

	for _, in := range inputs {
		nonFinite, outOfRange := 0, 0
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range in.Values {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				nonFinite++
				continue
			}
			if x < h.config.Min || x > h.config.Max {
				outOfRange++
			}
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}

		metrics = append(metrics,
			Metric{Name: in.Name + "_non_finite", Value: float64(nonFinite), Pass: nonFinite == 0},
			Metric{Name: in.Name + "_out_of_range", Value: float64(outOfRange), Pass: outOfRange == 0},
		)
		if !math.IsInf(lo, 0) {
			metrics = append(metrics,
				Metric{Name: in.Name + "_min", Value: lo, Pass: true},
				Metric{Name: in.Name + "_max", Value: hi, Pass: true},
			)
		}

		if nonFinite > 0 {
			warnings = append(warnings, fmt.Sprintf("%s has %d non-finite values", in.Name, nonFinite))
		}
		if outOfRange > 0 {
			warnings = append(warnings, fmt.Sprintf("%s has %d values outside [%g, %g]", in.Name, outOfRange, h.config.Min, h.config.Max))
		}
	}

	reason := "all checks passed"
	switch len(warnings) {
	case 0:
	case 1:
		reason = fmt.Sprintf("audit failed: %s", warnings[0])
	default:
		reason = fmt.Sprintf("audit failed: %d checks: %s", len(warnings), warnings[0])
	}

	return Result{
		Passed:   len(warnings) == 0,
		Metrics:  metrics,
		Warnings: warnings,
		Reason:   reason,
	}
}

// #endregion audit-harness
