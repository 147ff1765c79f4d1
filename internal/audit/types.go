package audit

// #region audit-config
// Config holds the nominal input range.
type Config struct {
	Min float64 // inclusive lower bound for a well-formed value
	Max float64 // inclusive upper bound for a well-formed value
}

// DefaultConfig accepts values in [0, 1].
func DefaultConfig() Config {
	return Config{Min: 0, Max: 1}
}

// #endregion audit-config

// #region audit-input
// Input is one named vector to audit.
type Input struct {
	Name   string
	Values []float64
}

// #endregion audit-input

// #region audit-metric
// Metric captures a single audit check.
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// #endregion audit-metric

// #region audit-result
// Result is the output of an audit run.
type Result struct {
	Passed   bool     `json:"passed"`
	Metrics  []Metric `json:"metrics"`
	Warnings []string `json:"warnings,omitempty"`
	Reason   string   `json:"reason"`
}

// #endregion audit-result
