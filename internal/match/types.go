package match

// #region score
// Score is the output of the weighted-segment model. Every field is derived
// from the two input vectors; nothing is cached between calls.
type Score struct {
	Overall         float64 `json:"overall"`
	Similarity      float64 `json:"similarity"`
	Complementarity float64 `json:"complementarity"`
	AttachmentMatch float64 `json:"attachment_match"`
	ConflictMatch   float64 `json:"conflict_match"`
	SocialMatch     float64 `json:"social_match"`
	ValuesMatch     float64 `json:"values_match"`

	Strengths  []string `json:"strengths"`
	Challenges []string `json:"challenges"`
	Insights   []string `json:"insights"`
}

// #endregion score

// #region weights
// Weights blends the six sub-scores into Overall.
type Weights struct {
	Similarity      float64
	Complementarity float64
	Attachment      float64
	Conflict        float64
	Social          float64
	Values          float64
}

// DefaultWeights returns the production blend. The values sum to 1.
func DefaultWeights() Weights {
	return Weights{
		Similarity:      0.25,
		Complementarity: 0.20,
		Attachment:      0.20,
		Conflict:        0.15,
		Social:          0.10,
		Values:          0.10,
	}
}

// #endregion weights

// #region components
// components holds the sub-scores the insight rules read.
type components struct {
	similarity      float64
	complementarity float64
	attachment      float64
	conflict        float64
	social          float64
	values          float64
	socialDiff      float64
}

// #endregion components
