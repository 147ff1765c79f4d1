package snapshot

import (
	"time"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/audit"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region snapshot
// Snapshot is one scored pair as it was computed: inputs, model version and
// every derived value. UserB is empty for a hypothetical partner.
type Snapshot struct {
	SnapshotID   string             `json:"snapshot_id"`
	UserA        string             `json:"user_a_id"`
	UserB        string             `json:"user_b_id,omitempty"`
	ModelVersion string             `json:"model_version"`
	Strategy     string             `json:"strategy"`
	Overall      float64            `json:"score_overall"`
	Axes         map[string]float64 `json:"score_axes"`
	Tier         tier.Tier          `json:"tier"`
	TierLabel    string             `json:"tier_label"`
	AstroUsed    bool               `json:"astro_used"`
	NumUsed      bool               `json:"num_used"`
	SoulmateFlag bool               `json:"soulmate_flag"`
	Explanation  string             `json:"explanation_summary"`
	Warnings     []string           `json:"warnings,omitempty"`
	Audit        []audit.Metric     `json:"audit,omitempty"`

	// Exactly one of Match and Resonance is set, matching Strategy.
	Match      *match.Score         `json:"match,omitempty"`
	Resonance  *resonance.Result    `json:"resonance,omitempty"`
	Alignments resonance.Alignments `json:"alignments,omitempty"`

	Inputs    Inputs    `json:"inputs"`
	CreatedAt time.Time `json:"created_at"`
}

// Inputs are the raw request values a snapshot was computed from.
type Inputs struct {
	TraitsA     []float64 `json:"traits_a"`
	TraitsB     []float64 `json:"traits_b"`
	Resonance   []float64 `json:"resonance,omitempty"`
	Feasibility float64   `json:"feasibility"`
	BirthdateA  string    `json:"birthdate_a,omitempty"`
	BirthdateB  string    `json:"birthdate_b,omitempty"`
}

// #endregion snapshot
