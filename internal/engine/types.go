package engine

import (
	"errors"
	"fmt"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// #region errors
var (
	// ErrUnknownStrategy is returned for a strategy name not in Strategies.
	ErrUnknownStrategy = errors.New("engine: unknown strategy")

	// ErrMissingResonance is returned when the resonance strategy has no resonance vector.
	ErrMissingResonance = errors.New("engine: resonance vector required")

	// ErrInputRejected is returned when the input audit fails and rejection is enabled.
	ErrInputRejected = errors.New("engine: input rejected")
)

// #endregion errors

// #region strategy-id
// StrategyID names a scoring formula.
type StrategyID string

const (
	StrategyWeightedSegment StrategyID = "weighted_segment"
	StrategyResonance       StrategyID = "resonance"
)

// StrategyConfig describes a formula and what it needs.
type StrategyConfig struct {
	ID             StrategyID
	Description    string
	NeedsResonance bool
}

// Strategies is the full set of selectable formulas.
var Strategies = map[StrategyID]StrategyConfig{
	StrategyWeightedSegment: {
		ID:             StrategyWeightedSegment,
		Description:    "cosine similarity, complementarity and segment comparators",
		NeedsResonance: false,
	},
	StrategyResonance: {
		ID:             StrategyResonance,
		Description:    "exponential trait decay blended with resonance mean and stability",
		NeedsResonance: true,
	},
}

// ParseStrategy resolves a strategy name.
func ParseStrategy(s string) (StrategyID, error) {
	id := StrategyID(s)
	if _, ok := Strategies[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return id, nil
}

// #endregion strategy-id

// #region engine-config
// Config holds engine behavior that is not part of either formula.
type Config struct {
	ModelVersion       string
	DefaultStrategy    StrategyID
	RejectOutOfRange   bool    // fail requests whose inputs fail the audit
	RankConcurrency    int     // max candidates scored at once by Rank
	SoulmateTopPercent float64 // share of a ranked batch flagged as soulmates
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ModelVersion:       "1.0.0",
		DefaultStrategy:    StrategyWeightedSegment,
		RejectOutOfRange:   false,
		RankConcurrency:    4,
		SoulmateTopPercent: tier.DefaultTopPercent,
	}
}

// #endregion engine-config

// #region request
// Request asks for one pair to be scored. UserB may be empty for a
// hypothetical partner. A nil Feasibility means 1.
type Request struct {
	UserA           string
	UserB           string
	TraitsA         []float64
	TraitsB         []float64
	Resonance       []float64
	Feasibility     *float64
	BirthdateA      string
	BirthdateB      string
	Strategy        StrategyID // empty uses Config.DefaultStrategy
	AllowAstrology  bool
	AllowNumerology bool
}

// #endregion request

// #region rank
// Candidate is one potential partner in a ranking request.
type Candidate struct {
	ID        string    `json:"id"`
	Traits    []float64 `json:"traits"`
	Resonance []float64 `json:"resonance,omitempty"`
	Birthdate string    `json:"birthdate,omitempty"`
}

// RankRequest scores one user against many candidates.
type RankRequest struct {
	UserID          string
	Traits          []float64
	Birthdate       string
	Candidates      []Candidate
	Strategy        StrategyID
	Feasibility     *float64
	AllowAstrology  bool
	AllowNumerology bool
}

// Ranked is one candidate's place in a ranking. SoulmateFlag marks the top
// slice of this batch, independent of the snapshot's tier-based flag.
type Ranked struct {
	Rank         int               `json:"rank"`
	CandidateID  string            `json:"candidate_id"`
	Overall      float64           `json:"overall"`
	Tier         tier.Tier         `json:"tier"`
	SoulmateFlag bool              `json:"soulmate_flag"`
	Snapshot     snapshot.Snapshot `json:"snapshot"`
}

// #endregion rank
