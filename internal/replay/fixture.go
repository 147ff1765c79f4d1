package replay

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
)

// DefaultTolerance is the allowed overall drift when a fixture leaves it unset.
const DefaultTolerance = 1e-9

// #region fixture-types

// Fixture is the top-level JSON structure for a regression fixture.
type Fixture struct {
	Description  string        `json:"description"`
	ModelVersion string        `json:"model_version,omitempty"`
	Tolerance    float64       `json:"tolerance"`
	Cases        []FixtureCase `json:"cases"`
}

// FixtureCase is one recorded pair and the result it produced.
type FixtureCase struct {
	ID              string          `json:"id"`
	Strategy        string          `json:"strategy"`
	AllowAstrology  bool            `json:"allow_astrology,omitempty"`
	AllowNumerology bool            `json:"allow_numerology,omitempty"`
	Inputs          snapshot.Inputs `json:"inputs"`
	Expected        FixtureExpected `json:"expected"`
}

// FixtureExpected captures the expected outcome per case.
type FixtureExpected struct {
	Overall float64   `json:"overall"`
	Tier    tier.Tier `json:"tier"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Tolerance <= 0 {
		f.Tolerance = DefaultTolerance
	}
	return &f, nil
}

// SaveFixture writes f as indented JSON, creating parent directories.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fixture dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// FromSnapshots turns stored snapshots into a fixture that expects each of
// them to score the same again.
func FromSnapshots(description string, tolerance float64, snaps []snapshot.Snapshot) *Fixture {
	f := &Fixture{
		Description: description,
		Tolerance:   tolerance,
		Cases:       make([]FixtureCase, 0, len(snaps)),
	}
	for _, s := range snaps {
		if f.ModelVersion == "" {
			f.ModelVersion = s.ModelVersion
		}
		f.Cases = append(f.Cases, FixtureCase{
			ID:              s.SnapshotID,
			Strategy:        s.Strategy,
			AllowAstrology:  s.AstroUsed,
			AllowNumerology: s.NumUsed,
			Inputs:          s.Inputs,
			Expected:        FixtureExpected{Overall: s.Overall, Tier: s.Tier},
		})
	}
	return f
}

// ToRequest converts a case into an engine request.
func (c *FixtureCase) ToRequest() engine.Request {
	feasibility := c.Inputs.Feasibility
	return engine.Request{
		TraitsA:         c.Inputs.TraitsA,
		TraitsB:         c.Inputs.TraitsB,
		Resonance:       c.Inputs.Resonance,
		Feasibility:     &feasibility,
		BirthdateA:      c.Inputs.BirthdateA,
		BirthdateB:      c.Inputs.BirthdateB,
		Strategy:        engine.StrategyID(c.Strategy),
		AllowAstrology:  c.AllowAstrology,
		AllowNumerology: c.AllowNumerology,
	}
}

// #endregion fixture-loader
