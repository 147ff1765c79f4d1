// Package config loads scorer settings from a YAML file with environment
// overrides, and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// #region types
type OutcomeConfig struct {
	Longevity           float64 `yaml:"longevity"`
	Satisfaction        float64 `yaml:"satisfaction"`
	Growth              float64 `yaml:"growth"`
	ConflictToxicity    float64 `yaml:"conflict_toxicity"`
	RepairEfficiency    float64 `yaml:"repair_efficiency"`
	TrajectoryAlignment float64 `yaml:"trajectory_alignment"`
}

type ResonanceConfig struct {
	BetaMean       float64       `yaml:"beta_mean"`
	BetaStability  float64       `yaml:"beta_stability"`
	GammaTraits    float64       `yaml:"gamma_traits"`
	GammaResonance float64       `yaml:"gamma_resonance"`
	Alphas         []float64     `yaml:"alphas,omitempty"` // empty means all 1.0
	Outcome        OutcomeConfig `yaml:"outcome"`
}

// Config is the full scorer configuration.
type Config struct {
	DBPath             string          `yaml:"db_path"`
	GRPCAddr           string          `yaml:"grpc_addr"`
	LogLevel           string          `yaml:"log_level"`
	LogPretty          bool            `yaml:"log_pretty"`
	ModelVersion       string          `yaml:"model_version"`
	DefaultStrategy    string          `yaml:"default_strategy"`
	RejectOutOfRange   bool            `yaml:"reject_out_of_range"`
	RankConcurrency    int             `yaml:"rank_concurrency"`
	SoulmateTopPercent float64         `yaml:"soulmate_top_percent"`
	Resonance          ResonanceConfig `yaml:"resonance"`
}

// #endregion types

// #region defaults
// Default returns the built-in configuration.
func Default() *Config {
	w := resonance.DefaultWeights()
	e := engine.DefaultConfig()
	return &Config{
		DBPath:             "soulmates.db",
		GRPCAddr:           "localhost:50061",
		LogLevel:           "info",
		ModelVersion:       e.ModelVersion,
		DefaultStrategy:    string(e.DefaultStrategy),
		RejectOutOfRange:   e.RejectOutOfRange,
		RankConcurrency:    e.RankConcurrency,
		SoulmateTopPercent: e.SoulmateTopPercent,
		Resonance: ResonanceConfig{
			BetaMean:       w.BetaMean,
			BetaStability:  w.BetaStability,
			GammaTraits:    w.GammaTraits,
			GammaResonance: w.GammaResonance,
			Outcome: OutcomeConfig{
				Longevity:           w.Outcome.Longevity,
				Satisfaction:        w.Outcome.Satisfaction,
				Growth:              w.Outcome.Growth,
				ConflictToxicity:    w.Outcome.ConflictToxicity,
				RepairEfficiency:    w.Outcome.RepairEfficiency,
				TrajectoryAlignment: w.Outcome.TrajectoryAlignment,
			},
		},
	}
}

// Path returns the config file location: $SCORER_CONFIG or scorer.yaml.
func Path() string {
	return envOr("SCORER_CONFIG", "scorer.yaml")
}

// #endregion defaults

// #region load
// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DBPath = envOr("SCORER_DB", c.DBPath)
	c.GRPCAddr = envOr("SCORER_GRPC_ADDR", c.GRPCAddr)
	c.LogLevel = envOr("SCORER_LOG_LEVEL", c.LogLevel)
	c.ModelVersion = envOr("SCORER_MODEL_VERSION", c.ModelVersion)
	if v := os.Getenv("SCORER_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: SCORER_LOG_PRETTY=%q", ErrInvalid, v)
		}
		c.LogPretty = b
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion load

// #region validate
// Validate checks every field that has a constrained domain.
func (c *Config) Validate() error {
	if _, err := engine.ParseStrategy(c.DefaultStrategy); err != nil {
		return fmt.Errorf("%w: default_strategy: %w", ErrInvalid, err)
	}
	if c.RankConcurrency <= 0 {
		return fmt.Errorf("%w: rank_concurrency must be positive, got %d", ErrInvalid, c.RankConcurrency)
	}
	if math.IsNaN(c.SoulmateTopPercent) || c.SoulmateTopPercent <= 0 || c.SoulmateTopPercent > 1 {
		return fmt.Errorf("%w: soulmate_top_percent must be in (0, 1], got %v", ErrInvalid, c.SoulmateTopPercent)
	}
	if c.ModelVersion == "" {
		return fmt.Errorf("%w: model_version is empty", ErrInvalid)
	}
	if _, err := c.ResonanceWeights(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// #endregion validate

// #region conversions
// ResonanceWeights converts the resonance section into validated model weights.
func (c *Config) ResonanceWeights() (resonance.Weights, error) {
	r := c.Resonance
	w := resonance.DefaultWeights()
	if len(r.Alphas) > 0 {
		if len(r.Alphas) != profile.TraitDims {
			return resonance.Weights{}, fmt.Errorf("%w: %d alphas, want %d", resonance.ErrInvalidWeights, len(r.Alphas), profile.TraitDims)
		}
		copy(w.Alphas[:], r.Alphas)
	}
	w.BetaMean = r.BetaMean
	w.BetaStability = r.BetaStability
	w.GammaTraits = r.GammaTraits
	w.GammaResonance = r.GammaResonance
	w.Outcome = resonance.OutcomeWeights{
		Longevity:           r.Outcome.Longevity,
		Satisfaction:        r.Outcome.Satisfaction,
		Growth:              r.Outcome.Growth,
		ConflictToxicity:    r.Outcome.ConflictToxicity,
		RepairEfficiency:    r.Outcome.RepairEfficiency,
		TrajectoryAlignment: r.Outcome.TrajectoryAlignment,
	}
	if err := w.Validate(); err != nil {
		return resonance.Weights{}, err
	}
	return w, nil
}

// Model builds a resonance model from the config.
func (c *Config) Model() (*resonance.Model, error) {
	w, err := c.ResonanceWeights()
	if err != nil {
		return nil, err
	}
	return resonance.NewModel(w)
}

// EngineConfig converts the engine-level settings.
func (c *Config) EngineConfig() (engine.Config, error) {
	id, err := engine.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		ModelVersion:       c.ModelVersion,
		DefaultStrategy:    id,
		RejectOutOfRange:   c.RejectOutOfRange,
		RankConcurrency:    c.RankConcurrency,
		SoulmateTopPercent: c.SoulmateTopPercent,
	}, nil
}

// #endregion conversions
