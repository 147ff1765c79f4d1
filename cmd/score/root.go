package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/config"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "score",
		Short:         "Compatibility scoring for trait profiles",
		Long:          `Score pairs of 32-dimensional trait vectors, manage versioned profiles and inspect stored snapshots.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default $SCORER_CONFIG or scorer.yaml)")
	cmd.PersistentFlags().String("db", "", "SQLite database path (overrides config)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewCalcCmd(a),
		NewTotalCmd(a),
		NewAlignCmd(),
		NewTierCmd(a),
		NewNumerologyCmd(),
		NewAstrologyCmd(),
		NewOutcomeCmd(a),
		NewProfileCmd(a),
		NewScoreCmd(a),
		NewSnapshotsCmd(a),
		NewReplayCmd(a),
		NewFixtureCmd(a),
	)
}

// #region app
// app opens the config and stores lazily so pure commands never touch disk.
type app struct {
	cfg       *config.Config
	profiles  *profile.Store
	snapshots *snapshot.Store
}

func (a *app) config(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) stores(cmd *cobra.Command) (*profile.Store, *snapshot.Store, error) {
	if a.profiles != nil {
		return a.profiles, a.snapshots, nil
	}
	cfg, err := a.config(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := profile.NewStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open profiles: %w", err)
	}
	s, err := snapshot.NewStore(p.DB())
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("open snapshots: %w", err)
	}
	a.profiles, a.snapshots = p, s
	return p, s, nil
}

// engine builds a scoring engine from the config. A nil saver keeps results
// out of the database.
func (a *app) engine(cmd *cobra.Command, saver engine.Saver) (*engine.Engine, error) {
	cfg, err := a.config(cmd)
	if err != nil {
		return nil, err
	}
	model, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(engCfg, model, saver), nil
}

// Close releases the database if one was opened.
func (a *app) Close() error {
	if a.profiles == nil {
		return nil
	}
	err := a.profiles.Close()
	a.profiles, a.snapshots = nil, nil
	return err
}

// #endregion app
