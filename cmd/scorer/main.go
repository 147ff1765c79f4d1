// Command scorer serves the compatibility scorer over gRPC.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/config"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/logging"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/transport"
)

// #region main
func main() {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot := logging.New("info", true, os.Stderr)
		boot.Fatal().Err(err).Str("path", cfgPath).Msg("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfgPath, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("scorer stopped")
	}
}

// run serves until ctx is canceled or the listener fails.
func run(ctx context.Context, cfgPath string, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Profiles and snapshots share one database file.
	profiles, err := profile.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer profiles.Close()

	snapshots, err := snapshot.NewStore(profiles.DB())
	if err != nil {
		return err
	}

	model, err := cfg.Model()
	if err != nil {
		return err
	}
	engCfg, err := cfg.EngineConfig()
	if err != nil {
		return err
	}
	eng := engine.New(engCfg, model, snapshots)

	metrics, err := transport.NewMetrics(otel.GetMeterProvider().Meter("soulmates/scorer"))
	if err != nil {
		return err
	}
	gs, hs := transport.NewGRPCServer(transport.NewServer(eng, log), log, metrics)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	watched := make(chan struct{})
	go func() {
		defer close(watched)
		watchConfig(ctx, cfgPath, eng, log)
	}()
	defer func() {
		cancel()
		<-watched
	}()

	serveErr := make(chan error, 1)
	go func() { serveErr <- gs.Serve(lis) }()

	log.Info().
		Str("addr", lis.Addr().String()).
		Str("db", cfg.DBPath).
		Str("model_version", engCfg.ModelVersion).
		Str("strategy", string(engCfg.DefaultStrategy)).
		Msg("scorer listening")

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	hs.Shutdown()
	gs.GracefulStop()
	if err := <-serveErr; err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// #endregion main

// #region reload
// watchConfig swaps the resonance model and model version when the config
// file changes. Other settings need a restart.
func watchConfig(ctx context.Context, path string, eng *engine.Engine, log zerolog.Logger) {
	err := config.Watch(ctx, path, config.DefaultDebounce,
		func(cfg *config.Config) { applyReload(eng, cfg, log) },
		func(err error) {
			log.Warn().Err(err).Str("path", path).Msg("config reload failed")
		},
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("config watch stopped")
	}
}

func applyReload(eng *engine.Engine, cfg *config.Config, log zerolog.Logger) {
	model, err := cfg.Model()
	if err != nil {
		log.Warn().Err(err).Msg("config reload rejected")
		return
	}
	previous := eng.ModelVersion()
	eng.Reload(model, cfg.ModelVersion)
	if cfg.ModelVersion == previous {
		log.Warn().Str("model_version", previous).Msg("resonance weights reloaded without a new model_version")
		return
	}
	log.Info().
		Str("from", previous).
		Str("model_version", eng.ModelVersion()).
		Msg("resonance weights reloaded")
}

// #endregion reload
