// Package main is the entry point for mazegen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/samdwyer/mazegen/internal/config"
	"github.com/samdwyer/mazegen/internal/logging"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/theme"
	"github.com/samdwyer/mazegen/internal/ui"
	"github.com/samdwyer/mazegen/internal/viewer"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "mazegen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Not fatal: variables may be set directly.
	dotEnvErr := config.LoadDotEnv()

	cfg, err := config.Load(config.PathFromArgs(args))
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New("mazegen", cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	if dotEnvErr != nil {
		logger.Debug().Err(dotEnvErr).Msg(".env file not loaded")
	}

	runID := uuid.NewString()
	logger = logger.With().Str("run_id", runID).Logger()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, runID)
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry setup failed, continuing without traces")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("telemetry shutdown failed")
				}
			}()
		}
	}

	registry, err := theme.LoadRegistry()
	if err != nil {
		return err
	}
	th, err := registry.Lookup(cfg.Theme)
	if err != nil {
		return err
	}

	grid, err := generate(ctx, logger, cfg)
	if err != nil {
		return err
	}

	if cfg.View {
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		status := fmt.Sprintf("%dx%d seed=%q  q: quit", cfg.Rows, cfg.Cols, cfg.Seed)
		return viewer.New(screen, grid, th, status).Run(ctx)
	}

	return writeGrid(stdout, grid, cfg.Format, th)
}

func generate(ctx context.Context, logger zerolog.Logger, cfg config.Config) (*maze.Grid, error) {
	seed := maze.ParseSeed(cfg.Seed)
	logger.Debug().
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Str("seed", cfg.Seed).
		Int64("seed_value", int64(seed)).
		Msg("generating maze")

	grid, err := maze.Generate(ctx, cfg.Rows, cfg.Cols, seed)
	if err != nil {
		return nil, err
	}

	stats := grid.Stats()
	event := logger.Info().
		Int("rows", grid.Rows()).
		Int("cols", grid.Cols()).
		Int("passages", grid.PassageCount()).
		Int("iterations", stats.Iterations).
		Int("peak_frontier", stats.PeakFrontier)
	if _, ok := grid.Entrance(); !ok {
		event = event.Bool("no_entrance", true)
	}
	if _, ok := grid.Exit(); !ok {
		event = event.Bool("no_exit", true)
	}
	event.Msg("maze generated")

	return grid, nil
}

// setupOTelEnv maps mazegen's exporter settings onto the standard OTEL variables
// unless those are already set.
func setupOTelEnv() {
	if endpoint := os.Getenv("MAZEGEN_OTLP_ENDPOINT"); endpoint != "" && os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", endpoint)
	}
	if headers := os.Getenv("MAZEGEN_OTLP_HEADERS"); headers != "" && os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", headers)
	}
}
