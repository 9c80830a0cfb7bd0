// Command heatmap renders a building dataset as a standalone HTML heat map.
//
// Usage:
//
//	heatmap [-overrides overrides.json] [-output heatmap.html] sites.xlsx
//
// Every flag has an environment counterpart (HEATMAP_INPUT, HEATMAP_OUTPUT,
// ...) and a .env file in the working directory is loaded when present.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/site-heatmap/internal/adapter/dataset"
	"github.com/couchcryptid/site-heatmap/internal/adapter/leaflet"
	"github.com/couchcryptid/site-heatmap/internal/config"
	"github.com/couchcryptid/site-heatmap/internal/heatmap"
	"github.com/couchcryptid/site-heatmap/internal/observability"
	"github.com/couchcryptid/site-heatmap/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "heatmap: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env")
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	overrides, err := config.LoadOverrides(cfg.OverridesPath)
	if err != nil {
		return err
	}

	src, err := dataset.NewSource(cfg.InputPath, cfg.Sheet)
	if err != nil {
		return err
	}

	renderer, err := leaflet.NewRenderer(leaflet.Options{
		TileURL:        cfg.TileURL,
		Attribution:    cfg.TileAttribution,
		LeafletJSPath:  cfg.LeafletJSPath,
		LeafletCSSPath: cfg.LeafletCSSPath,
	})
	if err != nil {
		return err
	}

	gen := heatmap.NewGenerator(renderer, logger, metrics)
	p := pipeline.New(src, gen, logger, metrics, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("input", cfg.InputPath).
		Str("output", cfg.OutputPath).
		Bool("overrides", overrides != nil).
		Msg("generating heat map")

	res, runErr := p.Run(ctx, overrides, cfg.OutputPath)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error().Err(err).Str("path", cfg.MetricsFile).Msg("metrics export failed")
		}
	}
	if runErr != nil {
		return runErr
	}

	fmt.Println(res.Artifact.Path)
	return nil
}
