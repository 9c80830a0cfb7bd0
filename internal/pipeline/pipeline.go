package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/couchcryptid/site-heatmap/internal/heatmap"
	"github.com/couchcryptid/site-heatmap/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Extractor reads the raw dataset from its source.
type Extractor interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// Generator renders a configuration into a map document.
type Generator interface {
	Generate(cfg *domain.Configuration, outputPath string) (heatmap.Artifact, error)
}

// Result is the outcome of one run.
type Result struct {
	Summary  domain.Summary
	Artifact heatmap.Artifact
}

// Pipeline orchestrates the extract-build-generate sequence.
type Pipeline struct {
	extractor Extractor
	generator Generator
	logger    zerolog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Pipeline with the given stages and observability. A nil
// clock uses the real clock.
func New(e Extractor, g Generator, logger zerolog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		extractor: e,
		generator: g,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// Run extracts the dataset, builds a configuration with ov applied and
// writes the map to outputPath. Nothing is written when extraction or
// building fails.
func (p *Pipeline) Run(ctx context.Context, ov *domain.Overrides, outputPath string) (Result, error) {
	cfg, err := p.Build(ctx, ov)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := p.clock.Now()
	art, err := p.generator.Generate(cfg, outputPath)
	if err != nil {
		return Result{}, fmt.Errorf("generate map: %w", err)
	}
	p.metrics.GenerateDuration.Observe(p.clock.Since(start).Seconds())

	return Result{Summary: cfg.Summary(), Artifact: art}, nil
}
