package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/rs/zerolog"
)

// Build runs the extract and build stages and records the dataset summary.
func (p *Pipeline) Build(ctx context.Context, ov *domain.Overrides) (*domain.Configuration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := p.clock.Now()
	ds, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract dataset: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := domain.Build(ds, ov)
	if err != nil {
		p.logger.Error().Err(err).Int("rows", len(ds.Rows)).Msg("build failed")
		return nil, fmt.Errorf("build configuration: %w", err)
	}
	p.metrics.BuildDuration.Observe(p.clock.Since(start).Seconds())

	p.record(cfg.Summary())
	return cfg, nil
}

// record logs the summary and feeds the row metrics.
func (p *Pipeline) record(s domain.Summary) {
	p.metrics.RowsRead.Add(float64(s.Rows))
	p.metrics.RowsUnlocated.Add(float64(s.Unlocated()))

	stats := append([]domain.FieldStats{s.Lat, s.Long}, s.Measures...)
	for _, f := range stats {
		if f.Missing > 0 {
			p.metrics.CoercionFailures.WithLabelValues(f.Field).Add(float64(f.Missing))
		}
		p.logger.Debug().
			Str("field", f.Field).
			Int("valid", f.Valid).
			Int("missing", f.Missing).
			Float64("min", f.Min).
			Float64("max", f.Max).
			Msg("field coerced")
	}

	for _, w := range s.Warnings {
		p.logger.Warn().Msg(w)
	}

	var ev *zerolog.Event
	if s.Unlocated() > 0 {
		ev = p.logger.Warn()
	} else {
		ev = p.logger.Info()
	}
	ev.Int("rows", s.Rows).
		Int("located", s.Located).
		Int("unlocated", s.Unlocated()).
		Float64("extent_km", s.ExtentKm()).
		Msg("configuration built")
}
