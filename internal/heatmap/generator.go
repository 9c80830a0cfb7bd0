package heatmap

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/couchcryptid/site-heatmap/internal/observability"
	"github.com/rs/zerolog"
)

// DefaultOutputPath is used when Generate is called with an empty path.
const DefaultOutputPath = "heatmap.html"

// ErrConfigurationMissing is returned when Generate receives no configuration
// or one without rows. Generation never falls back to defaults.
var ErrConfigurationMissing = errors.New("heatmap: configuration missing, build one before generating")

// Artifact identifies a written map document.
type Artifact struct {
	Path       string
	Layers     int
	Markers    int
	HeatPoints int
	Bytes      int64
	SHA256     string
}

// Generator turns a Configuration into a map document through a Renderer.
type Generator struct {
	renderer Renderer
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// NewGenerator creates a Generator drawing through r.
func NewGenerator(r Renderer, logger zerolog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		renderer: r,
		logger:   logger,
		metrics:  metrics,
	}
}

// Generate renders one heat layer per measure group, one marker per located
// row and the layer control, then saves the document to outputPath. The
// output depends only on cfg, so repeated calls produce identical files.
func (g *Generator) Generate(cfg *domain.Configuration, outputPath string) (Artifact, error) {
	if cfg.Len() == 0 {
		return Artifact{}, ErrConfigurationMissing
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	lat, long := cfg.Center()
	canvas := g.renderer.NewMap(LatLng{Lat: lat, Long: long}, cfg.ZoomStart())
	rows := cfg.Rows()

	located := cfg.Summary().Located

	art := Artifact{}
	for _, layer := range BuildLayers(cfg, rows) {
		canvas.AddHeatLayer(layer)
		art.Layers++
		art.HeatPoints += len(layer.Points)
		g.metrics.HeatPoints.WithLabelValues(layer.Name).Set(float64(len(layer.Points)))
		g.metrics.LayerExclusions.WithLabelValues(layer.Name).Add(float64(located - len(layer.Points)))
		g.logger.Debug().
			Str("layer", layer.Name).
			Int("points", len(layer.Points)).
			Bool("visible", layer.Visible).
			Msg("heat layer built")
	}

	for _, m := range BuildMarkers(cfg, rows) {
		canvas.AddMarker(m)
		art.Markers++
		g.metrics.Markers.WithLabelValues(string(m.Color)).Inc()
	}

	canvas.AddLayerControl()

	if err := canvas.Save(outputPath); err != nil {
		return Artifact{}, fmt.Errorf("save map: %w", err)
	}

	if err := describeFile(&art, outputPath); err != nil {
		return Artifact{}, err
	}
	g.metrics.ArtifactBytes.Set(float64(art.Bytes))
	g.metrics.ArtifactsWritten.Inc()

	g.logger.Info().
		Str("path", art.Path).
		Int("layers", art.Layers).
		Int("markers", art.Markers).
		Int("heat_points", art.HeatPoints).
		Int64("bytes", art.Bytes).
		Msg("map written")
	return art, nil
}

// BuildLayers collects the heat layers of cfg in measure group order. A row
// joins a layer only when its coordinates and that layer's weight are valid.
func BuildLayers(cfg *domain.Configuration, rows []domain.Row) []HeatLayer {
	groups := cfg.MeasureGroups()
	layers := make([]HeatLayer, 0, len(groups))
	for _, mg := range groups {
		layer := HeatLayer{
			Name:    mg.Name,
			Visible: mg.Name == cfg.DefaultMeasure(),
		}

		var lo, hi float64
		for _, r := range rows {
			lat, long, ok := r.Coordinates()
			if !ok {
				continue
			}
			w, ok := r.Number(mg.Column)
			if !ok {
				continue
			}
			if len(layer.Points) == 0 || w < lo {
				lo = w
			}
			if len(layer.Points) == 0 || w > hi {
				hi = w
			}
			layer.Points = append(layer.Points, HeatPoint{
				LatLng: LatLng{Lat: lat, Long: long},
				Weight: w,
				Radius: Radius(w, cfg.RadiusMultiplier()),
			})
		}

		for i := range layer.Points {
			p := &layer.Points[i]
			p.Intensity = Intensity(p.Weight, lo, hi)
			p.Color = HeatColor(p.Intensity)
		}
		layers = append(layers, layer)
	}
	return layers
}

// BuildMarkers returns one marker per located row, in row order.
func BuildMarkers(cfg *domain.Configuration, rows []domain.Row) []Marker {
	fields := cfg.TooltipFields()
	markers := make([]Marker, 0, len(rows))
	for _, r := range rows {
		lat, long, ok := r.Coordinates()
		if !ok {
			continue
		}
		markers = append(markers, Marker{
			LatLng:  LatLng{Lat: lat, Long: long},
			Color:   MarkerColorFor(r, cfg.ColorField()),
			Tooltip: domain.FormatTooltip(r, fields),
		})
	}
	return markers
}

func describeFile(art *Artifact, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("read back map: %w", err)
	}
	sum := sha256.Sum256(data)
	art.Path = abs
	art.Bytes = int64(len(data))
	art.SHA256 = hex.EncodeToString(sum[:])
	return nil
}
