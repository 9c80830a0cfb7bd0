// Package leaflet renders heat maps as standalone Leaflet HTML documents.
package leaflet

import (
	"fmt"
	"html/template"
	"os"

	"github.com/couchcryptid/site-heatmap/internal/heatmap"
)

// Leaflet release referenced when no local assets are configured.
const (
	CDNScript     = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	CDNStylesheet = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
)

// Base map defaults.
const (
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "&copy; OpenStreetMap contributors"
)

// Options configures the base map and where the Leaflet library comes from.
// When LeafletJSPath and LeafletCSSPath are set their contents are inlined
// into every document.
type Options struct {
	TileURL        string
	Attribution    string
	LeafletJSPath  string
	LeafletCSSPath string
}

// assets holds the library references embedded in each page.
type assets struct {
	scriptSrc  string
	styleHref  string
	inlineJS   template.JS
	inlineCSS  template.CSS
	tileURL    string
	tileAttrib string
}

// Renderer implements heatmap.Renderer.
type Renderer struct {
	assets assets
}

// NewRenderer reads any local Leaflet assets once so that every document it
// creates is self-contained.
func NewRenderer(opts Options) (*Renderer, error) {
	a := assets{
		scriptSrc:  CDNScript,
		styleHref:  CDNStylesheet,
		tileURL:    opts.TileURL,
		tileAttrib: opts.Attribution,
	}
	if a.tileURL == "" {
		a.tileURL = DefaultTileURL
	}
	if a.tileAttrib == "" {
		a.tileAttrib = DefaultAttribution
	}

	if opts.LeafletJSPath != "" {
		b, err := os.ReadFile(opts.LeafletJSPath)
		if err != nil {
			return nil, fmt.Errorf("read leaflet script: %w", err)
		}
		a.inlineJS = template.JS(b) //nolint:gosec // operator-supplied library file
	}
	if opts.LeafletCSSPath != "" {
		b, err := os.ReadFile(opts.LeafletCSSPath)
		if err != nil {
			return nil, fmt.Errorf("read leaflet stylesheet: %w", err)
		}
		a.inlineCSS = template.CSS(b) //nolint:gosec // operator-supplied library file
	}

	return &Renderer{assets: a}, nil
}

// NewMap starts an empty document centered on center.
func (r *Renderer) NewMap(center heatmap.LatLng, zoom int) heatmap.Canvas {
	return &Document{
		assets: r.assets,
		center: center,
		zoom:   zoom,
	}
}
