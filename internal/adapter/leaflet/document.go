package leaflet

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/couchcryptid/site-heatmap/internal/heatmap"
	"github.com/lucasb-eyer/go-colorful"
)

//go:embed template.html
var pageSource string

var page = template.Must(template.New("heatmap").Parse(pageSource))

// Title is the document title of every generated map.
const Title = "Site Heatmap"

// pinFill maps marker colors to pin fills.
var pinFill = map[heatmap.MarkerColor]string{
	heatmap.MarkerRed:  "#d63e2a",
	heatmap.MarkerBlue: "#38aadd",
	heatmap.MarkerGray: "#a3a3a3",
}

// Payload is the JSON object the page script draws from.
type Payload struct {
	Center  heatmap.LatLng `json:"center"`
	Zoom    int            `json:"zoom"`
	Tiles   Tiles          `json:"tiles"`
	Layers  []Layer        `json:"layers"`
	Markers []Pin          `json:"markers"`
	Control bool           `json:"control"`
}

// Tiles describes the base tile layer.
type Tiles struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Layer is a toggleable group of heat circles.
type Layer struct {
	Name    string              `json:"name"`
	Visible bool                `json:"visible"`
	Points  []heatmap.HeatPoint `json:"points"`
}

// Pin is a location marker with its tooltip HTML.
type Pin struct {
	heatmap.LatLng
	Fill    string `json:"fill"`
	Stroke  string `json:"stroke"`
	Tooltip string `json:"tooltip"`
}

// Document implements heatmap.Canvas. It accumulates layers and markers in
// call order and renders them on Save.
type Document struct {
	assets  assets
	center  heatmap.LatLng
	zoom    int
	layers  []Layer
	markers []Pin
	control bool
}

// AddHeatLayer appends a heat layer. Only visible layers start on the map.
func (d *Document) AddHeatLayer(l heatmap.HeatLayer) {
	points := l.Points
	if points == nil {
		points = []heatmap.HeatPoint{}
	}
	d.layers = append(d.layers, Layer{Name: l.Name, Visible: l.Visible, Points: points})
}

// AddMarker appends a pin.
func (d *Document) AddMarker(m heatmap.Marker) {
	fill, ok := pinFill[m.Color]
	if !ok {
		fill = pinFill[heatmap.MarkerGray]
	}
	d.markers = append(d.markers, Pin{
		LatLng:  m.LatLng,
		Fill:    fill,
		Stroke:  darken(fill),
		Tooltip: m.Tooltip,
	})
}

// AddLayerControl enables the overlay toggle widget.
func (d *Document) AddLayerControl() {
	d.control = true
}

// Payload returns the data the page is rendered from.
func (d *Document) Payload() Payload {
	p := Payload{
		Center:  d.center,
		Zoom:    d.zoom,
		Tiles:   Tiles{URL: d.assets.tileURL, Attribution: d.assets.tileAttrib},
		Layers:  d.layers,
		Markers: d.markers,
		Control: d.control,
	}
	if p.Layers == nil {
		p.Layers = []Layer{}
	}
	if p.Markers == nil {
		p.Markers = []Pin{}
	}
	return p
}

// Render writes the HTML document to a buffer.
func (d *Document) Render() ([]byte, error) {
	payload, err := json.Marshal(d.Payload())
	if err != nil {
		return nil, fmt.Errorf("marshal map payload: %w", err)
	}

	data := struct {
		Title     string
		ScriptSrc string
		StyleHref string
		InlineJS  template.JS
		InlineCSS template.CSS
		Map       template.JS
	}{
		Title:     Title,
		ScriptSrc: d.assets.scriptSrc,
		StyleHref: d.assets.styleHref,
		InlineJS:  d.assets.inlineJS,
		InlineCSS: d.assets.inlineCSS,
		Map:       template.JS(payload), //nolint:gosec // json.Marshal escapes <, > and &
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute map template: %w", err)
	}
	return buf.Bytes(), nil
}

// Save renders the document and replaces path atomically.
func (d *Document) Save(path string) error {
	out, err := d.Render()
	if err != nil {
		return err
	}
	return writeAtomic(path, out)
}

// writeAtomic writes to a temp file next to path then renames it into place,
// so readers never observe a partial document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".heatmap-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil { //nolint:gosec // generated page is meant to be shared
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func darken(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendRgb(colorful.Color{}, 0.3).Clamped().Hex()
}
