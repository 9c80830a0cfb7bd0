package heatmap

// LatLng is a WGS-84 coordinate pair in decimal degrees.
type LatLng struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"lng"`
}

// HeatPoint is one weighted point of a heat layer. Radius and Color both
// derive from Weight.
type HeatPoint struct {
	LatLng
	Weight    float64 `json:"weight"`
	Intensity float64 `json:"intensity"`
	Radius    float64 `json:"radius"`
	Color     string  `json:"color"`
}

// HeatLayer is a named, independently toggleable group of heat points.
type HeatLayer struct {
	Name    string
	Visible bool
	Points  []HeatPoint
}

// MarkerColor is the pin color of a location marker.
type MarkerColor string

// Marker colors keyed off the color discriminator.
const (
	MarkerRed  MarkerColor = "red"
	MarkerBlue MarkerColor = "blue"
	MarkerGray MarkerColor = "gray"
)

// Marker is a pin with an HTML tooltip body.
type Marker struct {
	LatLng
	Color   MarkerColor
	Tooltip string
}

// Renderer creates base maps. It is the entry point of the map-rendering
// collaborator.
type Renderer interface {
	NewMap(center LatLng, zoom int) Canvas
}

// Canvas is a base map under construction.
type Canvas interface {
	// AddHeatLayer attaches a weighted point layer as a named overlay.
	AddHeatLayer(layer HeatLayer)
	// AddMarker attaches a pin to the map.
	AddMarker(m Marker)
	// AddLayerControl adds the overlay visibility widget.
	AddLayerControl()
	// Save serializes the map to a standalone document at path.
	Save(path string) error
}
