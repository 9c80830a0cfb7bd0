package heatmap

import (
	"math"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// Heat point radius bounds, in pixels, and the weight that maps to a radius
// of 1 at multiplier 1.
const (
	MinRadius      = 5.0
	MaxRadius      = 50.0
	ReferenceScale = 100.0
)

// Radius maps a weight to a point radius: weight / ReferenceScale * scale,
// clamped to [MinRadius, MaxRadius]. A negative scale counts as 0, which
// keeps the radius non-decreasing in weight.
func Radius(weight, scale float64) float64 {
	r := weight / ReferenceScale * math.Max(0, scale)
	if math.IsNaN(r) {
		return MinRadius
	}
	return math.Min(MaxRadius, math.Max(MinRadius, r))
}

// Intensity places weight within the observed [lo, hi] range of its layer.
// A degenerate range yields full intensity.
func Intensity(weight, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	return math.Min(1, math.Max(0, (weight-lo)/(hi-lo)))
}

// gradientStop is one color stop of the heat gradient.
type gradientStop struct {
	at    float64
	color colorful.Color
}

// heatGradient is the standard leaflet.heat gradient.
var heatGradient = []gradientStop{
	{at: 0.4, color: mustHex("#0000ff")},
	{at: 0.65, color: mustHex("#00ff00")},
	{at: 1.0, color: mustHex("#ff0000")},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HeatColor returns the gradient color of an intensity in [0, 1].
func HeatColor(intensity float64) string {
	first := heatGradient[0]
	if intensity <= first.at {
		return first.color.Hex()
	}
	for i := 1; i < len(heatGradient); i++ {
		lo, hi := heatGradient[i-1], heatGradient[i]
		if intensity <= hi.at {
			t := (intensity - lo.at) / (hi.at - lo.at)
			return lo.color.BlendRgb(hi.color, t).Clamped().Hex()
		}
	}
	return heatGradient[len(heatGradient)-1].color.Hex()
}

// MarkerColorFor selects the pin color from the color discriminator of a
// row: red for 0, blue for any other integer, gray when absent or
// unparseable.
func MarkerColorFor(r domain.Row, field string) MarkerColor {
	v, ok := r.Value(field)
	if !ok {
		return MarkerGray
	}
	n, ok := domain.ParseInt(v.Text)
	switch {
	case !ok:
		return MarkerGray
	case n == 0:
		return MarkerRed
	default:
		return MarkerBlue
	}
}
