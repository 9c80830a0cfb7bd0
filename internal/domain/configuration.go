package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Configuration is the immutable bundle produced by Build and consumed by
// map generation. Accessors return copies; the zero value holds no rows and
// is treated as missing by the generator.
type Configuration struct {
	rows           []Row
	settings       Settings
	measures       []MeasureGroup
	tooltips       []TooltipField
	centerLat      float64
	centerLong     float64
	summary        Summary
	extensions     map[string]json.RawMessage
	defaultMeasure string
}

// Len returns the number of normalized rows, located or not.
func (c *Configuration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rows)
}

// Rows returns the normalized rows in input order.
func (c *Configuration) Rows() []Row { return slices.Clone(c.rows) }

// LatField returns the latitude column name.
func (c *Configuration) LatField() string { return c.settings.LatField }

// LongField returns the longitude column name.
func (c *Configuration) LongField() string { return c.settings.LongField }

// ColorField returns the color discriminator column name.
func (c *Configuration) ColorField() string { return c.settings.ColorField }

// ZoomStart returns the initial map zoom.
func (c *Configuration) ZoomStart() int { return c.settings.ZoomStart }

// RadiusMultiplier returns the heat radius scale factor.
func (c *Configuration) RadiusMultiplier() float64 { return c.settings.RadiusMultiplier }

// MeasureGroups returns the heat layers in precedence order.
func (c *Configuration) MeasureGroups() []MeasureGroup { return slices.Clone(c.measures) }

// DefaultMeasure returns the name of the initially visible layer.
func (c *Configuration) DefaultMeasure() string { return c.defaultMeasure }

// TooltipFields returns the tooltip lines in display order.
func (c *Configuration) TooltipFields() []TooltipField { return slices.Clone(c.tooltips) }

// Center returns the mean coordinate of all located rows.
func (c *Configuration) Center() (lat, long float64) { return c.centerLat, c.centerLong }

// Summary returns the diagnostic summary computed during Build.
func (c *Configuration) Summary() Summary {
	s := c.summary
	s.Measures = slices.Clone(s.Measures)
	s.Warnings = slices.Clone(s.Warnings)
	return s
}

// Extensions returns the unrecognized override keys, verbatim.
func (c *Configuration) Extensions() map[string]json.RawMessage {
	return maps.Clone(c.extensions)
}
