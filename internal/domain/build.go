package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
)

// Build normalizes a raw dataset and merges ov onto the default schema.
// The input dataset is copied and never mutated. Build fails only when no
// row has a usable coordinate pair.
func Build(ds Dataset, ov *Overrides) (*Configuration, error) {
	if ov == nil {
		ov = &Overrides{}
	}

	layer := DefaultSettings().layer()
	if err := mergo.Merge(&layer, ov.SettingsOverride, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return nil, fmt.Errorf("merge overrides: %w", err)
	}
	settings := layer.resolve()

	measureCols := DefaultMeasureCols().Merge(ov.MeasureCols)
	tooltipCols := DefaultTooltipCols().Merge(ov.TooltipCols)
	bold := DefaultBoldLabels()
	if ov.BoldLabels != nil {
		bold = slices.Clone(ov.BoldLabels)
	}

	cfg := &Configuration{
		settings:   settings,
		measures:   measureGroups(measureCols),
		tooltips:   tooltipFields(tooltipCols, bold),
		extensions: cloneExtensions(ov.Extensions),
	}

	numeric := make(map[string]struct{}, len(measureCols))
	for _, c := range measureCols.Columns() {
		numeric[c] = struct{}{}
	}

	summary := newSummary(settings.LatField, settings.LongField, measureCols.Columns())
	if settings.RadiusMultiplier < 0 {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("radius multiplier %g is negative, using 0", settings.RadiusMultiplier))
		cfg.settings.RadiusMultiplier = 0
	}
	cfg.defaultMeasure = settings.DefaultMeasure
	if _, ok := measureCols.Lookup(settings.DefaultMeasure); !ok && len(measureCols) > 0 {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("default measure %q not configured, using %q", settings.DefaultMeasure, measureCols[0].Label))
		cfg.defaultMeasure = measureCols[0].Label
	}

	cfg.rows = make([]Row, 0, len(ds.Rows))
	var sumLat, sumLong float64
	for _, raw := range ds.Rows {
		row := normalizeRow(raw, settings, numeric)
		summary.observeRow(row)
		if lat, long, ok := row.Coordinates(); ok {
			sumLat += lat
			sumLong += long
		}
		cfg.rows = append(cfg.rows, row)
	}

	if summary.Located == 0 {
		return nil, &DataError{
			Rows:      len(ds.Rows),
			LatField:  settings.LatField,
			LongField: settings.LongField,
			Err:       ErrNoCoordinates,
		}
	}

	cfg.centerLat = sumLat / float64(summary.Located)
	cfg.centerLong = sumLong / float64(summary.Located)
	cfg.summary = summary
	return cfg, nil
}

// normalizeRow copies a raw row, coercing coordinates and measure columns.
func normalizeRow(raw RawRow, s Settings, numeric map[string]struct{}) Row {
	row := Row{
		key:    raw.Key,
		fields: make(map[string]Value, len(raw.Fields)),
	}
	for name, v := range raw.Fields {
		_, isMeasure := numeric[name]
		if isMeasure || name == s.LatField || name == s.LongField {
			row.fields[name] = numericValue(v)
			continue
		}
		row.fields[name] = textValue(v)
	}
	row.lat = numericValue(raw.Fields[s.LatField])
	row.long = numericValue(raw.Fields[s.LongField])
	return row
}

func measureGroups(cols FieldList) []MeasureGroup {
	out := make([]MeasureGroup, len(cols))
	for i, f := range cols {
		out[i] = MeasureGroup{Name: f.Label, Column: f.Column}
	}
	return out
}

func tooltipFields(cols FieldList, bold []string) []TooltipField {
	out := make([]TooltipField, len(cols))
	for i, f := range cols {
		out[i] = TooltipField{
			Label:      f.Label,
			Column:     f.Column,
			Emphasized: slices.Contains(bold, f.Label),
		}
	}
	return out
}

func cloneExtensions(in map[string]json.RawMessage) map[string]json.RawMessage {
	if len(in) == 0 {
		return nil
	}
	out := maps.Clone(in)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out
}
