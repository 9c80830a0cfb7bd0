package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Settings holds the resolved scalar configuration keys.
type Settings struct {
	LatField         string
	LongField        string
	DefaultMeasure   string
	ColorField       string
	ZoomStart        int
	RadiusMultiplier float64
}

// SettingsOverride is the override layer of Settings. A nil field is unset;
// a present field replaces the default even when it holds the zero value,
// so {"zoom_start": 0} zooms out to the whole world.
type SettingsOverride struct {
	LatField         *string  `json:"lat_col,omitempty"`
	LongField        *string  `json:"long_col,omitempty"`
	DefaultMeasure   *string  `json:"default_measure,omitempty"`
	ColorField       *string  `json:"marker_color_col,omitempty"`
	ZoomStart        *int     `json:"zoom_start,omitempty"`
	RadiusMultiplier *float64 `json:"radius_multiplier,omitempty"`
}

// layer lifts s into an override layer with every key present.
func (s Settings) layer() SettingsOverride {
	return SettingsOverride{
		LatField:         &s.LatField,
		LongField:        &s.LongField,
		DefaultMeasure:   &s.DefaultMeasure,
		ColorField:       &s.ColorField,
		ZoomStart:        &s.ZoomStart,
		RadiusMultiplier: &s.RadiusMultiplier,
	}
}

// resolve reads a fully populated layer back into Settings.
func (o SettingsOverride) resolve() Settings {
	return Settings{
		LatField:         *o.LatField,
		LongField:        *o.LongField,
		DefaultMeasure:   *o.DefaultMeasure,
		ColorField:       *o.ColorField,
		ZoomStart:        *o.ZoomStart,
		RadiusMultiplier: *o.RadiusMultiplier,
	}
}

// DefaultSettings returns the scalar defaults of the building dataset schema.
func DefaultSettings() Settings {
	return Settings{
		LatField:         "Lat",
		LongField:        "Long",
		DefaultMeasure:   "Staff Count",
		ColorField:       "Internal_Staff",
		ZoomStart:        5,
		RadiusMultiplier: 1.0,
	}
}

// DefaultMeasureCols returns the default heat layers in display order.
func DefaultMeasureCols() FieldList {
	return FieldList{
		{Label: "Staff Count", Column: "Staff_Count"},
		{Label: "Ticket Volume", Column: "Ticket_Volume"},
		{Label: "Call Volume", Column: "Call_Volume"},
	}
}

// DefaultTooltipCols returns the default tooltip lines in display order.
func DefaultTooltipCols() FieldList {
	return FieldList{
		{Label: "Building Name", Column: "Bldg_Name"},
		{Label: "Address", Column: "Address"},
		{Label: "Region", Column: "Region"},
		{Label: "Building Staffing", Column: "Staff_Count"},
		{Label: "Internal Staff", Column: "Internal_Staff"},
		{Label: "Group1 Staff", Column: "Group1_Staff"},
		{Label: "Group2 Staff", Column: "Group2_Staff"},
	}
}

// DefaultBoldLabels returns the tooltip labels rendered in bold.
func DefaultBoldLabels() []string {
	return []string{"Building Name", "Building Staffing"}
}

// Overrides is a partial configuration supplied by the caller. Unrecognized
// top-level keys are kept verbatim in Extensions.
type Overrides struct {
	SettingsOverride
	MeasureCols FieldList `json:"measure_cols,omitempty"`
	TooltipCols FieldList `json:"tooltip_cols,omitempty"`
	BoldLabels  []string  `json:"bold_labels,omitempty"`

	Extensions map[string]json.RawMessage `json:"-"`
}

var recognizedKeys = map[string]struct{}{
	"lat_col":           {},
	"long_col":          {},
	"measure_cols":      {},
	"default_measure":   {},
	"marker_color_col":  {},
	"tooltip_cols":      {},
	"zoom_start":        {},
	"radius_multiplier": {},
	"bold_labels":       {},
}

// UnmarshalJSON decodes the recognized keys and stores the rest in
// Extensions.
func (o *Overrides) UnmarshalJSON(data []byte) error {
	type plain Overrides
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for k, v := range all {
		if _, ok := recognizedKeys[k]; ok {
			continue
		}
		if p.Extensions == nil {
			p.Extensions = make(map[string]json.RawMessage)
		}
		p.Extensions[k] = append(json.RawMessage(nil), v...)
	}

	*o = Overrides(p)
	return nil
}

// ParseOverrides decodes an override document.
func ParseOverrides(r io.Reader) (*Overrides, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &Overrides{}, nil
	}
	var ov Overrides
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	return &ov, nil
}

// UnmarshalJSON decodes a JSON object into a FieldList, keeping the key
// order of the document.
func (l *FieldList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("field list: expected object, got %v", tok)
	}

	var out FieldList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("field list: unexpected key %v", keyTok)
		}
		var column string
		if err := dec.Decode(&column); err != nil {
			return fmt.Errorf("field list %q: %w", label, err)
		}
		out = out.Set(label, column)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// MarshalJSON encodes the list as a JSON object in list order.
func (l FieldList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Column)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
