package domain

// RawRow is one uniquely keyed input record. Field values are strings or Go
// numbers; anything else is treated as unparseable.
type RawRow struct {
	Key    string
	Fields map[string]any
}

// Dataset is the row-oriented input table handed to Build.
type Dataset struct {
	Columns []string
	Rows    []RawRow
}

// Row is a normalized record owned by a Configuration. It is never mutated
// after Build returns.
type Row struct {
	key    string
	lat    Value
	long   Value
	fields map[string]Value
}

// Key returns the source key of the row.
func (r Row) Key() string { return r.key }

// Coordinates returns the coerced coordinate pair. ok is false when either
// coordinate is missing.
func (r Row) Coordinates() (lat, long float64, ok bool) {
	if !r.lat.Valid || !r.long.Valid {
		return 0, 0, false
	}
	return r.lat.Num, r.long.Num, true
}

// Has reports whether the row carries the field at all.
func (r Row) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Value returns the normalized cell for field.
func (r Row) Value(field string) (Value, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Number returns a coerced numeric field. ok is false when the field is
// absent or failed coercion.
func (r Row) Number(field string) (float64, bool) {
	v, ok := r.fields[field]
	if !ok || !v.Valid {
		return 0, false
	}
	if v.Numeric {
		return v.Num, true
	}
	return parseFloat(v.Text)
}

// Display returns the tooltip text of a field.
func (r Row) Display(field string) (string, bool) {
	v, ok := r.fields[field]
	if !ok {
		return "", false
	}
	return v.Display(), true
}

// MeasureGroup is a named heat layer weighted by one numeric column.
type MeasureGroup struct {
	Name   string
	Column string
}

// TooltipField is one labeled line of marker hover text.
type TooltipField struct {
	Label      string
	Column     string
	Emphasized bool
}

// Field is one label to column pair of a FieldList.
type Field struct {
	Label  string
	Column string
}

// FieldList is an ordered label to column mapping.
type FieldList []Field

// Set replaces the column of an existing label in place or appends a new
// label at the end.
func (l FieldList) Set(label, column string) FieldList {
	for i := range l {
		if l[i].Label == label {
			l[i].Column = column
			return l
		}
	}
	return append(l, Field{Label: label, Column: column})
}

// Merge applies every entry of other on top of l, key by key.
func (l FieldList) Merge(other FieldList) FieldList {
	out := append(FieldList(nil), l...)
	for _, f := range other {
		out = out.Set(f.Label, f.Column)
	}
	return out
}

// Lookup returns the column mapped to label.
func (l FieldList) Lookup(label string) (string, bool) {
	for _, f := range l {
		if f.Label == label {
			return f.Column, true
		}
	}
	return "", false
}

// Columns returns the distinct columns referenced by the list, in order.
func (l FieldList) Columns() []string {
	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, f := range l {
		if _, ok := seen[f.Column]; ok {
			continue
		}
		seen[f.Column] = struct{}{}
		out = append(out, f.Column)
	}
	return out
}
