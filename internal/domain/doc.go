// Package domain models building-location datasets and the immutable map
// configuration built from them.
//
// # Data Source
//
// Datasets are exported from the facilities inventory as CSV or XLSX sheets,
// one row per building. Every value arrives as text (CSV, XLSX) or as a Go
// number (in-process callers). Field names are matched exactly, including
// case and special characters, e.g. "SP&I".
//
// # Dataset Conventions
//
// Coordinates:
//
//	"Lat" and "Long" hold decimal degrees. Values that do not parse as a
//	finite float ("", "N/A", "NaN", "Inf") mark the coordinate as missing.
//	A row with either coordinate missing is dropped from the map center,
//	from every heat layer and from the markers, but its other fields still
//	count toward the diagnostic summary.
//
// Measures:
//
//	"Staff_Count", "Ticket_Volume" and "Call_Volume" are heat weights. Each
//	measure is coerced independently, so a row with a bad "Call_Volume"
//	still contributes to the staffing layer.
//
// Color discriminator:
//
//	"Internal_Staff" selects the pin color: 0 is red (no internal staff),
//	any other integer is blue, anything unparseable is gray. Float text is
//	truncated toward zero before the comparison.
//
// Tooltip trailer:
//
//	When a row carries both "Group1" and "Group2", the tooltip ends with an
//	unlabeled "Group1 | Group2" line.
//
// # Overrides
//
// The default schema is described by [DefaultSettings] and the default
// measure and tooltip lists. Callers adjust it with an [Overrides] document;
// scalar keys replace, "measure_cols" and "tooltip_cols" merge label by
// label. See [Build].
package domain
