package domain

import (
	"html"
	"strings"
)

// Columns joined into the unlabeled trailer line of every tooltip.
const (
	TrailerLeft  = "Group1"
	TrailerRight = "Group2"
)

// FormatTooltip renders the hover text of a row: one "Label: value<br>" line
// per field present in the row, emphasized labels wrapped in <strong>, then
// the "Group1 | Group2" trailer without a line break when both are present.
// Values are the source text of each cell; numbers are not reformatted.
func FormatTooltip(r Row, fields []TooltipField) string {
	var b strings.Builder
	for _, f := range fields {
		val, ok := r.Display(f.Column)
		if !ok {
			continue
		}
		line := html.EscapeString(f.Label) + ": " + html.EscapeString(val)
		if f.Emphasized {
			b.WriteString("<strong>")
			b.WriteString(line)
			b.WriteString("</strong>")
		} else {
			b.WriteString(line)
		}
		b.WriteString("<br>")
	}

	left, okL := r.Display(TrailerLeft)
	right, okR := r.Display(TrailerRight)
	if okL && okR {
		b.WriteString(html.EscapeString(left))
		b.WriteString(" | ")
		b.WriteString(html.EscapeString(right))
	}
	return b.String()
}
