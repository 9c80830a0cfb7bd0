package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is one normalized cell. Text keeps the source rendering; numeric
// cells also carry Num and report whether coercion succeeded.
type Value struct {
	Text    string
	Num     float64
	Numeric bool
	Valid   bool
}

// textValue wraps a raw cell without coercing it.
func textValue(raw any) Value {
	return Value{Text: rawText(raw), Valid: raw != nil}
}

// numericValue coerces a raw cell to float64. Failure yields a Value with
// Valid=false instead of an error.
func numericValue(raw any) Value {
	n, ok := parseFloat(raw)
	return Value{Text: rawText(raw), Num: n, Numeric: true, Valid: ok}
}

// Display returns the tooltip rendering of the value: the source text as
// the dataset wrote it, so "1e3" stays "1e3" even though it weighs 1000.
func (v Value) Display() string {
	return v.Text
}

// parseFloat converts strings and Go numbers to a finite float64.
func parseFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt coerces a raw cell to an integer. Integer text parses directly;
// finite float text is truncated toward zero.
func ParseInt(raw any) (int64, bool) {
	if s, ok := raw.(string); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n, true
		}
	}
	f, ok := parseFloat(raw)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}

func rawText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
