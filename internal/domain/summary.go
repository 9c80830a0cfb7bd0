package domain

import "github.com/golang/geo/s2"

// earthRadiusKm is the mean Earth radius used for the extent estimate.
const earthRadiusKm = 6371.0088

// FieldStats summarizes the coercion outcome of one numeric field.
type FieldStats struct {
	Field   string
	Valid   int
	Missing int
	Min     float64
	Max     float64
}

func (s *FieldStats) observe(v Value) {
	if !v.Valid {
		s.Missing++
		return
	}
	if s.Valid == 0 || v.Num < s.Min {
		s.Min = v.Num
	}
	if s.Valid == 0 || v.Num > s.Max {
		s.Max = v.Num
	}
	s.Valid++
}

// Summary is the diagnostic report produced by Build. It never influences
// generation.
type Summary struct {
	Rows     int
	Located  int
	Lat      FieldStats
	Long     FieldStats
	Measures []FieldStats
	Bounds   s2.Rect
	Warnings []string
}

// Measure returns the stats recorded for a measure column.
func (s Summary) Measure(column string) (FieldStats, bool) {
	for _, m := range s.Measures {
		if m.Field == column {
			return m, true
		}
	}
	return FieldStats{}, false
}

// Unlocated is the number of rows without a usable coordinate pair.
func (s Summary) Unlocated() int { return s.Rows - s.Located }

// ExtentKm is the great-circle diagonal of the bounding rectangle of all
// located rows.
func (s Summary) ExtentKm() float64 {
	if s.Bounds.IsEmpty() {
		return 0
	}
	return s.Bounds.Lo().Distance(s.Bounds.Hi()).Radians() * earthRadiusKm
}

func newSummary(latField, longField string, measureCols []string) Summary {
	s := Summary{
		Lat:    FieldStats{Field: latField},
		Long:   FieldStats{Field: longField},
		Bounds: s2.EmptyRect(),
	}
	s.Measures = make([]FieldStats, len(measureCols))
	for i, c := range measureCols {
		s.Measures[i] = FieldStats{Field: c}
	}
	return s
}

func (s *Summary) observeRow(r Row) {
	s.Rows++
	s.Lat.observe(r.lat)
	s.Long.observe(r.long)
	for i := range s.Measures {
		v, ok := r.fields[s.Measures[i].Field]
		if !ok {
			s.Measures[i].Missing++
			continue
		}
		s.Measures[i].observe(v)
	}

	lat, long, ok := r.Coordinates()
	if !ok {
		return
	}
	s.Located++
	ll := s2.LatLngFromDegrees(lat, long)
	if ll.IsValid() {
		s.Bounds = s.Bounds.AddPoint(ll)
	}
}
