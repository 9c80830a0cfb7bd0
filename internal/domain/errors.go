package domain

import (
	"errors"
	"fmt"
)

// ErrNoCoordinates is wrapped by DataError when no row has a usable
// coordinate pair.
var ErrNoCoordinates = errors.New("no rows with a valid coordinate pair")

// DataError reports a dataset that cannot produce a map.
type DataError struct {
	Rows      int
	LatField  string
	LongField string
	Err       error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("dataset of %d rows (lat=%q, long=%q): %v", e.Rows, e.LatField, e.LongField, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }
