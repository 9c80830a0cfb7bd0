// Package dataset reads and writes building datasets as CSV or XLSX files.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couchcryptid/site-heatmap/internal/domain"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Source extracts a raw dataset.
type Source interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// NewSource picks a reader by file extension. sheet selects the worksheet of
// an XLSX workbook and is ignored for CSV.
func NewSource(path, sheet string) (Source, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return &CSVSource{path: path}, nil
	case ".xlsx":
		return &XLSXSource{path: path, sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// tabulate turns a header row and data rows into a Dataset. Empty header
// cells drop their column; empty data cells are left out of the row so
// they read as absent.
func tabulate(ctx context.Context, header []string, records [][]string) (domain.Dataset, error) {
	ds := domain.Dataset{Rows: make([]domain.RawRow, 0, len(records))}

	index := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		index[i] = h
		if h != "" {
			ds.Columns = append(ds.Columns, h)
		}
	}

	for n, rec := range records {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		fields := make(map[string]any, len(index))
		for i, cell := range rec {
			if i >= len(index) || index[i] == "" || strings.TrimSpace(cell) == "" {
				continue
			}
			fields[index[i]] = cell
		}
		ds.Rows = append(ds.Rows, domain.RawRow{Key: strconv.Itoa(n), Fields: fields})
	}
	return ds, nil
}

// rowValues lays a raw row out in column order.
func rowValues(columns []string, r domain.RawRow) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = r.Fields[c]
	}
	return out
}
