package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/site-heatmap/internal/domain"
)

const utf8BOM = "\ufeff"

// CSVSource reads a comma-separated file whose first record is the header.
type CSVSource struct {
	path string
}

// Extract reads the whole file.
func (s *CSVSource) Extract(ctx context.Context) (domain.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses CSV records from r. An empty input yields an empty dataset.
func ReadCSV(ctx context.Context, r io.Reader) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.Dataset{}, nil
	}
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	return tabulate(ctx, header, records)
}

// WriteCSV writes ds to path with ds.Columns as the header.
func WriteCSV(path string, ds domain.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range ds.Rows {
		vals := rowValues(ds.Columns, r)
		rec := make([]string, len(vals))
		for i, v := range vals {
			if v != nil {
				rec[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Key, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
