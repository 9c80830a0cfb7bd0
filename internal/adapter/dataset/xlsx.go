package dataset

import (
	"context"
	"fmt"
	"slices"

	"github.com/couchcryptid/site-heatmap/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name WriteXLSX uses when none is given.
const DefaultSheet = "Sheet1"

// XLSXSource reads one worksheet of a workbook; the first sheet when no
// name is set.
type XLSXSource struct {
	path  string
	sheet string
}

// Extract reads the selected worksheet. Cells are read as their stored
// values, so a number format on a coordinate column does not round it.
func (s *XLSXSource) Extract(ctx context.Context) (domain.Dataset, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sheet := s.sheet
	switch {
	case len(sheets) == 0:
		return domain.Dataset{}, fmt.Errorf("open xlsx: workbook %s has no sheets", s.path)
	case sheet == "":
		sheet = sheets[0]
	case !slices.Contains(sheets, sheet):
		return domain.Dataset{}, fmt.Errorf("sheet %q not found, have %v", sheet, sheets)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.Dataset{}, nil
	}
	return tabulate(ctx, rows[0], rows[1:])
}

// WriteXLSX writes ds as a single-sheet workbook. Numeric values are stored
// as numbers.
func WriteXLSX(path, sheet string, ds domain.Dataset) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream sheet: %w", err)
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, r := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := sw.SetRow(cell, rowValues(ds.Columns, r)); err != nil {
			return fmt.Errorf("write xlsx row %s: %w", r.Key, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}

	f.SetActiveSheet(index)
	if sheet != DefaultSheet {
		if err := f.DeleteSheet(DefaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
