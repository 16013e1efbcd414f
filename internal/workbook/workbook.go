// Package workbook reads xlsx workbooks into raw grids and detects which
// sheets carry which data source by name.
package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"tally/internal/common"
	"tally/internal/sheet"
)

// TruthSheet is the hand-maintained ledger tab reconciled against.
const TruthSheet = "Detail"

// Workbook wraps one opened xlsx file. The file is read fully into memory
// and held for the duration of the run.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open loads a workbook from disk.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot open workbook %s", path), err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns all sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// HasSheet reports whether a sheet with the exact name exists.
func (w *Workbook) HasSheet(name string) bool {
	for _, n := range w.f.GetSheetList() {
		if n == name {
			return true
		}
	}
	return false
}

// Grid reads one sheet as raw cell values. Date cells come back as their
// underlying serial numbers, which the normalizer understands. Returns
// common.ErrMissingSheet when the sheet does not exist.
func (w *Workbook) Grid(name string) (sheet.Grid, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("%w: %q in %s", common.ErrMissingSheet, name, w.path)
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return sheet.Grid(rows), nil
}

// FindYearSheet returns the first sheet whose lowercase name contains the
// year and any of the hints. Used to locate card exports like "2024 amex".
func FindYearSheet(names []string, year int, hints ...string) (string, bool) {
	ys := fmt.Sprintf("%d", year)
	for _, name := range names {
		n := strings.ToLower(name)
		if !strings.Contains(n, ys) {
			continue
		}
		for _, h := range hints {
			if strings.Contains(n, h) {
				return name, true
			}
		}
	}
	return "", false
}

// FindHintSheets returns every sheet whose lowercase name contains any of
// the hints, in workbook order. Used for embedded bank statement tabs.
func FindHintSheets(names []string, hints []string) []string {
	var out []string
	for _, name := range names {
		n := strings.ToLower(name)
		for _, h := range hints {
			if strings.Contains(n, h) {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// FindAmazonSheets returns the Amazon order-detail sheets for one year.
func FindAmazonSheets(names []string, year int) []string {
	ys := fmt.Sprintf("%d", year)
	var out []string
	for _, name := range names {
		n := strings.ToLower(name)
		if !strings.Contains(n, "amazon") && !strings.Contains(n, "amzn") {
			continue
		}
		if !strings.Contains(n, ys) {
			continue
		}
		out = append(out, name)
	}
	return out
}
