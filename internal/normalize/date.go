// Package normalize converts raw spreadsheet cell values into canonical
// dates and amounts.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tally/internal/common"
)

// DatePolicy resolves the D/M/Y vs M/D/Y ambiguity for inputs where the
// day is 12 or less. The default is day-first, matching UK card exports;
// sources with US-style exports set MonthFirst on their schema.
type DatePolicy int

// Ambiguous slashed dates are interpreted per policy.
const (
	DayFirst DatePolicy = iota
	MonthFirst
)

// excelEpoch is the serial-date epoch, 1899-12-30: two days before
// 1900-01-01 to absorb Excel's phantom 1900-02-29.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Textual layouts tried in strict order. The slashed day-first and
// month-first blocks are swapped according to the active policy.
var (
	isoLayouts = []string{
		"2006-01-02",
	}
	dayFirstLayouts = []string{
		"02/01/2006",
		"2/1/2006",
		"02/01/06",
		"2/1/06",
		"02-01-2006",
		"02.01.2006",
		"2.1.2006",
	}
	monthFirstLayouts = []string{
		"01/02/2006",
		"1/2/2006",
		"01/02/06",
		"1/2/06",
		"01-02-2006",
		"01.02.2006",
		"1.2.2006",
	}
	trailingLayouts = []string{
		"2006/01/02",
		"2006/1/2",
		"2006.01.02",
		"2-Jan-2006",
		"2-Jan-06",
		"2 Jan 2006",
		"2 January 2006",
		"Jan 2, 2006",
		"January 2, 2006",
		time.RFC3339,
	}
)

// ParseDate converts a raw cell value into a calendar date in UTC.
// Numeric cells are treated as spreadsheet date serials; strings are tried
// against the layout list in order. Returns common.ErrDateParse when no
// representation matches.
func ParseDate(cell string, policy DatePolicy) (time.Time, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty cell", common.ErrDateParse)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial >= 300000 {
			return time.Time{}, fmt.Errorf("%w: serial %v out of range", common.ErrDateParse, serial)
		}
		return fromSerial(serial), nil
	}

	layouts := make([]string, 0, len(isoLayouts)+len(dayFirstLayouts)+len(monthFirstLayouts)+len(trailingLayouts))
	layouts = append(layouts, isoLayouts...)
	if policy == MonthFirst {
		layouts = append(layouts, monthFirstLayouts...)
		layouts = append(layouts, dayFirstLayouts...)
	} else {
		layouts = append(layouts, dayFirstLayouts...)
		layouts = append(layouts, monthFirstLayouts...)
	}
	layouts = append(layouts, trailingLayouts...)

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return truncateDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", common.ErrDateParse, cell)
}

// fromSerial converts an Excel serial day count to a UTC calendar date.
// Serial × 86,400,000ms offset from the 1899-12-30 epoch, truncated to day.
func fromSerial(serial float64) time.Time {
	ms := int64(math.Round(serial * 86400000))
	return truncateDay(excelEpoch.Add(time.Duration(ms) * time.Millisecond))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
