package sheet

import (
	"fmt"
	"strings"

	"tally/internal/common"
)

// MaxScanRows bounds how far down a sheet the locator will look for headers.
const MaxScanRows = 500

// minHeaderCells rejects title and spacer rows during the token scan.
const minHeaderCells = 3

// TokenGroup is one required keyword group; a candidate header row must
// contain at least one token from every group.
type TokenGroup struct {
	Name   string
	Tokens []string
}

// Strategy is a single named header-detection heuristic. Strategies return
// a definite hit or miss and are tried in order, so each one stays
// independently testable.
type Strategy struct {
	Name   string
	Locate func(g Grid) (int, bool)
}

// Location is the result of a successful header search.
type Location struct {
	Strategy string
	Fields   []string
	Row      int
}

// TokenScan matches the first row within maxRows that has at least
// minHeaderCells non-empty cells and one containment hit per token group.
// The scan is ordered, so ties are impossible.
func TokenScan(groups []TokenGroup, maxRows int) Strategy {
	if maxRows <= 0 || maxRows > MaxScanRows {
		maxRows = MaxScanRows
	}
	return Strategy{
		Name: "token-scan",
		Locate: func(g Grid) (int, bool) {
			limit := len(g)
			if limit > maxRows {
				limit = maxRows
			}
			for r := 0; r < limit; r++ {
				row := g[r]
				if nonEmptyCells(row) < minHeaderCells {
					continue
				}
				lowered := make([]string, len(row))
				for i, c := range row {
					lowered[i] = strings.ToLower(strings.TrimSpace(c))
				}
				if rowSatisfies(lowered, groups) {
					return r, true
				}
			}
			return 0, false
		},
	}
}

func rowSatisfies(lowered []string, groups []TokenGroup) bool {
	for _, grp := range groups {
		if !groupHit(lowered, grp.Tokens) {
			return false
		}
	}
	return true
}

func groupHit(lowered []string, tokens []string) bool {
	for _, tok := range tokens {
		for _, cell := range lowered {
			if cell != "" && strings.Contains(cell, tok) {
				return true
			}
		}
	}
	return false
}

// FirstNonBlank promotes the first row containing any data. This covers
// sheets whose nominal header row is entirely blank and the real headers
// sit in the first populated row.
func FirstNonBlank() Strategy {
	return Strategy{
		Name: "first-non-blank",
		Locate: func(g Grid) (int, bool) {
			for r := 0; r < len(g) && r < MaxScanRows; r++ {
				if nonEmptyCells(g[r]) > 0 {
					return r, true
				}
			}
			return 0, false
		},
	}
}

// FixedRow always succeeds with the given row. Used as the documented
// last-resort fallback (row 0) so a sheet is never dropped outright.
func FixedRow(row int) Strategy {
	return Strategy{
		Name: fmt.Sprintf("fixed-row-%d", row),
		Locate: func(g Grid) (int, bool) {
			if row >= len(g) {
				return 0, false
			}
			return row, true
		},
	}
}

// Locate runs the strategies in order and promotes the first hit's row to
// field names. Returns common.ErrHeaderNotFound when every strategy misses.
func Locate(g Grid, strategies ...Strategy) (Location, error) {
	if len(g) == 0 {
		return Location{}, common.ErrEmptySheet
	}
	for _, s := range strategies {
		if row, ok := s.Locate(g); ok {
			return Location{
				Row:      row,
				Strategy: s.Name,
				Fields:   PromoteHeader(g.Row(row), g.Width()),
			}, nil
		}
	}
	return Location{}, common.ErrHeaderNotFound
}

// PromoteHeader designates a raw row as the field-name row, synthesizing
// col_<index> placeholders for blank cells and padding to the grid width.
// Duplicate names are tolerated; lookups are positional where ambiguity
// is possible.
func PromoteHeader(row []string, width int) []string {
	if width < len(row) {
		width = len(row)
	}
	fields := make([]string, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(row) {
			name = strings.TrimSpace(row[i])
		}
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		fields[i] = name
	}
	return fields
}
