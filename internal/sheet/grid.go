// Package sheet locates and promotes header rows inside raw spreadsheet grids.
package sheet

import "strings"

// Grid is a rectangular-ish block of raw cell values as read from one
// sheet. Blank cells are empty strings. Immutable once read.
type Grid [][]string

// Cell returns the value at (row, col), or "" when out of bounds.
// Rows are commonly ragged on the right edge.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Row returns the raw row at index, or nil when out of bounds.
func (g Grid) Row(i int) []string {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

// Width returns the widest row in the grid.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

func nonEmptyCells(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
