// Package truth parses the hand-maintained ledger tab into per-month
// income/expense totals, the shape computed rollups reconcile against.
package truth

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/normalize"
	"tally/internal/sheet"
)

// Options configures the ledger sheet's conventions. The ledger is shaped
// differently from the statement exports, so it carries its own heuristics.
type Options struct {
	// IncomeColumns are the salary column headers, case-insensitive.
	IncomeColumns []string
	// CardsOnlyCategories whitelists the category headers summed by the
	// cards-only extractor.
	CardsOnlyCategories []string
}

// DefaultOptions returns the household ledger conventions.
func DefaultOptions() Options {
	return Options{
		IncomeColumns: []string{"david salary", "sonya salary"},
		CardsOnlyCategories: []string{
			"grocery", "restaurants", "entertainment", "travel", "oyster",
			"clothes", "kitchen", "electronics", "accessories", "supplies",
			"gift", "uk cabs", "others", "services",
		},
	}
}

const totalExpensesHeader = "total expenses"

// Positional conventions used when the header cells are blank or
// unlabeled: the year lives in the first column, the numeric month in the
// third.
const (
	positionalYearCol  = 0
	positionalMonthCol = 2
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// headerStrategies builds the ledger's locator chain: the strict heuristic
// wants an explicit "Total expenses" column alongside a salary column, the
// relaxed one settles for "Total expenses" alone, and row 0 is the
// documented last resort.
func headerStrategies(opts Options) []sheet.Strategy {
	strict := sheet.Strategy{
		Name: "total-expenses-and-salary",
		Locate: func(g sheet.Grid) (int, bool) {
			return scanFor(g, func(lowered []string) bool {
				return containsExact(lowered, totalExpensesHeader) && anyExact(lowered, opts.IncomeColumns)
			})
		},
	}
	relaxed := sheet.Strategy{
		Name: "total-expenses",
		Locate: func(g sheet.Grid) (int, bool) {
			return scanFor(g, func(lowered []string) bool {
				return containsExact(lowered, totalExpensesHeader)
			})
		},
	}
	return []sheet.Strategy{strict, relaxed, sheet.FixedRow(0)}
}

func scanFor(g sheet.Grid, match func([]string) bool) (int, bool) {
	for r := 0; r < len(g) && r < sheet.MaxScanRows; r++ {
		lowered := make([]string, len(g[r]))
		for i, c := range g[r] {
			lowered[i] = strings.ToLower(strings.TrimSpace(c))
		}
		if match(lowered) {
			return r, true
		}
	}
	return 0, false
}

func containsExact(lowered []string, want string) bool {
	for _, c := range lowered {
		if c == want {
			return true
		}
	}
	return false
}

func anyExact(lowered []string, wants []string) bool {
	for _, w := range wants {
		if containsExact(lowered, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

// Extract parses the ledger grid into 12 months of truth totals. Income is
// the absolute sum of the salary columns; expenses prefer the explicit
// "Total expenses" column and otherwise sum the category columns, with
// negative entries treated as refunds that reduce the total.
func Extract(g sheet.Grid, year int, opts Options) ([]model.MonthlyTotals, error) {
	if len(g) == 0 {
		return nil, common.ErrEmptySheet
	}
	loc, err := sheet.Locate(g, headerStrategies(opts)...)
	if err != nil {
		return nil, err
	}
	if loc.Strategy != "total-expenses-and-salary" {
		common.LogDebug("ledger header located by fallback", common.Fields{
			"strategy": loc.Strategy, "row": loc.Row,
		})
	}

	fields := loc.Fields
	yearCol := exactColumn(fields, "year")
	if yearCol < 0 {
		yearCol = positionalYearCol
	}
	monthCol := exactColumn(fields, "month")
	positionalMonth := monthCol < 0
	if positionalMonth {
		monthCol = positionalMonthCol
	}

	var incomeCols []int
	for _, name := range opts.IncomeColumns {
		if i := exactColumn(fields, name); i >= 0 {
			incomeCols = append(incomeCols, i)
		}
	}
	totalCol := exactColumn(fields, totalExpensesHeader)
	categoryStart := categoryStartCol(incomeCols)

	type bucket struct{ income, expenses decimal.Decimal }
	byMonth := make(map[int]*bucket)

	for r := loc.Row + 1; r < len(g); r++ {
		if parseYear(g.Cell(r, yearCol)) != year {
			continue
		}
		m, ok := parseMonth(g.Cell(r, monthCol))
		if !ok {
			continue
		}

		income := decimal.Zero
		for _, c := range incomeCols {
			income = income.Add(normalize.AmountOrZero(g.Cell(r, c)))
		}
		income = income.Abs()

		expenses := decimal.Zero
		if totalCol >= 0 {
			expenses = normalize.AmountOrZero(g.Cell(r, totalCol)).Abs()
		}
		if expenses.IsZero() {
			expenses = categorySum(g, r, fields, incomeCols, totalCol, categoryStart)
		}

		b := byMonth[m]
		if b == nil {
			b = &bucket{}
			byMonth[m] = b
		}
		b.income = b.income.Add(income)
		b.expenses = b.expenses.Add(expenses)
	}

	out := make([]model.MonthlyTotals, 12)
	for i := range out {
		out[i].Month = i + 1
		if b := byMonth[i+1]; b != nil {
			out[i].Income = b.income
			out[i].Expenses = b.expenses
		}
	}
	return out, nil
}

// categorySum sums the signed category columns for one row: positives
// spend, negatives are refunds that reduce the total.
func categorySum(g sheet.Grid, r int, fields []string, incomeCols []int, totalCol, start int) decimal.Decimal {
	sum := decimal.Zero
	for i := start; i < len(fields); i++ {
		if i == totalCol || intsContain(incomeCols, i) {
			continue
		}
		name := strings.ToLower(fields[i])
		if name == "" || strings.HasPrefix(name, "col_") {
			continue
		}
		sum = sum.Add(normalize.AmountOrZero(g.Cell(r, i)))
	}
	return sum
}

func categoryStartCol(incomeCols []int) int {
	start := 3 // past the positional year/month block
	for _, c := range incomeCols {
		if c < start {
			start = c
		}
	}
	return start
}

func exactColumn(fields []string, want string) int {
	want = strings.ToLower(want)
	for i, f := range fields {
		if strings.ToLower(strings.TrimSpace(f)) == want {
			return i
		}
	}
	return -1
}

func parseYear(cell string) int {
	s := strings.TrimSpace(cell)
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseMonth(cell string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(cell))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		m := int(f)
		if m >= 1 && m <= 12 {
			return m, true
		}
		return 0, false
	}
	for i, name := range monthNames {
		if s == name || s == name[:3] {
			return i + 1, true
		}
	}
	return 0, false
}

func intsContain(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
