package truth

import (
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/normalize"
	"tally/internal/sheet"
)

// ExtractCardsOnly parses the ledger counting only the whitelisted
// card-spend category columns, for reconciling card exports without the
// bank side. Negative whitelisted cells are counted as positive expense
// (the refund already reduced the card total being reconciled against).
// Income is always zero in the result.
func ExtractCardsOnly(g sheet.Grid, year int, opts Options) ([]model.MonthlyTotals, error) {
	if len(g) == 0 {
		return nil, common.ErrEmptySheet
	}
	whitelist := make(map[string]bool, len(opts.CardsOnlyCategories))
	for _, c := range opts.CardsOnlyCategories {
		whitelist[strings.ToLower(c)] = true
	}

	whitelistScan := sheet.Strategy{
		Name: "category-whitelist",
		Locate: func(g sheet.Grid) (int, bool) {
			return scanFor(g, func(lowered []string) bool {
				hits := 0
				for _, c := range lowered {
					if whitelist[c] {
						hits++
					}
				}
				return hits >= 3
			})
		},
	}
	loc, err := sheet.Locate(g, append([]sheet.Strategy{whitelistScan}, headerStrategies(opts)...)...)
	if err != nil {
		return nil, err
	}

	var cols []int
	for i, f := range loc.Fields {
		if whitelist[strings.ToLower(strings.TrimSpace(f))] {
			cols = append(cols, i)
		}
	}

	byMonth := make(map[int]decimal.Decimal)
	for r := loc.Row + 1; r < len(g); r++ {
		if parseYear(g.Cell(r, positionalYearCol)) != year {
			continue
		}
		m, ok := parseMonth(g.Cell(r, positionalMonthCol))
		if !ok {
			continue
		}
		sum := decimal.Zero
		for _, c := range cols {
			sum = sum.Add(normalize.AmountOrZero(g.Cell(r, c)).Abs())
		}
		byMonth[m] = byMonth[m].Add(sum)
	}

	out := make([]model.MonthlyTotals, 12)
	for i := range out {
		out[i].Month = i + 1
		out[i].Expenses = byMonth[i+1]
	}
	return out, nil
}
