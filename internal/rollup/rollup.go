// Package rollup buckets canonical transactions into per-month totals.
package rollup

import (
	"tally/internal/model"
)

// Monthly sums a year's transactions into 12 month buckets. Expenses are
// the sum of non-negative amounts; income is the negated sum of negative
// amounts, so both totals are magnitudes. Sums run at full precision;
// rounding to 2dp happens once, at presentation.
func Monthly(year int, txns []model.Transaction) []model.MonthlyTotals {
	out := make([]model.MonthlyTotals, 12)
	for i := range out {
		out[i].Month = i + 1
	}
	for _, t := range txns {
		if t.PostedDate.Year() != year {
			continue
		}
		b := &out[int(t.PostedDate.Month())-1]
		if t.Amount.Sign() >= 0 {
			b.Expenses = b.Expenses.Add(t.Amount)
		} else {
			b.Income = b.Income.Add(t.Amount.Neg())
		}
	}
	return out
}
