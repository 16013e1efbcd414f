// Package compare reconciles computed monthly totals against the truth
// ledger and renders the variance table.
package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tally/internal/cli"
	"tally/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ToTruth builds per-month variance rows from computed and truth totals.
// Deltas are rounded to 2dp here, at the presentation boundary; the inputs
// carry full precision.
func ToTruth(ours, truth []model.MonthlyTotals) []model.VarianceRow {
	truthByMonth := make(map[int]model.MonthlyTotals, len(truth))
	for _, t := range truth {
		truthByMonth[t.Month] = t
	}

	var out []model.VarianceRow
	for _, r := range ours {
		t, ok := truthByMonth[r.Month]
		if !ok {
			continue
		}
		out = append(out, model.VarianceRow{
			Month:         r.Month,
			IncomeOurs:    r.Income.Round(2),
			IncomeTruth:   t.Income.Round(2),
			IncomeDelta:   r.Income.Round(2).Sub(t.Income.Round(2)),
			ExpensesOurs:  r.Expenses.Round(2),
			ExpensesTruth: t.Expenses.Round(2),
			ExpensesDelta: r.Expenses.Round(2).Sub(t.Expenses.Round(2)),
		})
	}
	return out
}

// AllGreen reports whether every month reconciles exactly on both sides.
func AllGreen(rows []model.VarianceRow) bool {
	for _, r := range rows {
		if !r.IncomeOK() || !r.ExpensesOK() {
			return false
		}
	}
	return true
}

// RenderTable renders the month × {income, expense} actual vs truth vs
// delta table with a pass/fail marker per side.
func RenderTable(year int, rows []model.VarianceRow) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Reconciliation %d — computed vs ledger", year)))
	b.WriteString("\n")
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf(
		"%5s | %10s %10s %10s   | %10s %10s %10s",
		"Month", "Inc(Our)", "Inc(Truth)", "ΔIncome", "Exp(Our)", "Exp(Truth)", "ΔExp")))
	b.WriteString("\n")

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%5d | %10s %10s %10s %s | %10s %10s %10s %s\n",
			r.Month,
			r.IncomeOurs.StringFixed(2),
			r.IncomeTruth.StringFixed(2),
			r.IncomeDelta.StringFixed(2),
			cli.OKMark(r.IncomeOK()),
			r.ExpensesOurs.StringFixed(2),
			r.ExpensesTruth.StringFixed(2),
			r.ExpensesDelta.StringFixed(2),
			cli.OKMark(r.ExpensesOK()),
		))
	}

	b.WriteString("\n")
	if AllGreen(rows) {
		b.WriteString(cli.SuccessStyle.Render("Result: ALL GREEN"))
	} else {
		b.WriteString(cli.ErrorStyle.Render("Result: MISMATCHES FOUND"))
	}
	b.WriteString("\n")
	return b.String()
}

// RenderRollup renders the computed monthly table without a truth side.
func RenderRollup(year int, totals []model.MonthlyTotals) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Monthly rollup %d", year)))
	b.WriteString("\n")
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf(
		"%5s | %10s %10s %10s %8s",
		"Month", "Income", "Expenses", "Savings", "Rate")))
	b.WriteString("\n")

	for _, m := range totals {
		rate := ""
		if r, ok := m.SavingsRate(); ok {
			rate = r.Mul(hundred).StringFixed(1) + "%"
		}
		b.WriteString(fmt.Sprintf("%5d | %10s %10s %10s %8s\n",
			m.Month,
			m.Income.StringFixed(2),
			m.Expenses.StringFixed(2),
			m.Savings().StringFixed(2),
			rate,
		))
	}
	return b.String()
}
