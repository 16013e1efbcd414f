package model

import "github.com/shopspring/decimal"

// MonthlyTotals holds per-month income and expense sums for one year.
// Both totals are non-negative magnitudes; sums are kept at full precision
// and rounded only when displayed.
type MonthlyTotals struct {
	Month    int // 1..12
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Savings returns income minus expenses.
func (m MonthlyTotals) Savings() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// SavingsRate returns (income-expenses)/income, and false when income is zero.
func (m MonthlyTotals) SavingsRate() (decimal.Decimal, bool) {
	if m.Income.Sign() <= 0 {
		return decimal.Zero, false
	}
	return m.Savings().DivRound(m.Income, 4), true
}

// VarianceRow is one month of the computed-vs-truth comparison.
type VarianceRow struct {
	Month         int
	IncomeOurs    decimal.Decimal
	IncomeTruth   decimal.Decimal
	IncomeDelta   decimal.Decimal
	ExpensesOurs  decimal.Decimal
	ExpensesTruth decimal.Decimal
	ExpensesDelta decimal.Decimal
}

// IncomeOK reports whether the income delta is exactly zero.
func (v VarianceRow) IncomeOK() bool { return v.IncomeDelta.IsZero() }

// ExpensesOK reports whether the expense delta is exactly zero.
func (v VarianceRow) ExpensesOK() bool { return v.ExpensesDelta.IsZero() }
