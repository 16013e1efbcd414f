// Package report renders Amazon match results as HTML, Markdown or CSV
// documents plus a console summary.
package report

import (
	"github.com/shopspring/decimal"

	"tally/internal/model"
)

var hundred = decimal.NewFromInt(100)

// MonthCoverage is one month of parent-vs-matched totals.
type MonthCoverage struct {
	Month       int
	Parents     int
	ParentSum   decimal.Decimal
	Matched     int
	MatchedSum  decimal.Decimal
	CoveragePct decimal.Decimal
}

// Summary aggregates a match result for rendering.
type Summary struct {
	Monthly     []MonthCoverage
	Year        int
	Parents     int
	ParentSum   decimal.Decimal
	Matched     int
	MatchedSum  decimal.Decimal
	Singles     int
	Groups      int
	CoveragePct decimal.Decimal
}

// Summarize computes coverage KPIs and the monthly breakdown, keyed by the
// parents' posted months.
func Summarize(year int, parents []model.AmazonParent, res model.MatchResult) Summary {
	s := Summary{
		Year:    year,
		Parents: len(parents),
		Singles: len(res.Singles),
		Groups:  len(res.Groups),
		Matched: len(res.Singles) + len(res.Groups),
	}

	type bucket struct {
		parents, matched      int
		parentSum, matchedSum decimal.Decimal
	}
	months := make([]bucket, 12)

	for _, p := range parents {
		s.ParentSum = s.ParentSum.Add(p.Amount)
		b := &months[int(p.PostedDate.Month())-1]
		b.parents++
		b.parentSum = b.parentSum.Add(p.Amount)
	}
	for _, p := range res.MatchedParents() {
		s.MatchedSum = s.MatchedSum.Add(p.Amount)
		b := &months[int(p.PostedDate.Month())-1]
		b.matched++
		b.matchedSum = b.matchedSum.Add(p.Amount)
	}

	if s.ParentSum.Sign() > 0 {
		s.CoveragePct = s.MatchedSum.Div(s.ParentSum).Mul(hundred).Round(1)
	}

	s.Monthly = make([]MonthCoverage, 12)
	for i, b := range months {
		mc := MonthCoverage{
			Month:      i + 1,
			Parents:    b.parents,
			ParentSum:  b.parentSum,
			Matched:    b.matched,
			MatchedSum: b.matchedSum,
		}
		if b.parentSum.Sign() > 0 {
			mc.CoveragePct = b.matchedSum.Div(b.parentSum).Mul(hundred).Round(1)
		}
		s.Monthly[i] = mc
	}
	return s
}
