package report

import (
	"fmt"
	"io"
	"time"

	"tally/internal/model"
	"tally/internal/normalize"
)

func mdDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return normalize.FormatDate(t)
}

// RenderMarkdown writes the match report as a Markdown document.
func RenderMarkdown(w io.Writer, s Summary, res model.MatchResult) error {
	p := func(format string, args ...any) {
		fmt.Fprintf(w, format, args...)
	}

	p("# Amazon Matching — %d\n\n", s.Year)
	p("- Parents (card): %d • £%s\n", s.Parents, s.ParentSum.StringFixed(2))
	p("- Matched parents: %d • £%s (%s%%)\n", s.Matched, s.MatchedSum.StringFixed(2), s.CoveragePct.StringFixed(1))
	p("- Singles: %d, groups: %d\n\n", s.Singles, s.Groups)

	p("## Monthly coverage\n\n")
	p("| Month | #Parents | £Parents | #Matched | £Matched | Coverage |\n")
	p("|------:|---------:|---------:|---------:|---------:|---------:|\n")
	for _, m := range s.Monthly {
		p("| %d | %d | %s | %d | %s | %s%% |\n",
			m.Month, m.Parents, m.ParentSum.StringFixed(2),
			m.Matched, m.MatchedSum.StringFixed(2), m.CoveragePct.StringFixed(1))
	}
	p("\n")

	p("## Single matches\n\n")
	p("| Posted | £Parent | Merchant | Detail date | £Detail | Sheet |\n")
	p("|--------|--------:|----------|-------------|--------:|-------|\n")
	for _, m := range res.Singles {
		p("| %s | %s | %s | %s | %s | %s |\n",
			mdDate(m.Parent.PostedDate), m.Parent.Amount.StringFixed(2), m.Parent.Merchant,
			mdDate(m.Detail.DetailDate), m.Detail.Amount.StringFixed(2), m.Detail.Sheet)
	}
	p("\n")

	p("## Group matches\n\n")
	for _, g := range res.Groups {
		p("- %s £%s %s\n", mdDate(g.Parent.PostedDate), g.Parent.Amount.StringFixed(2), g.Parent.Merchant)
		for _, d := range g.Details {
			p("  - %s £%s (%s)\n", mdDate(d.DetailDate), d.Amount.StringFixed(2), d.Sheet)
		}
	}
	p("\n")

	p("## Unmatched parents\n\n")
	for _, u := range res.UnmatchedParents {
		p("- %s £%s %s\n", mdDate(u.PostedDate), u.Amount.StringFixed(2), u.Merchant)
	}
	p("\n## Unmatched details\n\n")
	for _, d := range res.UnmatchedDetails {
		p("- %s £%s (%s)\n", mdDate(d.DetailDate), d.Amount.StringFixed(2), d.Sheet)
	}
	return nil
}
