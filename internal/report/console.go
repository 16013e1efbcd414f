package report

import (
	"fmt"
	"strings"

	"tally/internal/cli"
	"tally/internal/model"
)

// RenderConsole renders a compact styled summary for terminal output.
func RenderConsole(s Summary, res model.MatchResult) string {
	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Amazon matching — %d", s.Year)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Parents: %d (£%s)\n", s.Parents, s.ParentSum.StringFixed(2)))
	b.WriteString(fmt.Sprintf("Matched: %d (£%s, %s%%) — %d singles, %d groups\n",
		s.Matched, s.MatchedSum.StringFixed(2), s.CoveragePct.StringFixed(1), s.Singles, s.Groups))
	b.WriteString(fmt.Sprintf("Unmatched: %d parents, %d details\n",
		len(res.UnmatchedParents), len(res.UnmatchedDetails)))

	b.WriteString("\n")
	b.WriteString(cli.TableHeaderStyle.Render(fmt.Sprintf("%5s %9s %11s %9s %11s %9s",
		"Month", "#Parents", "£Parents", "#Matched", "£Matched", "Coverage")))
	b.WriteString("\n")
	for _, m := range s.Monthly {
		line := fmt.Sprintf("%5d %9d %11s %9d %11s %8s%%",
			m.Month, m.Parents, m.ParentSum.StringFixed(2),
			m.Matched, m.MatchedSum.StringFixed(2), m.CoveragePct.StringFixed(1))
		if m.Parents > 0 && m.Matched == m.Parents {
			line += " " + cli.SuccessStyle.Render("✓")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
