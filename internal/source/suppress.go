package source

import (
	"regexp"

	"tally/internal/common"
	"tally/internal/model"
)

// SuppressRules holds compiled description patterns per side of the
// ledger. Rules are compiled once at startup and passed in explicitly.
type SuppressRules struct {
	Expense []*regexp.Regexp
	Income  []*regexp.Regexp
}

// Suppress drops transactions whose description matches a rule for their
// side: expense rules apply to outflows, income rules to inflows.
// Returns the surviving transactions and the number suppressed.
func Suppress(txns []model.Transaction, rules SuppressRules) ([]model.Transaction, int) {
	kept := make([]model.Transaction, 0, len(txns))
	dropped := 0
	for _, t := range txns {
		text := t.Text()
		switch {
		case t.Amount.Sign() > 0 && common.AnyMatch(rules.Expense, text):
			dropped++
		case t.Amount.Sign() < 0 && common.AnyMatch(rules.Income, text):
			dropped++
		default:
			kept = append(kept, t)
		}
	}
	return kept, dropped
}
