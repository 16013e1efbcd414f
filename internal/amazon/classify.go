// Package amazon classifies card charges as Amazon purchases and matches
// them against itemized order-detail rows.
package amazon

import (
	"regexp"

	"tally/internal/common"
	"tally/internal/model"
)

// DefaultPatterns recognize Amazon merchants across the descriptor
// variants seen on card statements.
var DefaultPatterns = []string{
	`\bamazon\b`,
	`\bamzn\b`,
	`amznmktplace`,
	`amazon eu`,
	`amzn digital`,
	`amazon prime`,
	`amzn prime`,
}

// Classifier matches merchant text against a compiled pattern list.
type Classifier struct {
	patterns []*regexp.Regexp
}

// NewClassifier compiles merchant patterns, case-insensitively. An empty
// list falls back to DefaultPatterns.
func NewClassifier(patterns []string) (*Classifier, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	compiled, err := common.CompilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &Classifier{patterns: compiled}, nil
}

// LooksAmazon reports whether merchant or description text matches any
// Amazon pattern.
func (c *Classifier) LooksAmazon(text string) bool {
	if text == "" {
		return false
	}
	return common.AnyMatch(c.patterns, text)
}

// CollectParents filters transactions down to candidate Amazon parents.
// Amounts are absolute values for matching. The second return maps each
// parent back to its index in txns, so matched parents can be suppressed
// from the original list.
func (c *Classifier) CollectParents(txns []model.Transaction) ([]model.AmazonParent, []int) {
	var parents []model.AmazonParent
	var txnIdx []int
	for i, t := range txns {
		if !c.LooksAmazon(t.Text()) {
			continue
		}
		parents = append(parents, model.AmazonParent{
			Source:     t.Source,
			PostedDate: t.PostedDate,
			Amount:     t.Amount.Abs(),
			Merchant:   t.Text(),
		})
		txnIdx = append(txnIdx, i)
	}
	return parents, txnIdx
}
