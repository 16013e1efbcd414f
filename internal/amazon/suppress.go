package amazon

import (
	"tally/internal/model"
)

// SuppressMatched removes transactions whose Amazon parent matched a
// detail row, so the itemized detail can replace the aggregate charge in
// downstream views. Returns the surviving transactions and the number
// suppressed. Matching here uses the single-line matcher only.
func SuppressMatched(txns []model.Transaction, c *Classifier, details []model.AmazonDetail, windowDays int) ([]model.Transaction, int) {
	parents, txnIdx := c.CollectParents(txns)
	if len(parents) == 0 {
		return txns, 0
	}

	used := make([]bool, len(details))
	_, matched := matchSingles(parents, details, windowDays, used)

	drop := make(map[int]bool)
	for pi, ok := range matched {
		if ok {
			drop[txnIdx[pi]] = true
		}
	}
	if len(drop) == 0 {
		return txns, 0
	}

	kept := make([]model.Transaction, 0, len(txns)-len(drop))
	for i, t := range txns {
		if drop[i] {
			continue
		}
		kept = append(kept, t)
	}
	return kept, len(drop)
}
