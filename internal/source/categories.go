package source

import (
	"strings"

	"tally/internal/model"
)

// CategoryRules normalizes raw category labels and unifies their signs.
type CategoryRules struct {
	// Normalize maps raw labels to canonical ones.
	Normalize map[string]string
	// IncomeCategories force the canonical income sign (negative),
	// whatever polarity the source reported.
	IncomeCategories []string
	// Exclude drops transactions with these canonical categories from
	// rollup views entirely.
	Exclude []string
}

// ApplyCategoryRules rewrites categories per the normalize mapping, forces
// income-category amounts negative and drops excluded categories. Input
// transactions are not mutated.
func ApplyCategoryRules(txns []model.Transaction, rules CategoryRules) []model.Transaction {
	income := lowerSet(rules.IncomeCategories)
	exclude := lowerSet(rules.Exclude)

	// Viper lowercases map keys, so the mapping lookup must too.
	normalize := make(map[string]string, len(rules.Normalize))
	for k, v := range rules.Normalize {
		normalize[strings.ToLower(strings.TrimSpace(k))] = v
	}

	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		cat := t.CategoryRaw
		if mapped, ok := normalize[strings.ToLower(strings.TrimSpace(cat))]; ok {
			cat = mapped
		}
		key := strings.ToLower(strings.TrimSpace(cat))
		if key != "" && exclude[key] {
			continue
		}
		t.CategoryRaw = cat
		if key != "" && income[key] {
			t.Amount = t.Amount.Abs().Neg()
		}
		out = append(out, t)
	}
	return out
}

func lowerSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[strings.ToLower(strings.TrimSpace(x))] = true
	}
	return m
}
