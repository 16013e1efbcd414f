// Package source maps located spreadsheet rows into canonical transactions.
// Differences between exports (column names, sign conventions, date
// policies) are represented as Schema values rather than code forks.
package source

import (
	"strings"

	"tally/internal/model"
	"tally/internal/normalize"
	"tally/internal/sheet"
)

// SignRule describes how a source's native amount polarity maps onto the
// canonical convention (positive = expense).
type SignRule int

const (
	// ExpensePositive sources already report spend as positive (Amex, MC).
	ExpensePositive SignRule = iota
	// InflowPositive sources report credits as positive and debits as
	// negative (bank statements); the sign is flipped during mapping.
	InflowPositive
)

// Schema describes how one source's export is read: candidate column
// aliases per logical field, the amount sign rule and the date policy.
// Either AmountAliases or the Debit/Credit alias pair drives the amount.
type Schema struct {
	Source             model.Source
	DateAliases        []string
	DescriptionAliases []string
	MerchantAliases    []string
	CategoryAliases    []string
	CurrencyAliases    []string
	AmountAliases      []string
	DebitAliases       []string
	CreditAliases      []string
	HeaderGroups       []sheet.TokenGroup
	Sign               SignRule
	DatePolicy         normalize.DatePolicy
}

// Built-in schemas for the known export shapes. The alias lists are
// ordered: earlier names win over later ones, and the hand-converted
// columns ("CONVERTED £", "Converted date") outrank the provider's own.
var (
	Amex = Schema{
		Source:             model.SourceAmex,
		DateAliases:        []string{"date", "date processed"},
		DescriptionAliases: []string{"description"},
		MerchantAliases:    []string{"doing business as", "description"},
		CategoryAliases:    []string{"categorie", "subcategory", "category"},
		CurrencyAliases:    []string{"currency"},
		AmountAliases:      []string{"converted £", "amount"},
		HeaderGroups:       cardHeaderGroups,
		Sign:               ExpensePositive,
		DatePolicy:         normalize.DayFirst,
	}

	MC = Schema{
		Source:             model.SourceMC,
		DateAliases:        []string{"converted date", "date"},
		DescriptionAliases: []string{"description"},
		MerchantAliases:    []string{"description"},
		CategoryAliases:    []string{"category"},
		CurrencyAliases:    []string{"currency"},
		AmountAliases:      []string{"converted £", "amount"},
		HeaderGroups:       cardHeaderGroups,
		Sign:               ExpensePositive,
		DatePolicy:         normalize.DayFirst,
	}

	Bank = Schema{
		Source:             model.SourceBank,
		DateAliases:        []string{"date", "date posted", "transaction date"},
		DescriptionAliases: []string{"description", "narrative", "details", "payee"},
		MerchantAliases:    []string{"description", "narrative", "details", "payee"},
		CategoryAliases:    []string{"category"},
		AmountAliases:      []string{"amount", "amount (£)", "amount gbp"},
		DebitAliases:       []string{"debit", "money out"},
		CreditAliases:      []string{"credit", "money in"},
		HeaderGroups:       bankHeaderGroups,
		Sign:               InflowPositive,
		DatePolicy:         normalize.DayFirst,
	}
)

var cardHeaderGroups = []sheet.TokenGroup{
	{Name: "date", Tokens: []string{"date"}},
	{Name: "description", Tokens: []string{"description", "merchant", "narrative"}},
	{Name: "amount", Tokens: []string{"amount", "converted"}},
}

var bankHeaderGroups = []sheet.TokenGroup{
	{Name: "date", Tokens: []string{"date"}},
	{Name: "description", Tokens: []string{"description", "narrative", "details", "payee"}},
	{Name: "amount", Tokens: []string{"amount", "debit", "credit", "money out", "money in"}},
}

// ResolveColumn finds the column index for an ordered alias list: every
// alias is tried for an exact case-insensitive match first, then every
// alias again for substring containment. Returns -1 when nothing hits.
func ResolveColumn(fields []string, aliases []string) int {
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(strings.TrimSpace(f))
	}
	for _, a := range aliases {
		want := strings.ToLower(a)
		for i, f := range lowered {
			if f == want {
				return i
			}
		}
	}
	for _, a := range aliases {
		want := strings.ToLower(a)
		for i, f := range lowered {
			if f != "" && strings.Contains(f, want) {
				return i
			}
		}
	}
	return -1
}
