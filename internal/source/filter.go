package source

import (
	"regexp"

	"tally/internal/common"
	"tally/internal/model"
)

// paymentPatterns recognize internal transfers and card-bill payments.
// Without this filter a card-bill payment shows up as phantom income in
// card-only data.
var paymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpayment\b`),
	regexp.MustCompile(`(?i)direct\s*debit`),
	regexp.MustCompile(`(?i)thank\s*you`),
	regexp.MustCompile(`(?i)auto\s*pay`),
	regexp.MustCompile(`(?i)autopay`),
	regexp.MustCompile(`(?i)statement\s*balance`),
	regexp.MustCompile(`(?i)balance\s*payment`),
	regexp.MustCompile(`(?i)bill\s*pay`),
	regexp.MustCompile(`(?i)transfer`),
	regexp.MustCompile(`(?i)repayment`),
	regexp.MustCompile(`(?i)payment\s*received`),
	regexp.MustCompile(`(?i)credit\s*card\s*repayment`),
}

// cardBillPatterns recognize bank rows that pay off card statements, which
// would otherwise double-count spend already present in the card exports.
var cardBillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)american\s*express`),
	regexp.MustCompile(`(?i)\bamex\b`),
	regexp.MustCompile(`(?i)master\s*card`),
	regexp.MustCompile(`(?i)mastercard`),
	regexp.MustCompile(`(?i)visa\s*card`),
	regexp.MustCompile(`(?i)direct\s*debit.*(card|payment)`),
	regexp.MustCompile(`(?i)credit\s*card.*payment`),
}

// LooksLikePayment reports whether a description matches the internal
// transfer/payment patterns.
func LooksLikePayment(text string) bool {
	if text == "" {
		return false
	}
	return common.AnyMatch(paymentPatterns, text)
}

// FilterPayments drops card payments and transfers from card data. Only
// inflow-side rows are considered: a genuine refund keeps its merchant
// name, while bill payments carry the pattern text.
func FilterPayments(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Amount.Sign() < 0 && LooksLikePayment(t.Text()) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterCardBills drops bank rows that pay off card statements.
func FilterCardBills(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if common.AnyMatch(cardBillPatterns, t.DescriptionRaw) {
			continue
		}
		out = append(out, t)
	}
	return out
}
