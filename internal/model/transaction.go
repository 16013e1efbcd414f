// Package model defines the canonical data types shared across the pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies where a transaction was exported from.
type Source string

// Known transaction sources.
const (
	SourceAmex Source = "amex"
	SourceMC   Source = "mc"
	SourceBank Source = "bank"
)

// Transaction is a single financial transaction normalized to the unified
// sign convention: positive amount = expense (outflow), negative = income
// (inflow), regardless of the source's native polarity. Instances are
// created once during canonicalization and never mutated.
type Transaction struct {
	Source         Source
	PostedDate     time.Time
	Amount         decimal.Decimal
	MerchantRaw    string
	DescriptionRaw string
	CategoryRaw    string
	Currency       string
	Account        string // originating sheet for embedded bank statements
}

// IsExpense reports whether the transaction is an outflow under the
// canonical sign convention.
func (t Transaction) IsExpense() bool {
	return t.Amount.Sign() >= 0
}

// Text returns the best available description for pattern matching,
// preferring the merchant field.
func (t Transaction) Text() string {
	if t.MerchantRaw != "" {
		return t.MerchantRaw
	}
	return t.DescriptionRaw
}
