package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmazonParent is a card charge suspected of being an Amazon purchase,
// to be matched against itemized order detail. Amount is an absolute value.
type AmazonParent struct {
	Source     Source
	PostedDate time.Time
	Amount     decimal.Decimal
	Merchant   string
}

// AmazonDetail is one line-item row from an Amazon order-history sheet.
// DetailDate is zero when the row carries no parseable date.
type AmazonDetail struct {
	Sheet      string
	RowIndex   int
	DetailDate time.Time
	Amount     decimal.Decimal
}

// HasDate reports whether the detail row carried a parseable date.
func (d AmazonDetail) HasDate() bool {
	return !d.DetailDate.IsZero()
}

// SingleMatch pairs a parent with exactly one detail row.
type SingleMatch struct {
	Parent AmazonParent
	Detail AmazonDetail
}

// GroupMatch pairs a parent with multiple detail rows whose amounts sum
// exactly to the parent amount (a split shipment).
type GroupMatch struct {
	Parent  AmazonParent
	Details []AmazonDetail
}

// MatchResult classifies every parent into exactly one of matched single,
// matched group, or unmatched, along with the detail rows left unconsumed.
type MatchResult struct {
	Singles          []SingleMatch
	Groups           []GroupMatch
	UnmatchedParents []AmazonParent
	UnmatchedDetails []AmazonDetail
}

// MatchedParents returns all parents matched either singly or as a group.
func (r MatchResult) MatchedParents() []AmazonParent {
	out := make([]AmazonParent, 0, len(r.Singles)+len(r.Groups))
	for _, m := range r.Singles {
		out = append(out, m.Parent)
	}
	for _, g := range r.Groups {
		out = append(out, g.Parent)
	}
	return out
}
