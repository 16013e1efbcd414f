package amazon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func parent(date, amount string) model.AmazonParent {
	return model.AmazonParent{
		Source:     model.SourceAmex,
		PostedDate: day(date),
		Amount:     decimal.RequireFromString(amount),
		Merchant:   "AMAZON EU",
	}
}

func detail(date, amount string) model.AmazonDetail {
	d := model.AmazonDetail{Sheet: "Amazon 2024", Amount: decimal.RequireFromString(amount)}
	if date != "" {
		d.DetailDate = day(date)
	}
	return d
}

func TestMatch_SingleWithinWindow(t *testing.T) {
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "49.99")},
		[]model.AmazonDetail{detail("2024-03-12", "49.99")},
		5,
	)

	require.Len(t, res.Singles, 1)
	assert.Empty(t, res.UnmatchedParents)
	assert.Empty(t, res.UnmatchedDetails)
	assert.Equal(t, "49.99", res.Singles[0].Detail.Amount.String())
}

func TestMatch_BeyondWindow(t *testing.T) {
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "49.99")},
		[]model.AmazonDetail{detail("2024-03-20", "49.99")},
		5,
	)

	assert.Empty(t, res.Singles)
	require.Len(t, res.UnmatchedParents, 1)
	require.Len(t, res.UnmatchedDetails, 1)
}

func TestMatch_WindowBoundaryInclusive(t *testing.T) {
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "20.00")},
		[]model.AmazonDetail{detail("2024-03-15", "20.00")},
		5,
	)
	assert.Len(t, res.Singles, 1)
}

func TestMatch_DatelessDetailMatchesAnyDistance(t *testing.T) {
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "15.00")},
		[]model.AmazonDetail{detail("", "15.00")},
		5,
	)
	require.Len(t, res.Singles, 1)
	assert.False(t, res.Singles[0].Detail.HasDate())
}

func TestMatch_AmountMustMatchToTheCent(t *testing.T) {
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "49.99")},
		[]model.AmazonDetail{detail("2024-03-10", "49.98")},
		5,
	)
	assert.Empty(t, res.Singles)
}

func TestMatch_DetailConsumedOnce(t *testing.T) {
	// Two parents, one detail at the shared amount: exactly one matches.
	res := Match(
		[]model.AmazonParent{
			parent("2024-03-10", "25.00"),
			parent("2024-03-11", "25.00"),
		},
		[]model.AmazonDetail{detail("2024-03-10", "25.00")},
		5,
	)

	assert.Len(t, res.Singles, 1)
	assert.Len(t, res.UnmatchedParents, 1)
	assert.Empty(t, res.UnmatchedDetails)
}

func TestMatch_FirstFitByInputOrder(t *testing.T) {
	// Both candidates are in window; the earlier detail row wins even
	// though the later one is closer in date.
	res := Match(
		[]model.AmazonParent{parent("2024-03-10", "30.00")},
		[]model.AmazonDetail{
			detail("2024-03-14", "30.00"),
			detail("2024-03-10", "30.00"),
		},
		5,
	)

	require.Len(t, res.Singles, 1)
	assert.Equal(t, day("2024-03-14"), res.Singles[0].Detail.DetailDate)
	require.Len(t, res.UnmatchedDetails, 1)
	assert.Equal(t, day("2024-03-10"), res.UnmatchedDetails[0].DetailDate)
}

func TestMatchWithGrouping_SplitShipment(t *testing.T) {
	res := MatchWithGrouping(
		[]model.AmazonParent{parent("2024-03-10", "60.00")},
		[]model.AmazonDetail{
			detail("2024-03-09", "25.00"),
			detail("2024-03-11", "35.00"),
		},
		DefaultMatchOptions(),
	)

	assert.Empty(t, res.Singles)
	require.Len(t, res.Groups, 1)
	require.Len(t, res.Groups[0].Details, 2)
	assert.Empty(t, res.UnmatchedParents)
	assert.Empty(t, res.UnmatchedDetails)

	sum := decimal.Zero
	for _, d := range res.Groups[0].Details {
		sum = sum.Add(d.Amount)
	}
	assert.True(t, sum.Equal(res.Groups[0].Parent.Amount))
}

func TestMatchWithGrouping_SinglesRunFirst(t *testing.T) {
	// A detail consumed by the single pass is unavailable to any group.
	res := MatchWithGrouping(
		[]model.AmazonParent{
			parent("2024-03-10", "25.00"),
			parent("2024-03-10", "60.00"),
		},
		[]model.AmazonDetail{
			detail("2024-03-09", "25.00"),
			detail("2024-03-11", "35.00"),
		},
		DefaultMatchOptions(),
	)

	require.Len(t, res.Singles, 1)
	assert.Empty(t, res.Groups)
	require.Len(t, res.UnmatchedParents, 1)
	assert.Equal(t, "60", res.UnmatchedParents[0].Amount.String())
	require.Len(t, res.UnmatchedDetails, 1)
	assert.Equal(t, "35", res.UnmatchedDetails[0].Amount.String())
}

func TestMatchWithGrouping_RespectsMaxGroup(t *testing.T) {
	opts := DefaultMatchOptions()
	opts.MaxGroup = 2

	res := MatchWithGrouping(
		[]model.AmazonParent{parent("2024-03-10", "60.00")},
		[]model.AmazonDetail{
			detail("2024-03-09", "10.00"),
			detail("2024-03-10", "20.00"),
			detail("2024-03-11", "30.00"),
		},
		opts,
	)

	// The only exact cover needs three lines; with a cap of two the parent
	// stays unmatched.
	assert.Empty(t, res.Groups)
	assert.Len(t, res.UnmatchedParents, 1)
	assert.Len(t, res.UnmatchedDetails, 3)

	opts.MaxGroup = 3
	res = MatchWithGrouping(
		[]model.AmazonParent{parent("2024-03-10", "60.00")},
		[]model.AmazonDetail{
			detail("2024-03-09", "10.00"),
			detail("2024-03-10", "20.00"),
			detail("2024-03-11", "30.00"),
		},
		opts,
	)
	require.Len(t, res.Groups, 1)
	assert.Len(t, res.Groups[0].Details, 3)
}

func TestMatchWithGrouping_GroupWindowWiderThanSingle(t *testing.T) {
	// 6 days out: too far for the 5-day single window, inside the 7-day
	// group window.
	res := MatchWithGrouping(
		[]model.AmazonParent{parent("2024-03-10", "50.00")},
		[]model.AmazonDetail{
			detail("2024-03-16", "20.00"),
			detail("2024-03-16", "30.00"),
		},
		DefaultMatchOptions(),
	)
	assert.Len(t, res.Groups, 1)
}

func TestMatchWithGrouping_NoSingleLineGroups(t *testing.T) {
	// A lone detail equal to the parent amount outside the single window
	// must not become a one-line "group".
	res := MatchWithGrouping(
		[]model.AmazonParent{parent("2024-03-10", "50.00")},
		[]model.AmazonDetail{detail("2024-03-16", "50.00")},
		DefaultMatchOptions(),
	)
	assert.Empty(t, res.Groups)
	assert.Len(t, res.UnmatchedParents, 1)
}

func TestMatchResult_EveryParentClassifiedOnce(t *testing.T) {
	parents := []model.AmazonParent{
		parent("2024-03-10", "49.99"),
		parent("2024-03-12", "60.00"),
		parent("2024-03-20", "99.99"),
	}
	details := []model.AmazonDetail{
		detail("2024-03-11", "49.99"),
		detail("2024-03-12", "25.00"),
		detail("2024-03-13", "35.00"),
	}

	res := MatchWithGrouping(parents, details, DefaultMatchOptions())
	assert.Equal(t, len(parents), len(res.Singles)+len(res.Groups)+len(res.UnmatchedParents))

	consumed := 0
	for _, g := range res.Groups {
		consumed += len(g.Details)
	}
	consumed += len(res.Singles)
	assert.Equal(t, len(details), consumed+len(res.UnmatchedDetails))
}

func TestSuppressMatched(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	txns := []model.Transaction{
		{MerchantRaw: "AMAZON EU", PostedDate: day("2024-03-10"), Amount: decimal.RequireFromString("49.99")},
		{MerchantRaw: "AMAZON EU", PostedDate: day("2024-03-10"), Amount: decimal.RequireFromString("99.00")},
		{MerchantRaw: "TESCO", PostedDate: day("2024-03-10"), Amount: decimal.RequireFromString("49.99")},
	}
	details := []model.AmazonDetail{detail("2024-03-11", "49.99")}

	kept, n := SuppressMatched(txns, c, details, 5)
	assert.Equal(t, 1, n)
	require.Len(t, kept, 2)
	assert.Equal(t, "99", kept[0].Amount.String())
	assert.Equal(t, "TESCO", kept[1].MerchantRaw)
}

func TestSuppressMatched_NoParents(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	txns := []model.Transaction{{MerchantRaw: "TESCO"}}
	kept, n := SuppressMatched(txns, c, nil, 5)
	assert.Zero(t, n)
	assert.Len(t, kept, 1)
}
