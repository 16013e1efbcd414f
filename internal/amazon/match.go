package amazon

import (
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/model"
)

// MatchOptions tunes the matcher's tolerance windows.
type MatchOptions struct {
	// WindowDays is the single-match date tolerance.
	WindowDays int
	// GroupWindowDays is the wider tolerance for split shipments.
	GroupWindowDays int
	// MaxGroup caps how many detail lines may combine into one group
	// match. Values below 2 disable grouping.
	MaxGroup int
}

// DefaultMatchOptions returns the standard windows: 5 days for singles,
// 7 days and up to 3 lines for groups.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{WindowDays: 5, GroupWindowDays: 7, MaxGroup: 3}
}

// amountKey buckets amounts by their rounded-to-cent representation.
func amountKey(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// withinWindow accepts dateless details at any distance.
func withinWindow(parent time.Time, d model.AmazonDetail, days int) bool {
	if !d.HasDate() {
		return true
	}
	return daysApart(d.DetailDate, parent) <= days
}

// Match pairs parents with single detail rows: parents are visited in
// input order, each scanning its exact-amount bucket for the first
// unconsumed candidate within the date window. First fit wins; no global
// optimum is attempted. Every detail is consumed at most once.
func Match(parents []model.AmazonParent, details []model.AmazonDetail, windowDays int) model.MatchResult {
	used := make([]bool, len(details))
	singles, matched := matchSingles(parents, details, windowDays, used)

	res := model.MatchResult{Singles: singles}
	for i, p := range parents {
		if !matched[i] {
			res.UnmatchedParents = append(res.UnmatchedParents, p)
		}
	}
	res.UnmatchedDetails = unusedDetails(details, used)
	return res
}

// MatchWithGrouping runs the single pass first, then tries to cover each
// remaining parent with a combination of detail rows summing exactly to
// the parent amount within the wider window (split shipments).
func MatchWithGrouping(parents []model.AmazonParent, details []model.AmazonDetail, opts MatchOptions) model.MatchResult {
	used := make([]bool, len(details))
	singles, matched := matchSingles(parents, details, opts.WindowDays, used)

	res := model.MatchResult{Singles: singles}
	for i, p := range parents {
		if matched[i] {
			continue
		}
		if opts.MaxGroup >= 2 {
			if combo := findGroup(p, details, used, opts); len(combo) > 0 {
				group := model.GroupMatch{Parent: p}
				for _, di := range combo {
					used[di] = true
					group.Details = append(group.Details, details[di])
				}
				res.Groups = append(res.Groups, group)
				continue
			}
		}
		res.UnmatchedParents = append(res.UnmatchedParents, p)
	}
	res.UnmatchedDetails = unusedDetails(details, used)
	return res
}

func matchSingles(parents []model.AmazonParent, details []model.AmazonDetail, windowDays int, used []bool) ([]model.SingleMatch, []bool) {
	byAmount := make(map[string][]int)
	for i, d := range details {
		k := amountKey(d.Amount)
		byAmount[k] = append(byAmount[k], i)
	}

	var singles []model.SingleMatch
	matched := make([]bool, len(parents))
	for pi, p := range parents {
		for _, di := range byAmount[amountKey(p.Amount)] {
			if used[di] {
				continue
			}
			if !withinWindow(p.PostedDate, details[di], windowDays) {
				continue
			}
			used[di] = true
			matched[pi] = true
			singles = append(singles, model.SingleMatch{Parent: p, Detail: details[di]})
			break
		}
	}
	return singles, matched
}

// findGroup searches for up to MaxGroup unconsumed details whose rounded
// amounts sum exactly to the parent's. Candidates keep input order and the
// search is depth-first over increasing indexes, so the first exact
// combination in row order wins, mirroring the single matcher's first-fit
// policy.
func findGroup(p model.AmazonParent, details []model.AmazonDetail, used []bool, opts MatchOptions) []int {
	target := cents(p.Amount)
	var candidates []int
	for i, d := range details {
		if used[i] {
			continue
		}
		if !withinWindow(p.PostedDate, d, opts.GroupWindowDays) {
			continue
		}
		if c := cents(d.Amount); c > 0 && c <= target {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < 2 {
		return nil
	}

	var pick func(start int, remaining int64, chosen []int) []int
	pick = func(start int, remaining int64, chosen []int) []int {
		for ci := start; ci < len(candidates); ci++ {
			di := candidates[ci]
			c := cents(details[di].Amount)
			if c > remaining {
				continue
			}
			next := append(chosen, di)
			if c == remaining {
				if len(next) >= 2 {
					return next
				}
				continue
			}
			if len(next) < opts.MaxGroup {
				if found := pick(ci+1, remaining-c, next); found != nil {
					return found
				}
			}
		}
		return nil
	}
	found := pick(0, target, nil)
	if found == nil {
		return nil
	}
	out := make([]int, len(found))
	copy(out, found)
	return out
}

func cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func unusedDetails(details []model.AmazonDetail, used []bool) []model.AmazonDetail {
	var out []model.AmazonDetail
	for i, d := range details {
		if !used[i] {
			out = append(out, d)
		}
	}
	return out
}
