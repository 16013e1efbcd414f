package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"tally/internal/model"
)

// RenderCSV writes one row per parent with its match outcome, followed by
// the unmatched detail rows. Machine-readable counterpart of the HTML
// report.
func RenderCSV(w io.Writer, res model.MatchResult) error {
	cw := csv.NewWriter(w)
	header := []string{"kind", "posted_date", "parent_amount", "merchant", "detail_date", "detail_amount", "detail_sheet", "detail_row"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range res.Singles {
		if err := cw.Write([]string{
			"single",
			mdDate(m.Parent.PostedDate),
			m.Parent.Amount.StringFixed(2),
			m.Parent.Merchant,
			mdDate(m.Detail.DetailDate),
			m.Detail.Amount.StringFixed(2),
			m.Detail.Sheet,
			strconv.Itoa(m.Detail.RowIndex),
		}); err != nil {
			return err
		}
	}
	for _, g := range res.Groups {
		for _, d := range g.Details {
			if err := cw.Write([]string{
				"group",
				mdDate(g.Parent.PostedDate),
				g.Parent.Amount.StringFixed(2),
				g.Parent.Merchant,
				mdDate(d.DetailDate),
				d.Amount.StringFixed(2),
				d.Sheet,
				strconv.Itoa(d.RowIndex),
			}); err != nil {
				return err
			}
		}
	}
	for _, u := range res.UnmatchedParents {
		if err := cw.Write([]string{
			"unmatched_parent",
			mdDate(u.PostedDate),
			u.Amount.StringFixed(2),
			u.Merchant,
			"", "", "", "",
		}); err != nil {
			return err
		}
	}
	for _, d := range res.UnmatchedDetails {
		if err := cw.Write([]string{
			"unmatched_detail",
			"", "", "",
			mdDate(d.DetailDate),
			d.Amount.StringFixed(2),
			d.Sheet,
			strconv.Itoa(d.RowIndex),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
