package report

import (
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/model"
)

var htmlFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "£" + d.StringFixed(2) },
	"pct":   func(d decimal.Decimal) string { return d.StringFixed(1) + "%" },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("2006-01-02")
	},
}

var htmlTmpl = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Amazon Matching {{.Summary.Year}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:24px;line-height:1.4;}
h1,h2{margin:0 0 12px}
.card{border:1px solid #ddd;border-radius:12px;padding:16px;margin:16px 0}
.kpi{display:flex;gap:16px;flex-wrap:wrap}
.kpi .box{padding:12px 16px;border-radius:10px;background:#f7f7f9;border:1px solid #eee;min-width:180px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #eee;padding:8px 10px;text-align:left;font-size:13px;vertical-align:top}
th{background:#fafafa}
</style>
</head>
<body>
<h1>Amazon Matching — {{.Summary.Year}}</h1>
<div class="card kpi">
  <div class="box"><b>Parents (card):</b><br/>{{.Summary.Parents}} • {{money .Summary.ParentSum}}</div>
  <div class="box"><b>Matched parents:</b><br/>{{.Summary.Matched}} • {{money .Summary.MatchedSum}} ({{pct .Summary.CoveragePct}})</div>
  <div class="box"><b>Singles vs Groups:</b><br/>{{.Summary.Singles}} singles • {{.Summary.Groups}} groups</div>
</div>

<div class="card">
<h2>Monthly Coverage</h2>
<table>
<thead><tr><th>Month</th><th>#Parents</th><th>£Parents</th><th>#Matched</th><th>£Matched</th><th>Coverage</th></tr></thead>
<tbody>
{{range .Summary.Monthly}}<tr><td>{{.Month}}</td><td>{{.Parents}}</td><td>{{money .ParentSum}}</td><td>{{.Matched}}</td><td>{{money .MatchedSum}}</td><td>{{pct .CoveragePct}}</td></tr>
{{end}}</tbody>
</table>
</div>

<div class="card">
<h2>Single Matches</h2>
<table>
<thead><tr><th>Posted</th><th>£Parent</th><th>Merchant</th><th>Detail Date</th><th>£Detail</th><th>Detail Sheet</th></tr></thead>
<tbody>
{{range .Result.Singles}}<tr><td>{{date .Parent.PostedDate}}</td><td>{{money .Parent.Amount}}</td><td>{{.Parent.Merchant}}</td><td>{{date .Detail.DetailDate}}</td><td>{{money .Detail.Amount}}</td><td>{{.Detail.Sheet}}</td></tr>
{{end}}</tbody>
</table>
</div>

<div class="card">
<h2>Group Matches</h2>
<table>
<thead><tr><th>Posted</th><th>£Parent</th><th>Merchant</th><th>Details</th></tr></thead>
<tbody>
{{range .Result.Groups}}<tr><td>{{date .Parent.PostedDate}}</td><td>{{money .Parent.Amount}}</td><td>{{.Parent.Merchant}}</td><td>{{range .Details}}{{date .DetailDate}} {{money .Amount}} ({{.Sheet}})<br/>{{end}}</td></tr>
{{end}}</tbody>
</table>
</div>

<div class="card">
<h2>Unmatched Parents</h2>
<table>
<thead><tr><th>Posted</th><th>£Amount</th><th>Merchant</th></tr></thead>
<tbody>
{{range .Result.UnmatchedParents}}<tr><td>{{date .PostedDate}}</td><td>{{money .Amount}}</td><td>{{.Merchant}}</td></tr>
{{end}}</tbody>
</table>
</div>

<div class="card">
<h2>Unmatched Details</h2>
<table>
<thead><tr><th>Detail Date</th><th>£Amount</th><th>Sheet</th></tr></thead>
<tbody>
{{range .Result.UnmatchedDetails}}<tr><td>{{date .DetailDate}}</td><td>{{money .Amount}}</td><td>{{.Sheet}}</td></tr>
{{end}}</tbody>
</table>
</div>
</body>
</html>
`))

// RenderHTML writes the full match report as a standalone HTML page.
func RenderHTML(w io.Writer, s Summary, res model.MatchResult) error {
	return htmlTmpl.Execute(w, struct {
		Summary Summary
		Result  model.MatchResult
	}{s, res})
}
