package export

import (
	"html/template"
	"io"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/report"
)

// RenderHTML writes a static summary document for the given report. It
// consumes the report groups as-is; the only value it derives itself is the
// grand total, via the same fold the JSON view uses.
func RenderHTML(w io.Writer, groups []report.Group) error {
	data := struct {
		Groups []report.Group
		Totals report.Totals
	}{
		Groups: groups,
		Totals: report.GrandTotals(groups),
	}
	return summaryTmpl.Execute(w, data)
}

var summaryTmpl = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Trade Summary</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1.5em; }
th, td { border: 1px solid #999; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tfoot td { font-weight: bold; }
</style>
</head>
<body>
<h1>Trade Summary</h1>
<table>
<thead>
<tr><th>Script</th><th>Exchange</th><th>Buy Volume</th><th>Sell Volume</th><th>Brokerage</th><th>Gross P&amp;L</th><th>Net P&amp;L</th></tr>
</thead>
<tbody>
{{- range .Groups}}
<tr>
<td>{{.Symbol}}</td>
<td>{{.Exchange}}</td>
<td>{{.BuyVolume.StringFixed 2}}</td>
<td>{{.SellVolume.StringFixed 2}}</td>
<td>{{.TotalBrokerage.StringFixed 2}}</td>
<td>{{.GrossPNL.StringFixed 2}}</td>
<td>{{.NetPNL.StringFixed 2}}</td>
</tr>
{{- end}}
</tbody>
<tfoot>
<tr><td colspan="4">Total</td><td>{{.Totals.Brokerage.StringFixed 2}}</td><td>{{.Totals.Gross.StringFixed 2}}</td><td>{{.Totals.Net.StringFixed 2}}</td></tr>
</tfoot>
</table>
</body>
</html>
`))
