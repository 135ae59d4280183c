package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/report"
)

func TestRenderHTML(t *testing.T) {
	lots := map[string]models.LotRate{
		"GOLD": {LotSize: decimal.NewFromInt(100), RatePerLot: decimal.NewFromInt(40)},
	}
	buy := models.NewTrade()
	buy.Quantity = "200"
	buy.Price = "62000"
	buy.Symbol = "GOLD"
	buy.Exchange = models.ExchangeMCX
	buy.Recalc()
	sell := buy
	sell.Action = models.ActionSell
	sell.Price = "63000"
	sell.Recalc()

	groups := report.Build([]models.Trade{buy, sell}, decimal.NewFromInt(3000), lots)

	var sb strings.Builder
	require.NoError(t, RenderHTML(&sb, groups))
	out := sb.String()

	assert.Contains(t, out, "<td>GOLD</td>")
	assert.Contains(t, out, "<td>MCX</td>")
	// per-group brokerage and the grand-total row carry the same fold
	assert.Contains(t, out, "<td>160.00</td>")
	assert.Contains(t, out, "200000.00")
	assert.Contains(t, out, "199840.00")
}

func TestRenderHTMLEmptyReport(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RenderHTML(&sb, nil))
	out := sb.String()
	assert.Contains(t, out, "Trade Summary")
	// grand totals fold to zero on an empty report
	assert.Contains(t, out, "<td>0.00</td>")
}

func TestRenderHTMLEscapesSymbols(t *testing.T) {
	tr := models.NewTrade()
	tr.Symbol = "<script>alert(1)</script>"
	tr.Recalc()
	groups := report.Build([]models.Trade{tr}, decimal.Zero, nil)

	var sb strings.Builder
	require.NoError(t, RenderHTML(&sb, groups))
	assert.NotContains(t, sb.String(), "<SCRIPT>")
	assert.Contains(t, sb.String(), "&lt;SCRIPT&gt;")
}
