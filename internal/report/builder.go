package report

import (
	"github.com/shopspring/decimal"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/brokerage"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
)

// UnknownSymbol groups trades entered without a script symbol.
const UnknownSymbol = "UNKNOWN"

// Group is the per-script aggregation unit of the summary report.
type Group struct {
	Symbol         string          `json:"symbol"`
	Exchange       models.Exchange `json:"exchange"`
	Buys           []models.Trade  `json:"buys"`
	Sells          []models.Trade  `json:"sells"`
	BuyVolume      decimal.Decimal `json:"buyVolume"`
	SellVolume     decimal.Decimal `json:"sellVolume"`
	BuyBrokerage   decimal.Decimal `json:"buyBrokerage"`
	SellBrokerage  decimal.Decimal `json:"sellBrokerage"`
	TotalBrokerage decimal.Decimal `json:"totalBrokerage"`
	GrossPNL       decimal.Decimal `json:"grossPnl"`
	NetPNL         decimal.Decimal `json:"netPnl"`
}

// Totals is the grand-total fold over a report. It is never stored on the
// report itself; every view that needs it calls GrandTotals so the numbers
// cannot drift between surfaces.
type Totals struct {
	Gross     decimal.Decimal `json:"gross"`
	Brokerage decimal.Decimal `json:"brokerage"`
	Net       decimal.Decimal `json:"net"`
}

// Build partitions trades by script and derives every per-group aggregate.
// Groups appear in first-seen-symbol order. The whole report is rebuilt from
// scratch on every call; nothing is carried across invocations.
func Build(trades []models.Trade, flatRate decimal.Decimal, lots map[string]models.LotRate) []Group {
	var order []*Group
	index := make(map[string]*Group)

	for _, t := range trades {
		sym := models.NormalizeSymbol(t.Symbol)
		if sym == "" {
			sym = UnknownSymbol
		}
		g, ok := index[sym]
		if !ok {
			g = &Group{Symbol: sym}
			index[sym] = g
			order = append(order, g)
		}
		// Last trade filed under the script decides the reported exchange.
		g.Exchange = t.Exchange
		if t.Action == models.ActionSell {
			g.Sells = append(g.Sells, t)
		} else {
			g.Buys = append(g.Buys, t)
		}
	}

	out := make([]Group, 0, len(order))
	for _, g := range order {
		for _, t := range g.Buys {
			g.BuyVolume = g.BuyVolume.Add(t.VolumeOrZero())
			g.BuyBrokerage = g.BuyBrokerage.Add(brokerage.Calculate(t, flatRate, lots))
		}
		for _, t := range g.Sells {
			g.SellVolume = g.SellVolume.Add(t.VolumeOrZero())
			g.SellBrokerage = g.SellBrokerage.Add(brokerage.Calculate(t, flatRate, lots))
		}
		g.TotalBrokerage = g.BuyBrokerage.Add(g.SellBrokerage)
		g.GrossPNL = g.SellVolume.Sub(g.BuyVolume)
		g.NetPNL = g.GrossPNL.Sub(g.TotalBrokerage)
		out = append(out, *g)
	}
	return out
}

// GrandTotals folds the per-group aggregates into report-wide totals.
func GrandTotals(groups []Group) Totals {
	var t Totals
	for _, g := range groups {
		t.Gross = t.Gross.Add(g.GrossPNL)
		t.Brokerage = t.Brokerage.Add(g.TotalBrokerage)
		t.Net = t.Net.Add(g.NetPNL)
	}
	return t
}
