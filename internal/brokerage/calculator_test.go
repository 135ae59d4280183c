package brokerage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
)

func lotSchedule(entries map[string][2]int64) map[string]models.LotRate {
	lots := make(map[string]models.LotRate, len(entries))
	for sym, pair := range entries {
		lots[sym] = models.LotRate{
			LotSize:    decimal.NewFromInt(pair[0]),
			RatePerLot: decimal.NewFromInt(pair[1]),
		}
	}
	return lots
}

func newTrade(qty, price, symbol string, exchange models.Exchange) models.Trade {
	t := models.NewTrade()
	t.Quantity = qty
	t.Price = price
	t.Symbol = symbol
	t.Exchange = exchange
	t.Recalc()
	return t
}

func TestCalculate(t *testing.T) {
	flatRate := decimal.NewFromInt(3000)
	lots := lotSchedule(map[string][2]int64{
		"GOLD":     {100, 40},
		"CRUDEOIL": {100, 25},
	})

	tests := []struct {
		name  string
		trade func() models.Trade
		want  string
	}{
		{
			name: "flat rate NSE trade",
			// volume 500000 at rate 3000 per crore: 500000 * 3000 / 1e7
			trade: func() models.Trade { return newTrade("500", "1000", "RELIANCE", models.ExchangeNSE) },
			want:  "150",
		},
		{
			name:  "lot based trade from schedule",
			trade: func() models.Trade { return newTrade("200", "62000", "GOLD", models.ExchangeMCX) },
			want:  "80",
		},
		{
			name: "schedule entry wins even on NSE",
			// a configured symbol selects lot pricing regardless of the exchange flag
			trade: func() models.Trade { return newTrade("200", "62000", "GOLD", models.ExchangeNSE) },
			want:  "80",
		},
		{
			name:  "symbol match is case insensitive",
			trade: func() models.Trade { return newTrade("200", "62000", "gold", models.ExchangeMCX) },
			want:  "80",
		},
		{
			name: "unconfigured MCX symbol falls back to defaults",
			// lot size 1, rate 40 per lot
			trade: func() models.Trade { return newTrade("10", "5200", "SILVERMIC", models.ExchangeMCX) },
			want:  "400",
		},
		{
			name: "forward trade is exempt",
			trade: func() models.Trade {
				tr := newTrade("200", "62000", "GOLD", models.ExchangeMCX)
				tr.Kind = models.KindForward
				return tr
			},
			want: "0",
		},
		{
			name:  "unparseable quantity coerces to zero on MCX",
			trade: func() models.Trade { return newTrade("abc", "5200", "SILVERMIC", models.ExchangeMCX) },
			want:  "0",
		},
		{
			name:  "missing price leaves volume undefined so flat brokerage is zero",
			trade: func() models.Trade { return newTrade("500", "", "RELIANCE", models.ExchangeNSE) },
			want:  "0",
		},
		{
			name:  "fractional quantity on lot pricing",
			trade: func() models.Trade { return newTrade("50", "62000", "GOLD", models.ExchangeMCX) },
			want:  "20",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.trade(), flatRate, lots)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"want %s, got %s", tc.want, got.String())
		})
	}
}

func TestCalculateForwardIgnoresEverythingElse(t *testing.T) {
	lots := lotSchedule(map[string][2]int64{"GOLD": {100, 40}})
	for _, exchange := range []models.Exchange{models.ExchangeNSE, models.ExchangeMCX} {
		tr := newTrade("1000", "99999", "GOLD", exchange)
		tr.Kind = models.KindForward
		got := Calculate(tr, decimal.NewFromInt(3000), lots)
		assert.True(t, got.IsZero(), "forward trade on %s must be free, got %s", exchange, got)
	}
}

func TestCalculateNeverNegativeForValidInput(t *testing.T) {
	lots := lotSchedule(map[string][2]int64{"GOLD": {100, 40}})
	trades := []models.Trade{
		newTrade("0", "0", "GOLD", models.ExchangeMCX),
		newTrade("", "", "", models.ExchangeNSE),
		newTrade("100", "250", "TCS", models.ExchangeNSE),
	}
	for _, tr := range trades {
		got := Calculate(tr, decimal.NewFromInt(3000), lots)
		assert.False(t, got.IsNegative(), "brokerage must be >= 0, got %s", got)
	}
}
