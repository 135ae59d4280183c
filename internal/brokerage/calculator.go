package brokerage

import (
	"github.com/shopspring/decimal"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
)

// Defaults applied when a trade is flagged for the lot-based exchange but
// carries no lot-schedule entry. An unconfigured MCX script still gets a
// nonzero charge instead of silently slipping through.
var (
	defaultLotSize    = decimal.NewFromInt(1)
	defaultRatePerLot = decimal.NewFromInt(40)

	// The flat rate is quoted per ten million of traded volume.
	flatRateDivisor = decimal.NewFromInt(10_000_000)
)

// Calculate returns the brokerage owed for one trade.
//
// Precedence: FORWARD trades are always free. A lot-schedule entry for the
// trade's symbol, or the MCX exchange flag, selects lot pricing
// (quantity / lot size * rate per lot, with the defaults above when MCX has
// no entry). Everything else is charged flat: volume * flatRate / 1e7.
//
// Lot sizes are validated to be positive at configuration time; no
// division guard here.
func Calculate(t models.Trade, flatRate decimal.Decimal, lots map[string]models.LotRate) decimal.Decimal {
	if t.Kind == models.KindForward {
		return decimal.Zero
	}

	qty := models.ParseOrZero(t.Quantity)
	volume := t.VolumeOrZero()

	entry, ok := lots[models.NormalizeSymbol(t.Symbol)]
	if ok || t.Exchange == models.ExchangeMCX {
		if !ok {
			entry = models.LotRate{LotSize: defaultLotSize, RatePerLot: defaultRatePerLot}
		}
		return qty.Div(entry.LotSize).Mul(entry.RatePerLot)
	}
	return volume.Mul(flatRate).Div(flatRateDivisor)
}
