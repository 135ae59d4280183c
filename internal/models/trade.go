package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Action is the side of a trade.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Kind distinguishes regular trades from forward trades, which are exempt
// from brokerage.
type Kind string

const (
	KindNormal  Kind = "NORMAL"
	KindForward Kind = "FORWARD"
)

// Exchange selects the rate regime applied to a trade.
type Exchange string

const (
	// ExchangeNSE trades are charged a flat rate proportional to volume.
	ExchangeNSE Exchange = "NSE"
	// ExchangeMCX trades are charged per lot from the lot schedule.
	ExchangeMCX Exchange = "MCX"
)

// Trade is a single buy or sell execution as captured by data entry.
// Quantity and Price are kept as the raw entered strings; a blank or
// unparseable value counts as zero wherever arithmetic needs it.
type Trade struct {
	ID        string              `json:"id"`
	Action    Action              `json:"action"`
	Quantity  string              `json:"quantity"`
	Price     string              `json:"price"`
	Volume    decimal.NullDecimal `json:"volume"`
	Symbol    string              `json:"symbol"`
	Kind      Kind                `json:"kind"`
	Exchange  Exchange            `json:"exchange"`
	CreatedAt time.Time           `json:"createdAt"`
}

// NewTrade returns a trade with the data-entry defaults applied.
func NewTrade() Trade {
	return Trade{
		Action:   ActionBuy,
		Kind:     KindNormal,
		Exchange: ExchangeNSE,
	}
}

// Recalc re-derives Volume from Quantity and Price. Volume is only defined
// when both fields parse; otherwise it is left null rather than zero.
func (t *Trade) Recalc() {
	qty, qtyOK := parseDecimal(t.Quantity)
	price, priceOK := parseDecimal(t.Price)
	if qtyOK && priceOK {
		t.Volume = decimal.NewNullDecimal(qty.Mul(price))
		return
	}
	t.Volume = decimal.NullDecimal{}
}

// VolumeOrZero reads the derived volume with the standard zero coercion.
func (t Trade) VolumeOrZero() decimal.Decimal {
	if t.Volume.Valid {
		return t.Volume.Decimal
	}
	return decimal.Zero
}

// LotRate is one lot-schedule entry: the instrument's lot size and the
// brokerage charged per lot.
type LotRate struct {
	LotSize    decimal.Decimal `json:"lotSize"`
	RatePerLot decimal.Decimal `json:"ratePerLot"`
}

// RateConfig holds both rate schedules. Lots is keyed by uppercased symbol;
// registering a symbol twice keeps the latest entry.
type RateConfig struct {
	FlatRate decimal.Decimal    `json:"flatRate"`
	Lots     map[string]LotRate `json:"lots"`
}

// NormalizeSymbol uppercases and trims a script symbol so that schedule
// lookups and report grouping are case-insensitive.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ParseOrZero coerces a data-entry numeric string to a decimal, treating
// blank or malformed input as zero. This is the single coercion point for
// every numeric field the engine reads.
func ParseOrZero(s string) decimal.Decimal {
	d, ok := parseDecimal(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
