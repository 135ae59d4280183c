package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
)

var (
	// ErrTradeNotFound indicates the referenced trade does not exist.
	ErrTradeNotFound = fmt.Errorf("trade not found")
	// ErrLotRateNotFound indicates the symbol has no lot-schedule entry.
	ErrLotRateNotFound = fmt.Errorf("lot rate not found")
)

// TradeRepository holds the current trade list and rate configuration on
// behalf of the data-entry layer. ListTrades must preserve entry order; the
// lot schedule has map semantics (last registration per symbol wins).
type TradeRepository interface {
	ListTrades(ctx context.Context) ([]models.Trade, error)
	AddTrade(ctx context.Context, trade models.Trade) error
	UpdateTrade(ctx context.Context, trade models.Trade) error
	DeleteTrade(ctx context.Context, id string) error

	GetRates(ctx context.Context) (models.RateConfig, error)
	SetFlatRate(ctx context.Context, rate decimal.Decimal) error
	UpsertLotRate(ctx context.Context, symbol string, rate models.LotRate) error
	DeleteLotRate(ctx context.Context, symbol string) error
}
