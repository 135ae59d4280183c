package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository"
)

// InMemoryRepo keeps the trade list and rate configuration in process
// memory. It is the default store; everything resets on restart.
type InMemoryRepo struct {
	mu       sync.RWMutex
	trades   []models.Trade
	flatRate decimal.Decimal
	lots     map[string]models.LotRate
}

func New() *InMemoryRepo {
	return &InMemoryRepo{
		trades: []models.Trade{},
		lots:   make(map[string]models.LotRate),
	}
}

func (r *InMemoryRepo) ListTrades(ctx context.Context) ([]models.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Trade(nil), r.trades...), nil
}

func (r *InMemoryRepo) AddTrade(ctx context.Context, trade models.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trades = append(r.trades, trade)
	return nil
}

func (r *InMemoryRepo) UpdateTrade(ctx context.Context, trade models.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.trades {
		if t.ID == trade.ID {
			r.trades[i] = trade
			return nil
		}
	}
	return repository.ErrTradeNotFound
}

func (r *InMemoryRepo) DeleteTrade(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.trades {
		if t.ID == id {
			r.trades = append(r.trades[:i], r.trades[i+1:]...)
			return nil
		}
	}
	return repository.ErrTradeNotFound
}

func (r *InMemoryRepo) GetRates(ctx context.Context) (models.RateConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lots := make(map[string]models.LotRate, len(r.lots))
	for sym, lr := range r.lots {
		lots[sym] = lr
	}
	return models.RateConfig{FlatRate: r.flatRate, Lots: lots}, nil
}

func (r *InMemoryRepo) SetFlatRate(ctx context.Context, rate decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flatRate = rate
	return nil
}

func (r *InMemoryRepo) UpsertLotRate(ctx context.Context, symbol string, rate models.LotRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots[models.NormalizeSymbol(symbol)] = rate
	return nil
}

func (r *InMemoryRepo) DeleteLotRate(ctx context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.NormalizeSymbol(symbol)
	if _, ok := r.lots[key]; !ok {
		return repository.ErrLotRateNotFound
	}
	delete(r.lots, key)
	return nil
}
