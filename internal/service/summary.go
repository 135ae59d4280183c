package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/report"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository"
)

var (
	ErrValidation    = errors.New("validation_error")
	ErrTradeNotFound = repository.ErrTradeNotFound
)

// SummaryService is the data-entry side of the system: it owns trade CRUD
// and rate configuration, and rebuilds the whole report from the current
// list on every request.
type SummaryService struct {
	repo   repository.TradeRepository
	now    func() time.Time
	logger *logrus.Entry
}

func NewSummaryService(repo repository.TradeRepository, logger *logrus.Logger) *SummaryService {
	return &SummaryService{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.WithField("component", "summary-service"),
	}
}

// TradeInput is the DTO consumed for trade creation and updates. Quantity
// and price stay raw strings; data entry is allowed to leave them blank or
// half-typed and the engine coerces later.
type TradeInput struct {
	Action   string
	Quantity string
	Price    string
	Symbol   string
	Kind     string
	Exchange string
}

// CreateTrade applies the data-entry defaults (BUY, NORMAL, NSE), derives
// the volume and stores the trade at the end of the list.
func (s *SummaryService) CreateTrade(ctx context.Context, input TradeInput) (*models.Trade, error) {
	trade := models.NewTrade()
	trade.ID = uuid.NewString()
	trade.CreatedAt = s.now()
	if err := applyInput(&trade, input); err != nil {
		return nil, err
	}
	if err := s.repo.AddTrade(ctx, trade); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"trade": trade.ID, "symbol": trade.Symbol}).Debug("trade created")
	return &trade, nil
}

// UpdateTrade overwrites the editable fields of an existing trade and
// recomputes its volume.
func (s *SummaryService) UpdateTrade(ctx context.Context, id string, input TradeInput) (*models.Trade, error) {
	trades, err := s.repo.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range trades {
		if t.ID != id {
			continue
		}
		if err := applyInput(&t, input); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateTrade(ctx, t); err != nil {
			return nil, err
		}
		return &t, nil
	}
	return nil, ErrTradeNotFound
}

func (s *SummaryService) DeleteTrade(ctx context.Context, id string) error {
	return s.repo.DeleteTrade(ctx, id)
}

func (s *SummaryService) ListTrades(ctx context.Context) ([]models.Trade, error) {
	return s.repo.ListTrades(ctx)
}

// SetFlatRate updates the flat-rate schedule. The rate is quoted per ten
// million of volume and may not be negative.
func (s *SummaryService) SetFlatRate(ctx context.Context, rate decimal.Decimal) error {
	if rate.Sign() < 0 {
		return fmt.Errorf("%w: flat rate cannot be negative", ErrValidation)
	}
	return s.repo.SetFlatRate(ctx, rate)
}

// SetLotRate registers or replaces a lot-schedule entry. Lot size must be
// strictly positive: the calculator divides by it without a guard, so
// rejecting bad entries here is what keeps that safe.
func (s *SummaryService) SetLotRate(ctx context.Context, symbol string, rate models.LotRate) error {
	if models.NormalizeSymbol(symbol) == "" {
		return fmt.Errorf("%w: symbol is required", ErrValidation)
	}
	if rate.LotSize.Sign() <= 0 {
		return fmt.Errorf("%w: lot size must be positive", ErrValidation)
	}
	if rate.RatePerLot.Sign() < 0 {
		return fmt.Errorf("%w: rate per lot cannot be negative", ErrValidation)
	}
	return s.repo.UpsertLotRate(ctx, symbol, rate)
}

func (s *SummaryService) RemoveLotRate(ctx context.Context, symbol string) error {
	return s.repo.DeleteLotRate(ctx, symbol)
}

func (s *SummaryService) GetRates(ctx context.Context) (models.RateConfig, error) {
	return s.repo.GetRates(ctx)
}

// BuildSummary re-derives the full report from the current trade list and
// rate configuration. There is no incremental path: every call recomputes
// every group.
func (s *SummaryService) BuildSummary(ctx context.Context) ([]report.Group, error) {
	trades, err := s.repo.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := s.repo.GetRates(ctx)
	if err != nil {
		return nil, err
	}
	groups := report.Build(trades, rates.FlatRate, rates.Lots)
	s.logger.WithFields(logrus.Fields{"trades": len(trades), "groups": len(groups)}).Debug("summary rebuilt")
	return groups, nil
}

func applyInput(trade *models.Trade, input TradeInput) error {
	if input.Action != "" {
		switch models.Action(input.Action) {
		case models.ActionBuy, models.ActionSell:
			trade.Action = models.Action(input.Action)
		default:
			return fmt.Errorf("%w: action must be BUY or SELL", ErrValidation)
		}
	}
	if input.Kind != "" {
		switch models.Kind(input.Kind) {
		case models.KindNormal, models.KindForward:
			trade.Kind = models.Kind(input.Kind)
		default:
			return fmt.Errorf("%w: kind must be NORMAL or FORWARD", ErrValidation)
		}
	}
	if input.Exchange != "" {
		switch models.Exchange(input.Exchange) {
		case models.ExchangeNSE, models.ExchangeMCX:
			trade.Exchange = models.Exchange(input.Exchange)
		default:
			return fmt.Errorf("%w: exchange must be NSE or MCX", ErrValidation)
		}
	}
	trade.Quantity = input.Quantity
	trade.Price = input.Price
	trade.Symbol = input.Symbol
	trade.Recalc()
	return nil
}
