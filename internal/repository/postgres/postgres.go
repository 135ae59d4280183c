package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository"

	_ "github.com/lib/pq"
)

// Repository implements TradeRepository backed by PostgreSQL. Quantity and
// price are stored as the raw entered strings; volume is derived on read so
// it can never disagree with its inputs.
//
// Expected schema:
//
//	CREATE TABLE trades (
//	    id         TEXT PRIMARY KEY,
//	    position   BIGSERIAL,
//	    action     TEXT NOT NULL,
//	    quantity   TEXT NOT NULL DEFAULT '',
//	    price      TEXT NOT NULL DEFAULT '',
//	    symbol     TEXT NOT NULL DEFAULT '',
//	    kind       TEXT NOT NULL,
//	    exchange   TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE TABLE flat_rate (id INT PRIMARY KEY CHECK (id = 1), rate NUMERIC NOT NULL);
//	CREATE TABLE lot_rates (symbol TEXT PRIMARY KEY, lot_size NUMERIC NOT NULL, rate_per_lot NUMERIC NOT NULL);
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListTrades(ctx context.Context) ([]models.Trade, error) {
	const query = `
		SELECT id, action, quantity, price, symbol, kind, exchange, created_at
		FROM trades
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

func (r *Repository) AddTrade(ctx context.Context, trade models.Trade) error {
	const query = `
		INSERT INTO trades (id, action, quantity, price, symbol, kind, exchange, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.db.ExecContext(ctx, query,
		trade.ID, string(trade.Action), trade.Quantity, trade.Price, trade.Symbol,
		string(trade.Kind), string(trade.Exchange), trade.CreatedAt)
	return err
}

func (r *Repository) UpdateTrade(ctx context.Context, trade models.Trade) error {
	const query = `
		UPDATE trades
		SET action = $2, quantity = $3, price = $4, symbol = $5, kind = $6, exchange = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		trade.ID, string(trade.Action), trade.Quantity, trade.Price, trade.Symbol,
		string(trade.Kind), string(trade.Exchange))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repository) DeleteTrade(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repository) GetRates(ctx context.Context) (models.RateConfig, error) {
	cfg := models.RateConfig{Lots: make(map[string]models.LotRate)}

	row := r.db.QueryRowContext(ctx, `SELECT rate FROM flat_rate WHERE id = 1`)
	if err := row.Scan(&cfg.FlatRate); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return cfg, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT symbol, lot_size, rate_per_lot FROM lot_rates`)
	if err != nil {
		return cfg, err
	}
	defer rows.Close()
	for rows.Next() {
		var symbol string
		var lr models.LotRate
		if err := rows.Scan(&symbol, &lr.LotSize, &lr.RatePerLot); err != nil {
			return cfg, err
		}
		cfg.Lots[models.NormalizeSymbol(symbol)] = lr
	}
	return cfg, rows.Err()
}

func (r *Repository) SetFlatRate(ctx context.Context, rate decimal.Decimal) error {
	const query = `
		INSERT INTO flat_rate (id, rate) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET rate = EXCLUDED.rate
	`
	_, err := r.db.ExecContext(ctx, query, rate)
	return err
}

func (r *Repository) UpsertLotRate(ctx context.Context, symbol string, rate models.LotRate) error {
	const query = `
		INSERT INTO lot_rates (symbol, lot_size, rate_per_lot) VALUES ($1,$2,$3)
		ON CONFLICT (symbol) DO UPDATE SET lot_size = EXCLUDED.lot_size, rate_per_lot = EXCLUDED.rate_per_lot
	`
	_, err := r.db.ExecContext(ctx, query, models.NormalizeSymbol(symbol), rate.LotSize, rate.RatePerLot)
	return err
}

func (r *Repository) DeleteLotRate(ctx context.Context, symbol string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lot_rates WHERE symbol = $1`, models.NormalizeSymbol(symbol))
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return repository.ErrLotRateNotFound
	}
	return nil
}

func scanTrades(rows *sql.Rows) ([]models.Trade, error) {
	out := []models.Trade{}
	for rows.Next() {
		var t models.Trade
		var action, kind, exchange string
		if err := rows.Scan(&t.ID, &action, &t.Quantity, &t.Price, &t.Symbol, &kind, &exchange, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Action = models.Action(action)
		t.Kind = models.Kind(kind)
		t.Exchange = models.Exchange(exchange)
		t.Recalc()
		out = append(out, t)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrTradeNotFound
	}
	return nil
}
