package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implements SettingsRepository over PostgreSQL (pool or tx).
// Settings live in a single row with id = 1.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get returns the settings row. A missing row yields defaults so a fresh
// database behaves sanely before the first save.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	query := `
		SELECT id, business_name, currency, COALESCE(default_warehouse_id, ''),
		       default_tax_rate, low_stock_alert, show_cost_price, allow_negative_stock, updated_at
		FROM settings WHERE id = 1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, query).Scan(
		&s.ID, &s.BusinessName, &s.Currency, &s.DefaultWarehouseID,
		&s.DefaultTaxRate, &s.LowStockAlert, &s.ShowCostPrice, &s.AllowNegativeStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Settings{ID: 1, Currency: "SAR", DefaultTaxRate: decimal.Zero, LowStockAlert: true}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Update upserts the single settings row.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.Settings) error {
	query := `
		INSERT INTO settings
			(id, business_name, currency, default_warehouse_id, default_tax_rate,
			 low_stock_alert, show_cost_price, allow_negative_stock, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			currency = EXCLUDED.currency,
			default_warehouse_id = EXCLUDED.default_warehouse_id,
			default_tax_rate = EXCLUDED.default_tax_rate,
			low_stock_alert = EXCLUDED.low_stock_alert,
			show_cost_price = EXCLUDED.show_cost_price,
			allow_negative_stock = EXCLUDED.allow_negative_stock,
			updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		s.BusinessName, s.Currency, nullIfEmpty(s.DefaultWarehouseID), s.DefaultTaxRate,
		s.LowStockAlert, s.ShowCostPrice, s.AllowNegativeStock,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
