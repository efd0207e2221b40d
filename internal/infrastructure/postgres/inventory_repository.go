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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository over PostgreSQL (pool or tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get returns the stock row for a (product, warehouse) pair. Missing rows
// come back with zero quantity; they are created lazily by Upsert.
func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate returns the stock row and locks it (SELECT FOR UPDATE) so
// concurrent postings on the same pair serialize.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserts or updates the quantity for a (product, warehouse) pair.
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, inv.ProductID, inv.WarehouseID, inv.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List returns inventory rows matching the filter.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.Inventory, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory
		WHERE ($1 = '' OR product_id = $1)
		  AND ($2 = '' OR warehouse_id = $2)
		ORDER BY product_id, warehouse_id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.ProductID, f.WarehouseID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// ListByProduct returns every warehouse row for a product.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error) {
	return r.List(ctx, repository.InventoryFilter{ProductID: productID, Limit: 1000})
}
