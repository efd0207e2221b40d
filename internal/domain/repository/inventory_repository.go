package repository

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	ProductID   string
	WarehouseID string
	Limit       int
	Offset      int
}

// InventoryRepository is the persistence port for per-warehouse stock rows.
// Used inside transactions to guarantee consistency of the posting engine.
type InventoryRepository interface {
	// Get returns the row or a zero-quantity row if none exists yet.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE). Missing rows return
	// a zero-quantity row; the lazily created row is locked by the upsert.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, f InventoryFilter) ([]*entity.Inventory, error)
	// ListByProduct returns every warehouse row for a product; used when a
	// product with stock history is deleted (rows are zeroed first).
	ListByProduct(ctx context.Context, productID string) ([]*entity.Inventory, error)
}

// InventoryTransactionRepository is the persistence port for the immutable
// stock movement audit log.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.InventoryTransaction, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryTransaction, error)
}
