package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implements the stock movement audit log over
// PostgreSQL (pool or tx). Rows are insert-only.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository builds the adapter. Pass a pool or a tx.
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create appends an audit row.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO inventory_transactions
			(id, product_id, warehouse_id, type, quantity, source_type, source_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.WarehouseID, t.Type, t.Quantity,
		t.SourceType, nullIfEmpty(t.SourceID), t.Notes, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

const inventoryTxColumns = `id, product_id, warehouse_id, type, quantity,
	source_type, COALESCE(source_id, ''), notes, created_by, created_at`

// ListBySource returns the audit rows a document produced, oldest first.
func (r *InventoryTransactionRepo) ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT ` + inventoryTxColumns + `
		FROM inventory_transactions
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions by source: %w", err)
	}
	defer rows.Close()
	return scanInventoryTxs(rows)
}

// ListByProduct returns the movement history of a product, newest first.
func (r *InventoryTransactionRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT ` + inventoryTxColumns + `
		FROM inventory_transactions
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	return scanInventoryTxs(rows)
}

func scanInventoryTxs(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.InventoryTransaction, error) {
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.WarehouseID, &t.Type, &t.Quantity,
			&t.SourceType, &t.SourceID, &t.Notes, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
