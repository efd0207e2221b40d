package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements the financial ledger over PostgreSQL (pool or tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, account_id, COALESCE(bank_account_id, ''), type, amount, date,
	description, source_type, COALESCE(source_id, ''), created_by, created_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.AccountID, &t.BankAccountID, &t.Type, &t.Amount, &t.Date,
		&t.Description, &t.SourceType, &t.SourceID, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create appends a ledger entry.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO transactions
			(id, account_id, bank_account_id, type, amount, date, description, source_type, source_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.AccountID, nullIfEmpty(t.BankAccountID), t.Type, t.Amount, t.Date,
		t.Description, t.SourceType, nullIfEmpty(t.SourceID), t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID returns a ledger entry by ID, or nil when missing.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List returns ledger entries matching the filter, newest first.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR account_id = $1 OR bank_account_id = $1)
		  AND ($2 = '' OR type = $2)
		  AND ($3::timestamptz IS NULL OR date >= $3)
		  AND ($4::timestamptz IS NULL OR date <= $4)
		ORDER BY date DESC, created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query,
		f.AccountID, f.Type, nullIfZeroTime(f.DateFrom), nullIfZeroTime(f.DateTo), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete removes a ledger entry.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// ListBySource returns the entries a document produced, oldest first.
func (r *TransactionRepo) ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, sourceType, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by source: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// DeleteBySource removes the entries a document produced; used when a posted
// document is edited or deleted and its ledger rows are replaced.
func (r *TransactionRepo) DeleteBySource(ctx context.Context, sourceType, sourceID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM transactions WHERE source_type = $1 AND source_id = $2`, sourceType, sourceID)
	if err != nil {
		return fmt.Errorf("delete transactions by source: %w", err)
	}
	return nil
}
