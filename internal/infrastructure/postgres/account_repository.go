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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements AccountRepository over PostgreSQL (pool or tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository builds the adapter. Pass a pool or a tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, type, name, normalized_name, phone, address, notes,
	opening_balance, current_balance, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.Type, &a.Name, &a.NormalizedName, &a.Phone, &a.Address, &a.Notes,
		&a.OpeningBalance, &a.CurrentBalance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persists a new account.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Name, a.NormalizedName, a.Phone, a.Address, a.Notes,
		a.OpeningBalance, a.CurrentBalance, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account already exists: %w", err)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID returns an account by ID, or nil when missing.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// List returns accounts matching the filter, newest first.
func (r *AccountRepo) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR normalized_name LIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Type, f.Query, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update updates the account master fields. Balances are adjusted only via
// AdjustBalance so concurrent postings never overwrite each other.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query := `
		UPDATE accounts
		SET type = $2, name = $3, normalized_name = $4, phone = $5, address = $6,
		    notes = $7, opening_balance = $8, is_active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Type, a.Name, a.NormalizedName, a.Phone, a.Address,
		a.Notes, a.OpeningBalance, a.IsActive, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Delete removes an account by ID.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("account has documents: %w", err)
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// AdjustBalance applies delta atomically at the storage layer.
func (r *AccountRepo) AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE accounts SET current_balance = current_balance + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust account balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("adjust account balance: account %s not found", id)
	}
	return nil
}
