package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Type   string // empty = all types
	Query  string // normalized-name substring search
	Limit  int
	Offset int
}

// AccountRepository is the persistence port for Account.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	List(ctx context.Context, f AccountFilter) ([]*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id string) error
	// AdjustBalance applies delta to current_balance atomically
	// (UPDATE ... SET current_balance = current_balance + delta).
	AdjustBalance(ctx context.Context, id string, delta decimal.Decimal) error
}
