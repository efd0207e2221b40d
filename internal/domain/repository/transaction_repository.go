package repository

import (
	"context"
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// TransactionFilter narrows financial ledger listings.
type TransactionFilter struct {
	AccountID string
	Type      string
	DateFrom  time.Time
	DateTo    time.Time
	Limit     int
	Offset    int
}

// TransactionRepository is the persistence port for the financial ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, error)
	Delete(ctx context.Context, id string) error
	// ListBySource returns the ledger rows a document produced; used when a
	// posted document is edited or deleted and its effects must be reversed.
	ListBySource(ctx context.Context, sourceType, sourceID string) ([]*entity.Transaction, error)
	DeleteBySource(ctx context.Context, sourceType, sourceID string) error
}
