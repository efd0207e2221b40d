package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateTransactionRequest records a manual financial transaction. Amount
// must be positive; Type carries the direction.
type CreateTransactionRequest struct {
	AccountID     string          `json:"accountId" validate:"required"`
	BankAccountID string          `json:"bankAccountId"`
	Type          string          `json:"type" validate:"required,oneof=debit credit"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
}

// TransactionResponse is the ledger entry output shape.
type TransactionResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"accountId"`
	BankAccountID string          `json:"bankAccountId,omitempty"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description,omitempty"`
	SourceType    string          `json:"sourceType"`
	SourceID      string          `json:"sourceId,omitempty"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionListResponse is a paged ledger listing.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

func ToTransactionResponse(t *entity.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		AccountID:     t.AccountID,
		BankAccountID: t.BankAccountID,
		Type:          t.Type,
		Amount:        t.Amount,
		Date:          t.Date,
		Description:   t.Description,
		SourceType:    t.SourceType,
		SourceID:      t.SourceID,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}
