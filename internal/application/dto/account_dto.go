package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateAccountRequest is the input for creating an account.
type CreateAccountRequest struct {
	Type           string          `json:"type" validate:"required,oneof=customer supplier expense income bank cash"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Phone          string          `json:"phone" validate:"omitempty,max=30"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateAccountRequest is the input for a partial account update.
// OpeningBalance is intentionally absent: it is fixed at creation so the
// balance invariant stays auditable.
type UpdateAccountRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse is the account output shape.
type AccountResponse struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	Address        string          `json:"address,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AccountListResponse is a paged account listing.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

func ToAccountResponse(a *entity.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Type:           a.Type,
		Name:           a.Name,
		Phone:          a.Phone,
		Address:        a.Address,
		Notes:          a.Notes,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
