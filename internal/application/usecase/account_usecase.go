package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/arabic"
)

// AccountUseCase covers the party/cash account ledger CRUD. Balances move
// only through transactions and document posting, never through updates here.
type AccountUseCase struct {
	accounts repository.AccountRepository
}

func NewAccountUseCase(accounts repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// Create creates an account. CurrentBalance starts at OpeningBalance.
func (uc *AccountUseCase) Create(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !entity.IsValidAccountType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	account := &entity.Account{
		ID:             uuid.New().String(),
		Type:           in.Type,
		Name:           in.Name,
		NormalizedName: arabic.Normalize(in.Name),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        in.Address,
		Notes:          in.Notes,
		OpeningBalance: in.OpeningBalance,
		CurrentBalance: in.OpeningBalance,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

func (uc *AccountUseCase) GetByID(ctx context.Context, id string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

func (uc *AccountUseCase) List(ctx context.Context, accountType, query string, page dto.PageRequest) (*dto.AccountListResponse, error) {
	page.DefaultPage()
	if accountType != "" && !entity.IsValidAccountType(accountType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.accounts.List(ctx, repository.AccountFilter{
		Type:   accountType,
		Query:  arabic.Normalize(query),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.AccountListResponse{
		Items: make([]dto.AccountResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, a := range list {
		resp.Items = append(resp.Items, *dto.ToAccountResponse(a))
	}
	return resp, nil
}

// Update applies a partial update. Type and balances are immutable here.
func (uc *AccountUseCase) Update(ctx context.Context, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		account.Name = name
		account.NormalizedName = arabic.Normalize(name)
	}
	if in.Phone != nil {
		account.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		account.Address = *in.Address
	}
	if in.Notes != nil {
		account.Notes = *in.Notes
	}
	if in.IsActive != nil {
		account.IsActive = *in.IsActive
	}
	account.UpdatedAt = time.Now().UTC()
	if err := uc.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// Delete removes an account. Documents or ledger rows referencing it surface
// as ErrConflict from the repository.
func (uc *AccountUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.accounts.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.accounts.Delete(ctx, id)
}
