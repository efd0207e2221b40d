// Package ledger records manual financial transactions and keeps account
// balances in step with them.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/money"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// Service covers manual ledger entries. Invoice-sourced entries are written
// by the invoicing service and can only be removed through their document.
type Service struct {
	transactions repository.TransactionRepository
	accounts     repository.AccountRepository
	tx           ports.TxRunner
}

// NewService builds the service.
func NewService(transactions repository.TransactionRepository, accounts repository.AccountRepository, tx ports.TxRunner) *Service {
	return &Service{transactions: transactions, accounts: accounts, tx: tx}
}

// Create records a manual transaction and adjusts balances in one database
// transaction. A debit raises the counterparty balance (they owe more); when
// a bank or cash account is attached it moves the opposite way, mirroring
// money received or paid out.
func (s *Service) Create(ctx context.Context, in dto.CreateTransactionRequest, userID string) (*dto.TransactionResponse, error) {
	if in.Type != entity.TransactionTypeDebit && in.Type != entity.TransactionTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrInvalidInput)
	}
	if _, err := s.accounts.GetByID(ctx, in.AccountID); err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	if in.BankAccountID != "" {
		bank, err := s.accounts.GetByID(ctx, in.BankAccountID)
		if err != nil {
			return nil, fmt.Errorf("bank account: %w", err)
		}
		if bank.Type != entity.AccountTypeBank && bank.Type != entity.AccountTypeCash {
			return nil, fmt.Errorf("account %s is not a bank or cash account: %w", bank.ID, domain.ErrInvalidInput)
		}
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		AccountID:     in.AccountID,
		BankAccountID: in.BankAccountID,
		Type:          in.Type,
		Amount:        money.Round2(in.Amount),
		Date:          date,
		Description:   in.Description,
		SourceType:    entity.TransactionSourceManual,
		CreatedBy:     userID,
		CreatedAt:     time.Now().UTC(),
	}

	err := s.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		delta := tx.BalanceDelta()
		if err := r.Accounts.AdjustBalance(ctx, tx.AccountID, delta); err != nil {
			return err
		}
		if tx.BankAccountID != "" {
			return r.Accounts.AdjustBalance(ctx, tx.BankAccountID, delta.Neg())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToTransactionResponse(tx), nil
}

// List lists ledger entries.
func (s *Service) List(ctx context.Context, f repository.TransactionFilter, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset
	list, err := s.transactions.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &dto.TransactionListResponse{
		Items: make([]dto.TransactionResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, tx := range list {
		resp.Items = append(resp.Items, *dto.ToTransactionResponse(tx))
	}
	return resp, nil
}

// Delete removes a manual transaction and puts the balances back. Entries
// written by invoice posting are refused; delete the document instead.
func (s *Service) Delete(ctx context.Context, id string) error {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tx.SourceType == entity.TransactionSourceInvoice {
		return fmt.Errorf("transaction belongs to invoice %s: %w", tx.SourceID, domain.ErrConflict)
	}
	return s.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Transactions.Delete(ctx, id); err != nil {
			return err
		}
		delta := tx.BalanceDelta().Neg()
		if err := r.Accounts.AdjustBalance(ctx, tx.AccountID, delta); err != nil {
			return err
		}
		if tx.BankAccountID != "" {
			return r.Accounts.AdjustBalance(ctx, tx.BankAccountID, delta.Neg())
		}
		return nil
	})
}
