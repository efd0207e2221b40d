package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

type memStore struct {
	accounts map[string]*entity.Account
	ledger   map[string]*entity.Transaction
}

type memAccounts struct{ s *memStore }

func (m *memAccounts) Create(_ context.Context, a *entity.Account) error {
	m.s.accounts[a.ID] = a
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := m.s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) List(_ context.Context, _ repository.AccountFilter) ([]*entity.Account, error) {
	return nil, nil
}

func (m *memAccounts) Update(_ context.Context, a *entity.Account) error {
	m.s.accounts[a.ID] = a
	return nil
}

func (m *memAccounts) Delete(_ context.Context, id string) error {
	delete(m.s.accounts, id)
	return nil
}

func (m *memAccounts) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) error {
	a, ok := m.s.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	return nil
}

type memLedger struct{ s *memStore }

func (m *memLedger) Create(_ context.Context, tx *entity.Transaction) error {
	cp := *tx
	m.s.ledger[tx.ID] = &cp
	return nil
}

func (m *memLedger) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	tx, ok := m.s.ledger[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (m *memLedger) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.s.ledger {
		out = append(out, tx)
	}
	return out, nil
}

func (m *memLedger) Delete(_ context.Context, id string) error {
	delete(m.s.ledger, id)
	return nil
}

func (m *memLedger) ListBySource(_ context.Context, sourceType, sourceID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.s.ledger {
		if tx.SourceType == sourceType && tx.SourceID == sourceID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memLedger) DeleteBySource(_ context.Context, sourceType, sourceID string) error {
	for id, tx := range m.s.ledger {
		if tx.SourceType == sourceType && tx.SourceID == sourceID {
			delete(m.s.ledger, id)
		}
	}
	return nil
}

type memTxRunner struct{ s *memStore }

func (m *memTxRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{
		Accounts:     &memAccounts{m.s},
		Transactions: &memLedger{m.s},
	})
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newTestService() (*Service, *memStore) {
	s := &memStore{
		accounts: map[string]*entity.Account{
			"cust": {ID: "cust", Type: entity.AccountTypeCustomer, Name: "عميل", IsActive: true},
			"bank": {ID: "bank", Type: entity.AccountTypeBank, Name: "البنك", IsActive: true},
			"exp":  {ID: "exp", Type: entity.AccountTypeExpense, Name: "مصاريف", IsActive: true},
		},
		ledger: map[string]*entity.Transaction{},
	}
	return NewService(&memLedger{s}, &memAccounts{s}, &memTxRunner{s}), s
}

func TestCreateDebitRaisesAccountBalance(t *testing.T) {
	svc, s := newTestService()

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		AccountID: "cust", Type: entity.TransactionTypeDebit, Amount: d("150"),
	}, "u1")
	require.NoError(t, err)

	assert.True(t, s.accounts["cust"].CurrentBalance.Equal(d("150")))
	require.Len(t, s.ledger, 1)
	for _, tx := range s.ledger {
		assert.False(t, tx.CreatedAt.IsZero(), "ledger rows sort by creation time")
	}
}

func TestCreateCreditWithBankMovesBothSides(t *testing.T) {
	svc, s := newTestService()
	s.accounts["cust"].CurrentBalance = d("200")

	// Customer pays 80 into the bank: their debt falls, the bank rises.
	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		AccountID: "cust", BankAccountID: "bank",
		Type: entity.TransactionTypeCredit, Amount: d("80"),
	}, "u1")
	require.NoError(t, err)

	assert.True(t, s.accounts["cust"].CurrentBalance.Equal(d("120")))
	assert.True(t, s.accounts["bank"].CurrentBalance.Equal(d("80")))
}

func TestCreateRejectsNonBankAsBankAccount(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		AccountID: "cust", BankAccountID: "exp",
		Type: entity.TransactionTypeCredit, Amount: d("10"),
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		AccountID: "cust", Type: entity.TransactionTypeDebit, Amount: d("0"),
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteRestoresBalances(t *testing.T) {
	svc, s := newTestService()

	resp, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		AccountID: "cust", BankAccountID: "bank",
		Type: entity.TransactionTypeCredit, Amount: d("50"),
	}, "u1")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), resp.ID)
	require.NoError(t, err)

	assert.True(t, s.accounts["cust"].CurrentBalance.IsZero())
	assert.True(t, s.accounts["bank"].CurrentBalance.IsZero())
	assert.Empty(t, s.ledger)
}

func TestDeleteRefusesInvoiceSourcedRows(t *testing.T) {
	svc, s := newTestService()
	s.ledger["t1"] = &entity.Transaction{
		ID: "t1", AccountID: "cust", Type: entity.TransactionTypeDebit,
		Amount: d("10"), SourceType: entity.TransactionSourceInvoice, SourceID: "inv1",
	}

	err := svc.Delete(context.Background(), "t1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
