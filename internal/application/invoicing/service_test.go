package invoicing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

const (
	testCustomer  = "acc-customer"
	testSupplier  = "acc-supplier"
	testProduct   = "prod-1"
	testWarehouse = "wh-1"
	testUser      = "user-1"
)

func newTestService(t *testing.T) (*Service, *store) {
	t.Helper()
	s := newStore()
	s.accounts[testCustomer] = &entity.Account{ID: testCustomer, Type: entity.AccountTypeCustomer, Name: "عميل نقدي", IsActive: true}
	s.accounts[testSupplier] = &entity.Account{ID: testSupplier, Type: entity.AccountTypeSupplier, Name: "مورد", IsActive: true}
	s.products[testProduct] = &entity.Product{
		ID: testProduct, SKU: "P-1", Name: "سكر",
		CostPrice: d("8"), SellPrice1: d("10"), IsActive: true,
	}
	s.whs[testWarehouse] = &entity.Warehouse{ID: testWarehouse, Name: "المستودع الرئيسي", IsDefault: true, IsActive: true}
	s.settings.DefaultWarehouseID = testWarehouse

	log := logger.New(logger.Config{Env: "test", Level: "error"})
	svc := NewService(
		&fakeInvoices{s}, &fakeAccounts{s}, &fakeProducts{s},
		&fakeWarehouses{s}, &fakeSettings{s}, &fakeTxRunner{s}, log,
	)
	return svc, s
}

func saveReq(invoiceType, accountID, status string, qty string) dto.SaveInvoiceRequest {
	return dto.SaveInvoiceRequest{
		Type:      invoiceType,
		AccountID: accountID,
		Status:    status,
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Lines: []dto.InvoiceLineRequest{
			{ProductID: testProduct, Quantity: d(qty)},
		},
	}
}

func seedStock(s *store, qty string) {
	s.inventory[invKey(testProduct, testWarehouse)] = &entity.Inventory{
		ProductID: testProduct, WarehouseID: testWarehouse, Quantity: d(qty),
	}
}

func TestCreatePostedSale(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Number)
	assert.True(t, resp.Total.Equal(d("40.00")), "total = %s", resp.Total)

	// Stock moved down by the sold quantity.
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("6")))
	// Customer now owes the total.
	assert.True(t, s.accounts[testCustomer].CurrentBalance.Equal(d("40.00")))
	// One ledger row and one audit row, both pointing at the invoice.
	require.Len(t, s.ledger, 1)
	for _, tx := range s.ledger {
		assert.Equal(t, entity.TransactionTypeDebit, tx.Type)
		assert.Equal(t, resp.ID, tx.SourceID)
	}
	require.Len(t, s.invTxs, 1)
	assert.True(t, s.invTxs[0].Quantity.Equal(d("-4")))
	assert.Equal(t, entity.InventorySourceInvoice, s.invTxs[0].SourceType)
}

func TestCreatePostedPurchase(t *testing.T) {
	svc, s := newTestService(t)

	req := saveReq(entity.InvoiceTypePurchase, testSupplier, "posted", "5")
	resp, err := svc.Create(context.Background(), req, testUser)
	require.NoError(t, err)

	// Purchase lines default to cost price.
	assert.True(t, resp.Total.Equal(d("40.00")), "total = %s", resp.Total)
	// Stock up, supplier balance down (the business owes).
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("5")))
	assert.True(t, s.accounts[testSupplier].CurrentBalance.Equal(d("-40.00")))
}

func TestBalanceDirectionPerType(t *testing.T) {
	cases := []struct {
		invoiceType string
		account     string
		wantBalance string
		seed        string
	}{
		{entity.InvoiceTypeSale, testCustomer, "10.00", "5"},
		{entity.InvoiceTypePurchase, testSupplier, "-8.00", "0"},
		{entity.InvoiceTypeSaleReturn, testCustomer, "-10.00", "0"},
		{entity.InvoiceTypePurchaseReturn, testSupplier, "8.00", "5"},
	}
	for _, tc := range cases {
		t.Run(tc.invoiceType, func(t *testing.T) {
			svc, s := newTestService(t)
			seedStock(s, tc.seed)

			_, err := svc.Create(context.Background(), saveReq(tc.invoiceType, tc.account, "posted", "1"), testUser)
			require.NoError(t, err)
			assert.True(t, s.accounts[tc.account].CurrentBalance.Equal(d(tc.wantBalance)),
				"balance = %s, want %s", s.accounts[tc.account].CurrentBalance, tc.wantBalance)
		})
	}
}

func TestDraftHasNoSideEffects(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	_, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "draft", "4"), testUser)
	require.NoError(t, err)

	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("10")))
	assert.True(t, s.accounts[testCustomer].CurrentBalance.IsZero())
	assert.Empty(t, s.ledger)
	assert.Empty(t, s.invTxs)
}

func TestInsufficientStockRejectsPosting(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "2")

	_, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestNegativeStockAllowedBySetting(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "2")
	s.settings.AllowNegativeStock = true

	_, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	require.NoError(t, err)
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("-2")))
}

func TestEditPostedInvoiceNetsQuantityDifference(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	require.NoError(t, err)
	require.True(t, s.stock(testProduct, testWarehouse).Equal(d("6")))

	// Edit the quantity from 4 to 7: the net stock change must be −7 total,
	// not −11.
	_, err = svc.Update(context.Background(), resp.ID, saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "7"), testUser)
	require.NoError(t, err)

	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("3")),
		"stock = %s", s.stock(testProduct, testWarehouse))
	// Balance reflects only the new total.
	assert.True(t, s.accounts[testCustomer].CurrentBalance.Equal(d("70.00")))
	// Old ledger rows were replaced, not stacked.
	require.Len(t, s.ledger, 1)
	// Audit trail keeps all three movements: post, reversal, re-post.
	assert.Len(t, s.invTxs, 3)
}

func TestEditKeepsNumberAndReversalRows(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "2"), testUser)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), resp.ID, saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "3"), testUser)
	require.NoError(t, err)
	assert.Equal(t, resp.Number, updated.Number)

	var reversals int
	for _, tx := range s.invTxs {
		if tx.SourceType == entity.InventorySourceReversal {
			reversals++
		}
	}
	assert.Equal(t, 1, reversals)
}

func TestEditPaidInvoiceRejected(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "2"), testUser)
	require.NoError(t, err)
	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusPaid, testUser)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), resp.ID, saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "5"), testUser)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStatusTransitions(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "draft", "4"), testUser)
	require.NoError(t, err)
	require.True(t, s.stock(testProduct, testWarehouse).Equal(d("10")))

	// Posting a draft applies the side effects.
	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusPosted, testUser)
	require.NoError(t, err)
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("6")))

	// Posting twice is rejected.
	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusPosted, testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Cancelling keeps the effects in place.
	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusCancelled, testUser)
	require.NoError(t, err)
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("6")))

	// A cancelled invoice is terminal.
	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusPaid, testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDraftCannotSkipToPaid(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "draft", "1"), testUser)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), resp.ID, entity.InvoiceStatusPaid, testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeletePostedInvoiceReversesEffects(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), resp.ID, testUser)
	require.NoError(t, err)

	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("10")))
	assert.True(t, s.accounts[testCustomer].CurrentBalance.IsZero())
	assert.Empty(t, s.ledger)
	assert.Empty(t, s.invoices)
}

func TestDeleteDraftIsPlain(t *testing.T) {
	svc, s := newTestService(t)

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "draft", "4"), testUser)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), resp.ID, testUser)
	require.NoError(t, err)
	assert.Empty(t, s.invoices)
	assert.Empty(t, s.invTxs)
}

func TestNumbersAreSequentialPerType(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "100")

	r1, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "1"), testUser)
	require.NoError(t, err)
	r2, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "1"), testUser)
	require.NoError(t, err)
	p1, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypePurchase, testSupplier, "posted", "1"), testUser)
	require.NoError(t, err)

	assert.Equal(t, int64(1), r1.Number)
	assert.Equal(t, int64(2), r2.Number)
	assert.Equal(t, int64(1), p1.Number)
	_ = s
}

func TestValidationRejectsBeforeAnyWrite(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, "missing", "posted", "1"), testUser)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("zero quantity", func(t *testing.T) {
		_, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "0"), testUser)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("unknown product", func(t *testing.T) {
		req := saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "1")
		req.Lines[0].ProductID = "missing"
		_, err := svc.Create(context.Background(), req, testUser)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("negative unit price", func(t *testing.T) {
		// A negative price would post a sale that lowers the customer balance.
		req := saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "2")
		req.Lines[0].UnitPrice = d("-5")
		_, err := svc.Create(context.Background(), req, testUser)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	// Nothing was written by any rejected request.
	assert.Empty(t, s.invoices)
	assert.Empty(t, s.ledger)
	assert.True(t, s.stock(testProduct, testWarehouse).Equal(d("10")))
	assert.True(t, s.accounts[testCustomer].CurrentBalance.IsZero())
}

func TestSideEffectRowsCarryTimestamps(t *testing.T) {
	svc, s := newTestService(t)
	seedStock(s, "10")

	resp, err := svc.Create(context.Background(), saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "4"), testUser)
	require.NoError(t, err)

	// Audit and ledger rows must sort by creation time; a zero CreatedAt
	// would silently break the history ordering.
	require.Len(t, s.invTxs, 1)
	assert.False(t, s.invTxs[0].CreatedAt.IsZero())
	require.Len(t, s.ledger, 1)
	for _, tx := range s.ledger {
		assert.False(t, tx.CreatedAt.IsZero())
	}

	// Reversal rows are stamped the same way.
	_, err = svc.Update(context.Background(), resp.ID, saveReq(entity.InvoiceTypeSale, testCustomer, "posted", "6"), testUser)
	require.NoError(t, err)
	require.Len(t, s.invTxs, 3)
	for _, row := range s.invTxs {
		assert.False(t, row.CreatedAt.IsZero())
	}
}
