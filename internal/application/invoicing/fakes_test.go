package invoicing

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// In-memory repository fakes. A single store backs both the service-level
// repositories and the "transactional" ones handed out by fakeTxRunner, so
// tests observe writes exactly as the service makes them.
type store struct {
	accounts  map[string]*entity.Account
	products  map[string]*entity.Product
	whs       map[string]*entity.Warehouse
	settings  *entity.Settings
	inventory map[string]*entity.Inventory // key productID|warehouseID
	invTxs    []*entity.InventoryTransaction
	invoices  map[string]*entity.Invoice
	details   map[string][]*entity.InvoiceDetail
	ledger    map[string]*entity.Transaction
	nextNum   map[string]int64
}

func newStore() *store {
	return &store{
		accounts:  map[string]*entity.Account{},
		products:  map[string]*entity.Product{},
		whs:       map[string]*entity.Warehouse{},
		settings:  &entity.Settings{ID: 1},
		inventory: map[string]*entity.Inventory{},
		invoices:  map[string]*entity.Invoice{},
		details:   map[string][]*entity.InvoiceDetail{},
		ledger:    map[string]*entity.Transaction{},
		nextNum:   map[string]int64{},
	}
}

func invKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (s *store) stock(productID, warehouseID string) decimal.Decimal {
	if row, ok := s.inventory[invKey(productID, warehouseID)]; ok {
		return row.Quantity
	}
	return decimal.Zero
}

type fakeAccounts struct{ s *store }

func (f *fakeAccounts) Create(_ context.Context, a *entity.Account) error {
	f.s.accounts[a.ID] = a
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	a, ok := f.s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) List(_ context.Context, _ repository.AccountFilter) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range f.s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAccounts) Update(_ context.Context, a *entity.Account) error {
	f.s.accounts[a.ID] = a
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id string) error {
	delete(f.s.accounts, id)
	return nil
}

func (f *fakeAccounts) AdjustBalance(_ context.Context, id string, delta decimal.Decimal) error {
	a, ok := f.s.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.CurrentBalance = a.CurrentBalance.Add(delta)
	return nil
}

type fakeProducts struct{ s *store }

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range f.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProducts) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.s.products[p.ID] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	delete(f.s.products, id)
	return nil
}

func (f *fakeProducts) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range f.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type fakeWarehouses struct{ s *store }

func (f *fakeWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	f.s.whs[w.ID] = w
	return nil
}

func (f *fakeWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := f.s.whs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeWarehouses) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.s.whs {
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWarehouses) Update(_ context.Context, w *entity.Warehouse) error {
	f.s.whs[w.ID] = w
	return nil
}

func (f *fakeWarehouses) Delete(_ context.Context, id string) error {
	delete(f.s.whs, id)
	return nil
}

func (f *fakeWarehouses) ClearDefault(_ context.Context) error {
	for _, w := range f.s.whs {
		w.IsDefault = false
	}
	return nil
}

func (f *fakeWarehouses) GetDefault(_ context.Context) (*entity.Warehouse, error) {
	for _, w := range f.s.whs {
		if w.IsDefault {
			return w, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeSettings struct{ s *store }

func (f *fakeSettings) Get(_ context.Context) (*entity.Settings, error) {
	cp := *f.s.settings
	return &cp, nil
}

func (f *fakeSettings) Update(_ context.Context, set *entity.Settings) error {
	f.s.settings = set
	return nil
}

type fakeInventory struct{ s *store }

func (f *fakeInventory) Get(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	if row, ok := f.s.inventory[invKey(productID, warehouseID)]; ok {
		cp := *row
		return &cp, nil
	}
	return &entity.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (f *fakeInventory) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return f.Get(ctx, productID, warehouseID)
}

func (f *fakeInventory) Upsert(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	f.s.inventory[invKey(inv.ProductID, inv.WarehouseID)] = &cp
	return nil
}

func (f *fakeInventory) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range f.s.inventory {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeInventory) ListByProduct(_ context.Context, productID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range f.s.inventory {
		if row.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeInvTxs struct{ s *store }

func (f *fakeInvTxs) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	cp := *tx
	f.s.invTxs = append(f.s.invTxs, &cp)
	return nil
}

func (f *fakeInvTxs) ListBySource(_ context.Context, sourceType, sourceID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range f.s.invTxs {
		if tx.SourceType == sourceType && tx.SourceID == sourceID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeInvTxs) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range f.s.invTxs {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeInvoices struct{ s *store }

func (f *fakeInvoices) Create(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	f.s.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoices) CreateDetail(_ context.Context, d *entity.InvoiceDetail) error {
	cp := *d
	f.s.details[d.InvoiceID] = append(f.s.details[d.InvoiceID], &cp)
	return nil
}

func (f *fakeInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	inv, ok := f.s.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoices) GetDetails(_ context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	return f.s.details[invoiceID], nil
}

func (f *fakeInvoices) List(_ context.Context, _ repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.s.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakeInvoices) Update(_ context.Context, inv *entity.Invoice) error {
	if _, ok := f.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	f.s.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoices) UpdateStatus(_ context.Context, id, status string) error {
	inv, ok := f.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvoices) DeleteDetails(_ context.Context, invoiceID string) error {
	delete(f.s.details, invoiceID)
	return nil
}

func (f *fakeInvoices) Delete(_ context.Context, id string) error {
	delete(f.s.invoices, id)
	return nil
}

func (f *fakeInvoices) NextNumber(_ context.Context, invoiceType string) (int64, error) {
	f.s.nextNum[invoiceType]++
	return f.s.nextNum[invoiceType], nil
}

type fakeLedger struct{ s *store }

func (f *fakeLedger) Create(_ context.Context, tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	cp := *tx
	f.s.ledger[tx.ID] = &cp
	return nil
}

func (f *fakeLedger) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	tx, ok := f.s.ledger[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

func (f *fakeLedger) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.s.ledger {
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeLedger) Delete(_ context.Context, id string) error {
	delete(f.s.ledger, id)
	return nil
}

func (f *fakeLedger) ListBySource(_ context.Context, sourceType, sourceID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range f.s.ledger {
		if tx.SourceType == sourceType && tx.SourceID == sourceID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeLedger) DeleteBySource(_ context.Context, sourceType, sourceID string) error {
	for id, tx := range f.s.ledger {
		if tx.SourceType == sourceType && tx.SourceID == sourceID {
			delete(f.s.ledger, id)
		}
	}
	return nil
}

// fakeTxRunner runs the callback against the shared store. There is no real
// rollback; tests that exercise failure assert on the error, not the state.
type fakeTxRunner struct{ s *store }

func (f *fakeTxRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{
		Accounts:     &fakeAccounts{f.s},
		Products:     &fakeProducts{f.s},
		Inventory:    &fakeInventory{f.s},
		InventoryTxs: &fakeInvTxs{f.s},
		Invoices:     &fakeInvoices{f.s},
		Transactions: &fakeLedger{f.s},
	})
}
