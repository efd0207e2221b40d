package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

type memStore struct {
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	stock      map[string]*entity.Inventory
	audit      []*entity.InventoryTransaction
	failUpsert bool
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[string]*entity.Category{},
		products:   map[string]*entity.Product{},
		stock:      map[string]*entity.Inventory{},
	}
}

func stockKey(p, w string) string { return p + "|" + w }

type memCategories struct{ s *memStore }

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	m.s.categories[c.ID] = &cp
	return nil
}

func (m *memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := m.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategories) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range m.s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	m.s.categories[c.ID] = &cp
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	delete(m.s.categories, id)
	return nil
}

func (m *memCategories) ClearDefault(_ context.Context) error {
	for _, c := range m.s.categories {
		c.IsDefault = false
	}
	return nil
}

func (m *memCategories) GetDefault(_ context.Context) (*entity.Category, error) {
	for _, c := range m.s.categories {
		if c.IsDefault {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memCategories) CountChildren(_ context.Context, parentID string) (int64, error) {
	var n int64
	for _, c := range m.s.categories {
		if c.ParentID == parentID {
			n++
		}
	}
	return n, nil
}

type memProducts struct{ s *memStore }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	m.s.products[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range m.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memProducts) List(_ context.Context, _ repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	m.s.products[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	delete(m.s.products, id)
	return nil
}

func (m *memProducts) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, p := range m.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type memInventory struct{ s *memStore }

func (m *memInventory) Get(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	if row, ok := m.s.stock[stockKey(productID, warehouseID)]; ok {
		cp := *row
		return &cp, nil
	}
	return &entity.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (m *memInventory) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return m.Get(ctx, productID, warehouseID)
}

func (m *memInventory) Upsert(_ context.Context, inv *entity.Inventory) error {
	if m.s.failUpsert {
		return errors.New("deadlock detected")
	}
	cp := *inv
	m.s.stock[stockKey(inv.ProductID, inv.WarehouseID)] = &cp
	return nil
}

func (m *memInventory) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range m.s.stock {
		out = append(out, row)
	}
	return out, nil
}

func (m *memInventory) ListByProduct(_ context.Context, productID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range m.s.stock {
		if row.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

type memInvTxs struct{ s *memStore }

func (m *memInvTxs) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	cp := *tx
	m.s.audit = append(m.s.audit, &cp)
	return nil
}

func (m *memInvTxs) ListBySource(_ context.Context, _, _ string) ([]*entity.InventoryTransaction, error) {
	return m.s.audit, nil
}

func (m *memInvTxs) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range m.s.audit {
		if tx.ProductID == productID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type memTxRunner struct{ s *memStore }

func (m *memTxRunner) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	return fn(ports.TxRepos{
		Inventory:    &memInventory{m.s},
		InventoryTxs: &memInvTxs{m.s},
	})
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newProductUseCase(s *memStore) *ProductUseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return NewProductUseCase(&memProducts{s}, &memCategories{s}, &memInventory{s}, &memTxRunner{s}, log)
}

func seedProduct(s *memStore, id, name string) {
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: name, IsActive: true}
}

func TestProductDeleteZeroesStockRows(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "سكر أبيض")
	s.stock[stockKey("p1", "w1")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w1", Quantity: d("12.5")}
	s.stock[stockKey("p1", "w2")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w2", Quantity: decimal.Zero}
	uc := newProductUseCase(s)

	err := uc.Delete(context.Background(), "p1", "admin-1")
	require.NoError(t, err)

	_, ok := s.products["p1"]
	assert.False(t, ok, "product should be gone")
	assert.True(t, s.stock[stockKey("p1", "w1")].Quantity.IsZero())

	// Only the non-zero row produces an audit entry.
	require.Len(t, s.audit, 1)
	row := s.audit[0]
	assert.Equal(t, "p1", row.ProductID)
	assert.Equal(t, "w1", row.WarehouseID)
	assert.Equal(t, entity.InventoryTxAdjustment, row.Type)
	assert.True(t, row.Quantity.Equal(d("-12.5")))
	assert.Equal(t, entity.InventorySourceCount, row.SourceType)
	assert.Equal(t, "zeroed before product delete", row.Notes)
	assert.Equal(t, "admin-1", row.CreatedBy)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestProductDeleteRefusedWhenStockCannotBeZeroed(t *testing.T) {
	s := newMemStore()
	seedProduct(s, "p1", "أرز بسمتي")
	s.stock[stockKey("p1", "w1")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w1", Quantity: d("3")}
	s.failUpsert = true
	uc := newProductUseCase(s)

	err := uc.Delete(context.Background(), "p1", "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, ok := s.products["p1"]
	assert.True(t, ok, "product must survive a failed delete")
	assert.True(t, s.stock[stockKey("p1", "w1")].Quantity.Equal(d("3")))
}

func TestProductDeleteUnknownProduct(t *testing.T) {
	s := newMemStore()
	uc := newProductUseCase(s)

	err := uc.Delete(context.Background(), "missing", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
