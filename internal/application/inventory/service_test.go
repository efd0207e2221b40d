package inventory

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
	rows     map[string]*entity.Inventory
	audit    []*entity.InventoryTransaction
	settings *entity.Settings
}

func key(p, w string) string { return p + "|" + w }

type memInventory struct{ s *memStore }

func (m *memInventory) Get(_ context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	if row, ok := m.s.rows[key(productID, warehouseID)]; ok {
		cp := *row
		return &cp, nil
	}
	return &entity.Inventory{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

func (m *memInventory) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Inventory, error) {
	return m.Get(ctx, productID, warehouseID)
}

func (m *memInventory) Upsert(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	m.s.rows[key(inv.ProductID, inv.WarehouseID)] = &cp
	return nil
}

func (m *memInventory) List(_ context.Context, _ repository.InventoryFilter) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range m.s.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *memInventory) ListByProduct(_ context.Context, productID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, row := range m.s.rows {
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

type memSettings struct{ s *memStore }

func (m *memSettings) Get(_ context.Context) (*entity.Settings, error) {
	cp := *m.s.settings
	return &cp, nil
}

func (m *memSettings) Update(_ context.Context, set *entity.Settings) error {
	m.s.settings = set
	return nil
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

func newTestService() (*Service, *memStore) {
	s := &memStore{
		rows:     map[string]*entity.Inventory{},
		settings: &entity.Settings{ID: 1},
	}
	return NewService(&memInventory{s}, &memInvTxs{s}, &memSettings{s}, &memTxRunner{s}), s
}

func TestUpdateDelta(t *testing.T) {
	svc, s := newTestService()

	resp, err := svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("5"),
	}, "u1")
	require.NoError(t, err)

	assert.True(t, resp.Quantity.Equal(d("5")))
	require.Len(t, s.audit, 1)
	assert.Equal(t, entity.InventorySourceManual, s.audit[0].SourceType)
	assert.False(t, s.audit[0].CreatedAt.IsZero(), "audit rows sort by creation time")
}

func TestUpdateCountSetsAbsolute(t *testing.T) {
	svc, s := newTestService()
	s.rows[key("p1", "w1")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w1", Quantity: d("8")}

	resp, err := svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("3"), IsCount: true,
	}, "u1")
	require.NoError(t, err)

	assert.True(t, resp.Quantity.Equal(d("3")))
	require.Len(t, s.audit, 1)
	// The audit row records the delta, not the counted value.
	assert.True(t, s.audit[0].Quantity.Equal(d("-5")))
	assert.Equal(t, entity.InventorySourceCount, s.audit[0].SourceType)
}

func TestUpdateCountIsIdempotent(t *testing.T) {
	svc, s := newTestService()
	s.rows[key("p1", "w1")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w1", Quantity: d("8")}

	// Counting the quantity already on hand writes no audit row.
	_, err := svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("8"), IsCount: true,
	}, "u1")
	require.NoError(t, err)
	assert.Empty(t, s.audit)

	// Same call again: still nothing.
	_, err = svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("8"), IsCount: true,
	}, "u1")
	require.NoError(t, err)
	assert.Empty(t, s.audit)
}

func TestUpdateRejectsNegativeResult(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("-2"),
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestUpdateNegativeAllowedBySetting(t *testing.T) {
	svc, s := newTestService()
	s.settings.AllowNegativeStock = true

	resp, err := svc.Update(context.Background(), dto.UpdateInventoryRequest{
		ProductID: "p1", WarehouseID: "w1", Quantity: d("-2"),
	}, "u1")
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(d("-2")))
}

func TestMovementInOut(t *testing.T) {
	svc, s := newTestService()

	err := svc.RegisterMovement(context.Background(), dto.MovementRequest{
		Type: dto.MovementIn, ProductID: "p1", WarehouseID: "w1", Quantity: d("10"),
	}, "u1")
	require.NoError(t, err)

	err = svc.RegisterMovement(context.Background(), dto.MovementRequest{
		Type: dto.MovementOut, ProductID: "p1", WarehouseID: "w1", Quantity: d("4"),
	}, "u1")
	require.NoError(t, err)

	assert.True(t, s.rows[key("p1", "w1")].Quantity.Equal(d("6")))
	assert.Len(t, s.audit, 2)
}

func TestMovementTransfer(t *testing.T) {
	svc, s := newTestService()
	s.rows[key("p1", "w1")] = &entity.Inventory{ProductID: "p1", WarehouseID: "w1", Quantity: d("10")}

	err := svc.RegisterMovement(context.Background(), dto.MovementRequest{
		Type: dto.MovementTransfer, ProductID: "p1",
		WarehouseID: "w1", ToWarehouseID: "w2", Quantity: d("3"),
	}, "u1")
	require.NoError(t, err)

	assert.True(t, s.rows[key("p1", "w1")].Quantity.Equal(d("7")))
	assert.True(t, s.rows[key("p1", "w2")].Quantity.Equal(d("3")))
	// One audit row per side.
	assert.Len(t, s.audit, 2)
}

func TestMovementTransferNeedsDistinctDestination(t *testing.T) {
	svc, _ := newTestService()

	err := svc.RegisterMovement(context.Background(), dto.MovementRequest{
		Type: dto.MovementTransfer, ProductID: "p1",
		WarehouseID: "w1", ToWarehouseID: "w1", Quantity: d("3"),
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementTransferInsufficientStock(t *testing.T) {
	svc, _ := newTestService()

	err := svc.RegisterMovement(context.Background(), dto.MovementRequest{
		Type: dto.MovementTransfer, ProductID: "p1",
		WarehouseID: "w1", ToWarehouseID: "w2", Quantity: d("3"),
	}, "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
