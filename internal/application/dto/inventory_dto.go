package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// UpdateInventoryRequest adjusts stock for one (product, warehouse) pair.
// With IsCount true, Quantity is the absolute counted quantity; otherwise it
// is a signed delta.
type UpdateInventoryRequest struct {
	ProductID   string          `json:"productId" validate:"required"`
	WarehouseID string          `json:"warehouseId" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	IsCount     bool            `json:"isCount"`
	Notes       string          `json:"notes"`
}

// Manual movement kinds accepted by /api/inventory/movements.
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementAdjustment = "adjustment"
	MovementTransfer   = "transfer"
)

// MovementRequest registers a manual stock movement. Transfer requires
// ToWarehouseID and moves the quantity between warehouses.
type MovementRequest struct {
	Type          string          `json:"type" validate:"required,oneof=in out adjustment transfer"`
	ProductID     string          `json:"productId" validate:"required"`
	WarehouseID   string          `json:"warehouseId" validate:"required"`
	ToWarehouseID string          `json:"toWarehouseId"`
	Quantity      decimal.Decimal `json:"quantity"`
	Notes         string          `json:"notes"`
}

// InventoryResponse is one stock row.
type InventoryResponse struct {
	ProductID   string          `json:"productId"`
	WarehouseID string          `json:"warehouseId"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InventoryListResponse is a paged stock listing.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// InventoryTransactionResponse is one audit-log row.
type InventoryTransactionResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	WarehouseID string          `json:"warehouseId"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	SourceType  string          `json:"sourceType"`
	SourceID    string          `json:"sourceId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func ToInventoryResponse(i *entity.Inventory) *InventoryResponse {
	return &InventoryResponse{
		ProductID:   i.ProductID,
		WarehouseID: i.WarehouseID,
		Quantity:    i.Quantity,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ToInventoryTransactionResponse(t *entity.InventoryTransaction) *InventoryTransactionResponse {
	return &InventoryTransactionResponse{
		ID:          t.ID,
		ProductID:   t.ProductID,
		WarehouseID: t.WarehouseID,
		Type:        t.Type,
		Quantity:    t.Quantity,
		SourceType:  t.SourceType,
		SourceID:    t.SourceID,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}
