package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory transaction types.
const (
	InventoryTxPurchase   = "purchase"
	InventoryTxSale       = "sale"
	InventoryTxAdjustment = "adjustment"
	InventoryTxTransfer   = "transfer"
	InventoryTxReturn     = "return"
)

// Source document types for inventory transactions.
const (
	InventorySourceInvoice  = "invoice"
	InventorySourceManual   = "manual"
	InventorySourceCount    = "count" // absolute stock count (isCount=true)
	InventorySourceTransfer = "transfer"
	InventorySourceReversal = "reversal" // reversal of a previously posted document
)

// InventoryTransaction is an immutable audit record of a stock movement.
// Quantity is the signed delta applied to the inventory row.
type InventoryTransaction struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal
	SourceType  string
	SourceID    string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}
