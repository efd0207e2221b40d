package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory is the current quantity of a product at a warehouse. Rows are
// created lazily on the first stock movement for a (product, warehouse) pair
// and updated in place thereafter. Unique per pair.
type Inventory struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
