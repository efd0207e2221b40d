package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable/purchasable item. Stock is tracked per warehouse in
// Inventory; CostPrice is the purchase cost, SellPrice1..4 are the configured
// price tiers (SellPrice1 is the default when an invoice line omits a price).
type Product struct {
	ID             string
	CategoryID     string
	SKU            string // unique
	Barcode        string
	Name           string
	NormalizedName string // Arabic-normalized form of Name, used for search
	Unit           string
	CostPrice      decimal.Decimal
	SellPrice1     decimal.Decimal
	SellPrice2     decimal.Decimal
	SellPrice3     decimal.Decimal
	SellPrice4     decimal.Decimal
	MinStock       decimal.Decimal // low-stock alert threshold
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
