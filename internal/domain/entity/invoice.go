package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice document types. Sales and purchases share one table; returns are
// separate types so stock and balance directions stay explicit.
const (
	InvoiceTypeSale           = "sale"
	InvoiceTypePurchase       = "purchase"
	InvoiceTypeSaleReturn     = "sale_return"
	InvoiceTypePurchaseReturn = "purchase_return"
)

// Invoice statuses. Only the transition into posted carries inventory and
// balance side effects.
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusPosted        = "posted"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusCancelled     = "cancelled"
)

// Invoice is a sales or purchase document header. Subtotal, Discount, Tax and
// Total are the aggregated amounts; DiscountAmount and TaxRate are the
// header-level inputs that fed the aggregation.
type Invoice struct {
	ID             string
	Type           string
	Number         int64 // sequential per type
	AccountID      string
	WarehouseID    string
	Date           time.Time
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal // header-level discount input
	Discount       decimal.Decimal // line discounts + DiscountAmount
	TaxRate        decimal.Decimal // header tax percentage input
	Tax            decimal.Decimal // line taxes + header tax
	Total          decimal.Decimal
	Paid           decimal.Decimal
	Status         string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidInvoiceType reports whether t is a known document type.
func IsValidInvoiceType(t string) bool {
	switch t {
	case InvoiceTypeSale, InvoiceTypePurchase, InvoiceTypeSaleReturn, InvoiceTypePurchaseReturn:
		return true
	}
	return false
}

// StockDirection returns the sign applied to inventory quantities when a
// document of type t is posted: sales remove stock, purchases add it, and
// returns go the other way.
func StockDirection(t string) decimal.Decimal {
	switch t {
	case InvoiceTypePurchase, InvoiceTypeSaleReturn:
		return decimal.NewFromInt(1)
	case InvoiceTypeSale, InvoiceTypePurchaseReturn:
		return decimal.NewFromInt(-1)
	}
	return decimal.Zero
}

// BalanceDirection returns the sign applied to the counterparty account
// balance when a document of type t is posted for its total. A sale increases
// what the customer owes (debtor); a purchase decreases the supplier balance
// (the business owes).
func BalanceDirection(t string) decimal.Decimal {
	switch t {
	case InvoiceTypeSale, InvoiceTypePurchaseReturn:
		return decimal.NewFromInt(1)
	case InvoiceTypePurchase, InvoiceTypeSaleReturn:
		return decimal.NewFromInt(-1)
	}
	return decimal.Zero
}

// InventoryTxType maps a document type to the audit row type recorded for
// its stock movements.
func InventoryTxType(t string) string {
	switch t {
	case InvoiceTypeSale:
		return InventoryTxSale
	case InvoiceTypePurchase:
		return InventoryTxPurchase
	case InvoiceTypeSaleReturn, InvoiceTypePurchaseReturn:
		return InventoryTxReturn
	}
	return InventoryTxAdjustment
}

// CanTransition reports whether a status change from -> to is allowed:
// draft -> posted -> {paid, partially_paid, cancelled}.
func CanTransition(from, to string) bool {
	switch from {
	case InvoiceStatusDraft:
		return to == InvoiceStatusPosted
	case InvoiceStatusPosted:
		return to == InvoiceStatusPaid || to == InvoiceStatusPartiallyPaid || to == InvoiceStatusCancelled
	case InvoiceStatusPartiallyPaid:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled
	}
	return false
}
