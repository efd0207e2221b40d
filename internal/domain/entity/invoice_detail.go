package entity

import "github.com/shopspring/decimal"

// InvoiceDetail is one line of an invoice. Total = round2(Quantity × UnitPrice);
// Discount and Tax are line-level amounts that roll up into the header.
type InvoiceDetail struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}
