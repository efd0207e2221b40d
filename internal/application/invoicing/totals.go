package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/money"
)

// Totals are the aggregated amounts of one document.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals aggregates invoice lines with the header discount amount and
// header tax rate. Every step rounds to 2 decimals; see the money package for
// why the per-step policy matters. Line totals must already be rounded
// (money.Line does that).
func ComputeTotals(details []*entity.InvoiceDetail, headerDiscount, headerTaxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	lineDiscount := decimal.Zero
	lineTax := decimal.Zero
	for _, d := range details {
		subtotal = subtotal.Add(d.Total)
		lineDiscount = lineDiscount.Add(d.Discount)
		lineTax = lineTax.Add(d.Tax)
	}
	subtotal = money.Round2(subtotal)
	discount := money.Round2(lineDiscount.Add(headerDiscount))
	headerTax := money.Percent(subtotal.Sub(discount), headerTaxRate)
	tax := money.Round2(lineTax.Add(headerTax))
	total := money.Round2(subtotal.Sub(discount).Add(tax))
	return Totals{Subtotal: subtotal, Discount: discount, Tax: tax, Total: total}
}
