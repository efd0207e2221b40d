// Package money holds the rounding policy for monetary amounts.
//
// Every aggregation step rounds to 2 decimal places, not only the final
// result. Stored documents were computed this way and recomputing totals
// with end-only rounding can drift by a cent.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line returns the rounded line total quantity × unitPrice.
func Line(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(unitPrice))
}

// Percent returns the rounded percentage ratePercent of amount.
func Percent(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(ratePercent).Div(hundred))
}
