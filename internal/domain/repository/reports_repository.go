package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentSummary aggregates posted documents of one type over a period.
type DocumentSummary struct {
	Count    int64
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Paid     decimal.Decimal
}

// DailyTotal is one day's document total inside a period.
type DailyTotal struct {
	Date  time.Time
	Count int64
	Total decimal.Decimal
}

// StockValueRow is the valuation of one product across warehouses.
type StockValueRow struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  decimal.Decimal
	CostPrice decimal.Decimal
	Value     decimal.Decimal // Quantity × CostPrice
}

// LowStockRow is a product whose total quantity fell below its threshold.
type LowStockRow struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  decimal.Decimal
	MinStock  decimal.Decimal
}

// AccountBalanceRow is an account with a non-zero balance, for the
// debtors/creditors report.
type AccountBalanceRow struct {
	AccountID string
	Name      string
	Type      string
	Balance   decimal.Decimal
}

// ReportsRepository is the read-only aggregation port behind /api/reports.
type ReportsRepository interface {
	DocumentSummary(ctx context.Context, invoiceType string, from, to time.Time) (*DocumentSummary, error)
	DailyTotals(ctx context.Context, invoiceType string, from, to time.Time) ([]DailyTotal, error)
	StockValue(ctx context.Context) ([]StockValueRow, error)
	LowStock(ctx context.Context) ([]LowStockRow, error)
	// Debtors returns customers with positive balances; Creditors returns
	// suppliers with negative balances (see the account sign convention).
	Debtors(ctx context.Context) ([]AccountBalanceRow, error)
	Creditors(ctx context.Context) ([]AccountBalanceRow, error)
}
