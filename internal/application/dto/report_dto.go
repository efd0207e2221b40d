package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentSummaryResponse totals documents of one type over a period.
type DocumentSummaryResponse struct {
	Count    int64           `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Paid     decimal.Decimal `json:"paid"`
}

// DailyTotalResponse is one day's totals inside a period report.
type DailyTotalResponse struct {
	Date  time.Time       `json:"date"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// SalesReportResponse answers type=sales (and type=purchases with the
// matching document type).
type SalesReportResponse struct {
	Summary DocumentSummaryResponse `json:"summary"`
	Returns DocumentSummaryResponse `json:"returns"`
	Daily   []DailyTotalResponse    `json:"daily"`
}

// StockValueResponse is one product's valuation row.
type StockValueResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Value     decimal.Decimal `json:"value"`
}

// LowStockResponse is one product below its stock threshold.
type LowStockResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	MinStock  decimal.Decimal `json:"minStock"`
}

// InventoryReportResponse answers type=inventory.
type InventoryReportResponse struct {
	TotalValue decimal.Decimal      `json:"totalValue"`
	Items      []StockValueResponse `json:"items"`
	LowStock   []LowStockResponse   `json:"lowStock"`
}

// AccountBalanceResponse is one debtor or creditor row.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountId"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountsReportResponse answers type=accounts.
type AccountsReportResponse struct {
	Debtors        []AccountBalanceResponse `json:"debtors"`
	Creditors      []AccountBalanceResponse `json:"creditors"`
	TotalDebtors   decimal.Decimal          `json:"totalDebtors"`
	TotalCreditors decimal.Decimal          `json:"totalCreditors"`
}

// DashboardResponse answers type=dashboard: today's movement at a glance.
type DashboardResponse struct {
	SalesToday     DocumentSummaryResponse `json:"salesToday"`
	PurchasesToday DocumentSummaryResponse `json:"purchasesToday"`
	StockValue     decimal.Decimal         `json:"stockValue"`
	LowStockCount  int                     `json:"lowStockCount"`
	DebtorsTotal   decimal.Decimal         `json:"debtorsTotal"`
	CreditorsTotal decimal.Decimal         `json:"creditorsTotal"`
}
