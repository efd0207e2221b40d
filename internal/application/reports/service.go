// Package reports builds the aggregated views behind /api/reports.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// Report types accepted by the endpoint.
const (
	TypeSales     = "sales"
	TypePurchases = "purchases"
	TypeInventory = "inventory"
	TypeAccounts  = "accounts"
	TypeDashboard = "dashboard"
)

// Service answers report queries from the aggregation repository.
type Service struct {
	repo repository.ReportsRepository
}

func NewService(repo repository.ReportsRepository) *Service {
	return &Service{repo: repo}
}

// Period defaults: start of the current month through now.
func defaultPeriod(from, to time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return from, to
}

// Build dispatches on the report type.
func (s *Service) Build(ctx context.Context, reportType string, from, to time.Time) (any, error) {
	from, to = defaultPeriod(from, to)
	switch reportType {
	case TypeSales:
		return s.documents(ctx, entity.InvoiceTypeSale, entity.InvoiceTypeSaleReturn, from, to)
	case TypePurchases:
		return s.documents(ctx, entity.InvoiceTypePurchase, entity.InvoiceTypePurchaseReturn, from, to)
	case TypeInventory:
		return s.inventory(ctx)
	case TypeAccounts:
		return s.accounts(ctx)
	case TypeDashboard:
		return s.dashboard(ctx)
	}
	return nil, domain.ErrInvalidInput
}

func toSummary(in *repository.DocumentSummary) dto.DocumentSummaryResponse {
	return dto.DocumentSummaryResponse{
		Count:    in.Count,
		Subtotal: in.Subtotal,
		Discount: in.Discount,
		Tax:      in.Tax,
		Total:    in.Total,
		Paid:     in.Paid,
	}
}

func (s *Service) documents(ctx context.Context, mainType, returnType string, from, to time.Time) (*dto.SalesReportResponse, error) {
	summary, err := s.repo.DocumentSummary(ctx, mainType, from, to)
	if err != nil {
		return nil, err
	}
	returns, err := s.repo.DocumentSummary(ctx, returnType, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyTotals(ctx, mainType, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesReportResponse{Summary: toSummary(summary), Returns: toSummary(returns)}
	for _, day := range daily {
		resp.Daily = append(resp.Daily, dto.DailyTotalResponse{Date: day.Date, Count: day.Count, Total: day.Total})
	}
	return resp, nil
}

func (s *Service) inventory(ctx context.Context) (*dto.InventoryReportResponse, error) {
	values, err := s.repo.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryReportResponse{TotalValue: decimal.Zero}
	for _, v := range values {
		resp.TotalValue = resp.TotalValue.Add(v.Value)
		resp.Items = append(resp.Items, dto.StockValueResponse{
			ProductID: v.ProductID, Name: v.Name, SKU: v.SKU,
			Quantity: v.Quantity, CostPrice: v.CostPrice, Value: v.Value,
		})
	}
	for _, l := range low {
		resp.LowStock = append(resp.LowStock, dto.LowStockResponse{
			ProductID: l.ProductID, Name: l.Name, SKU: l.SKU,
			Quantity: l.Quantity, MinStock: l.MinStock,
		})
	}
	return resp, nil
}

func (s *Service) accounts(ctx context.Context) (*dto.AccountsReportResponse, error) {
	debtors, err := s.repo.Debtors(ctx)
	if err != nil {
		return nil, err
	}
	creditors, err := s.repo.Creditors(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.AccountsReportResponse{
		TotalDebtors:   decimal.Zero,
		TotalCreditors: decimal.Zero,
	}
	for _, row := range debtors {
		resp.TotalDebtors = resp.TotalDebtors.Add(row.Balance)
		resp.Debtors = append(resp.Debtors, dto.AccountBalanceResponse{
			AccountID: row.AccountID, Name: row.Name, Type: row.Type, Balance: row.Balance,
		})
	}
	for _, row := range creditors {
		resp.TotalCreditors = resp.TotalCreditors.Add(row.Balance)
		resp.Creditors = append(resp.Creditors, dto.AccountBalanceResponse{
			AccountID: row.AccountID, Name: row.Name, Type: row.Type, Balance: row.Balance,
		})
	}
	return resp, nil
}

func (s *Service) dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	sales, err := s.repo.DocumentSummary(ctx, entity.InvoiceTypeSale, dayStart, now)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repo.DocumentSummary(ctx, entity.InvoiceTypePurchase, dayStart, now)
	if err != nil {
		return nil, err
	}
	values, err := s.repo.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.repo.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	debtors, err := s.repo.Debtors(ctx)
	if err != nil {
		return nil, err
	}
	creditors, err := s.repo.Creditors(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		SalesToday:     toSummary(sales),
		PurchasesToday: toSummary(purchases),
		StockValue:     decimal.Zero,
		LowStockCount:  len(low),
		DebtorsTotal:   decimal.Zero,
		CreditorsTotal: decimal.Zero,
	}
	for _, v := range values {
		resp.StockValue = resp.StockValue.Add(v.Value)
	}
	for _, row := range debtors {
		resp.DebtorsTotal = resp.DebtorsTotal.Add(row.Balance)
	}
	for _, row := range creditors {
		resp.CreditorsTotal = resp.CreditorsTotal.Add(row.Balance)
	}
	return resp, nil
}
