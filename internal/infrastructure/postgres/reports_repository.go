package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.ReportsRepository = (*ReportsRepo)(nil)

// ReportsRepo answers the read-only aggregation queries behind /api/reports.
// It never mutates state, so it always runs on the pool, never inside a tx.
type ReportsRepo struct {
	q Querier
}

func NewReportsRepository(q Querier) *ReportsRepo {
	return &ReportsRepo{q: q}
}

// DocumentSummary totals posted documents of one type over [from, to].
// Draft and cancelled documents are excluded.
func (r *ReportsRepo) DocumentSummary(ctx context.Context, invoiceType string, from, to time.Time) (*repository.DocumentSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(subtotal), 0),
		       COALESCE(SUM(discount), 0),
		       COALESCE(SUM(tax), 0),
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(paid), 0)
		FROM invoices
		WHERE type = $1
		  AND status IN ('posted', 'paid', 'partially_paid')
		  AND date >= $2 AND date <= $3`
	var s repository.DocumentSummary
	err := r.q.QueryRow(ctx, query, invoiceType, from, to).Scan(
		&s.Count, &s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.Paid,
	)
	if err != nil {
		return nil, fmt.Errorf("document summary: %w", err)
	}
	return &s, nil
}

func (r *ReportsRepo) DailyTotals(ctx context.Context, invoiceType string, from, to time.Time) ([]repository.DailyTotal, error) {
	query := `
		SELECT date_trunc('day', date) AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM invoices
		WHERE type = $1
		  AND status IN ('posted', 'paid', 'partially_paid')
		  AND date >= $2 AND date <= $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, invoiceType, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyTotal
	for rows.Next() {
		var d repository.DailyTotal
		if err := rows.Scan(&d.Date, &d.Count, &d.Total); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// StockValue values on-hand stock at cost, summed across warehouses.
func (r *ReportsRepo) StockValue(ctx context.Context) ([]repository.StockValueRow, error) {
	query := `
		SELECT p.id, p.name, p.sku,
		       COALESCE(SUM(i.quantity), 0) AS qty,
		       p.cost_price,
		       COALESCE(SUM(i.quantity), 0) * p.cost_price AS value
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.is_active
		GROUP BY p.id, p.name, p.sku, p.cost_price
		ORDER BY value DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock value: %w", err)
	}
	defer rows.Close()

	var out []repository.StockValueRow
	for rows.Next() {
		var v repository.StockValueRow
		if err := rows.Scan(&v.ProductID, &v.Name, &v.SKU, &v.Quantity, &v.CostPrice, &v.Value); err != nil {
			return nil, fmt.Errorf("scan stock value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ReportsRepo) LowStock(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.name, p.sku, COALESCE(SUM(i.quantity), 0) AS qty, p.min_stock
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.is_active AND p.min_stock > 0
		GROUP BY p.id, p.name, p.sku, p.min_stock
		HAVING COALESCE(SUM(i.quantity), 0) <= p.min_stock
		ORDER BY qty`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var v repository.LowStockRow
		if err := rows.Scan(&v.ProductID, &v.Name, &v.SKU, &v.Quantity, &v.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Debtors lists customers who owe the business (positive balance).
func (r *ReportsRepo) Debtors(ctx context.Context) ([]repository.AccountBalanceRow, error) {
	return r.balances(ctx, `type = 'customer' AND current_balance > 0`, `current_balance DESC`)
}

// Creditors lists suppliers the business owes (negative balance).
func (r *ReportsRepo) Creditors(ctx context.Context) ([]repository.AccountBalanceRow, error) {
	return r.balances(ctx, `type = 'supplier' AND current_balance < 0`, `current_balance ASC`)
}

func (r *ReportsRepo) balances(ctx context.Context, where, order string) ([]repository.AccountBalanceRow, error) {
	query := `
		SELECT id, name, type, current_balance
		FROM accounts
		WHERE is_active AND ` + where + `
		ORDER BY ` + order
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}
	defer rows.Close()

	var out []repository.AccountBalanceRow
	for rows.Next() {
		var v repository.AccountBalanceRow
		if err := rows.Scan(&v.AccountID, &v.Name, &v.Type, &v.Balance); err != nil {
			return nil, fmt.Errorf("scan account balance: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
