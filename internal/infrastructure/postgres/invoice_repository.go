package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, type, number, account_id, warehouse_id, date,
	subtotal, discount_amount, discount, tax_rate, tax, total, paid,
	status, notes, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Type, &inv.Number, &inv.AccountID, &inv.WarehouseID, &inv.Date,
		&inv.Subtotal, &inv.DiscountAmount, &inv.Discount, &inv.TaxRate, &inv.Tax, &inv.Total, &inv.Paid,
		&inv.Status, &inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persists an invoice header.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Type, inv.Number, inv.AccountID, inv.WarehouseID, inv.Date,
		inv.Subtotal, inv.DiscountAmount, inv.Discount, inv.TaxRate, inv.Tax, inv.Total, inv.Paid,
		inv.Status, inv.Notes, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persists one line.
func (r *InvoiceRepo) CreateDetail(ctx context.Context, d *entity.InvoiceDetail) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, quantity, unit_price, discount, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.InvoiceID, d.ProductID, d.Quantity, d.UnitPrice, d.Discount, d.Tax, d.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID returns an invoice header by ID, or nil when missing.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetDetails returns all lines of an invoice.
func (r *InvoiceRepo) GetDetails(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, discount, tax, total
		FROM invoice_details WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Discount, &d.Tax, &d.Total); err != nil {
			return nil, fmt.Errorf("scan invoice detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List returns invoice headers matching the filter, newest first.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR account_id = $3)
		  AND ($4::timestamptz IS NULL OR date >= $4)
		  AND ($5::timestamptz IS NULL OR date <= $5)
		ORDER BY date DESC, number DESC
		LIMIT $6 OFFSET $7`
	from := nullIfZeroTime(f.DateFrom)
	to := nullIfZeroTime(f.DateTo)
	rows, err := r.q.Query(ctx, query, f.Type, f.Status, f.AccountID, from, to, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update rewrites the invoice header.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET account_id = $2, warehouse_id = $3, date = $4, subtotal = $5,
		    discount_amount = $6, discount = $7, tax_rate = $8, tax = $9,
		    total = $10, paid = $11, status = $12, notes = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.AccountID, inv.WarehouseID, inv.Date, inv.Subtotal,
		inv.DiscountAmount, inv.Discount, inv.TaxRate, inv.Tax,
		inv.Total, inv.Paid, inv.Status, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status column.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// DeleteDetails removes all lines of an invoice.
func (r *InvoiceRepo) DeleteDetails(ctx context.Context, invoiceID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoice_details WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice details: %w", err)
	}
	return nil
}

// Delete removes an invoice header.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// NextNumber reserves the next sequential number for a document type. The
// aggregate runs inside the caller's transaction, so two concurrent postings
// of the same type serialize on the unique (type, number) index.
func (r *InvoiceRepo) NextNumber(ctx context.Context, invoiceType string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM invoices WHERE type = $1`, invoiceType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}
