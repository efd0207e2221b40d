package repository

import (
	"context"
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Type      string
	Status    string
	AccountID string
	DateFrom  time.Time
	DateTo    time.Time
	Limit     int
	Offset    int
}

// InvoiceRepository is the persistence port for invoice headers and lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateDetail(ctx context.Context, detail *entity.InvoiceDetail) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetDetails(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error)
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteDetails(ctx context.Context, invoiceID string) error
	Delete(ctx context.Context, id string) error
	// NextNumber reserves the next sequential number for a document type.
	// Must be called inside the posting transaction.
	NextNumber(ctx context.Context, invoiceType string) (int64, error)
}
