package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// InvoiceLineRequest is one line of an invoice save request. UnitPrice zero
// falls back to the product's first sell price (sales) or cost price
// (purchases). Discount and Tax are line-level amounts.
type InvoiceLineRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
}

// SaveInvoiceRequest creates or replaces an invoice. Totals are computed
// server-side; any client-sent totals are ignored. Status draft defers side
// effects; status posted applies them in the same transaction.
type SaveInvoiceRequest struct {
	Type           string               `json:"type" validate:"required,oneof=sale purchase sale_return purchase_return"`
	AccountID      string               `json:"accountId" validate:"required"`
	WarehouseID    string               `json:"warehouseId"`
	Date           time.Time            `json:"date"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
	TaxRate        decimal.Decimal      `json:"taxRate"`
	Paid           decimal.Decimal      `json:"paid"`
	Status         string               `json:"status" validate:"omitempty,oneof=draft posted"`
	Notes          string               `json:"notes"`
	Lines          []InvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ChangeStatusRequest moves an invoice along its status machine.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=posted paid partially_paid cancelled"`
}

// InvoiceLineResponse is one line in an invoice response.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// InvoiceResponse is the invoice output shape. Lines are present on detail
// fetches and omitted from listings.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	Type           string                `json:"type"`
	Number         int64                 `json:"number"`
	AccountID      string                `json:"accountId"`
	WarehouseID    string                `json:"warehouseId"`
	Date           time.Time             `json:"date"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	DiscountAmount decimal.Decimal       `json:"discountAmount"`
	Discount       decimal.Decimal       `json:"discount"`
	TaxRate        decimal.Decimal       `json:"taxRate"`
	Tax            decimal.Decimal       `json:"tax"`
	Total          decimal.Decimal       `json:"total"`
	Paid           decimal.Decimal       `json:"paid"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	CreatedBy      string                `json:"createdBy,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
}

// InvoiceListResponse is a paged invoice listing.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

func ToInvoiceResponse(inv *entity.Invoice, details []*entity.InvoiceDetail) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:             inv.ID,
		Type:           inv.Type,
		Number:         inv.Number,
		AccountID:      inv.AccountID,
		WarehouseID:    inv.WarehouseID,
		Date:           inv.Date,
		Subtotal:       inv.Subtotal,
		DiscountAmount: inv.DiscountAmount,
		Discount:       inv.Discount,
		TaxRate:        inv.TaxRate,
		Tax:            inv.Tax,
		Total:          inv.Total,
		Paid:           inv.Paid,
		Status:         inv.Status,
		Notes:          inv.Notes,
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Discount:  d.Discount,
			Tax:       d.Tax,
			Total:     d.Total,
		})
	}
	return resp
}
