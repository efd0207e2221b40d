package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateProductRequest is the input for creating a product.
type CreateProductRequest struct {
	CategoryID string          `json:"categoryId"`
	SKU        string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Unit       string          `json:"unit"`
	CostPrice  decimal.Decimal `json:"costPrice"`
	SellPrice1 decimal.Decimal `json:"sellPrice1"`
	SellPrice2 decimal.Decimal `json:"sellPrice2"`
	SellPrice3 decimal.Decimal `json:"sellPrice3"`
	SellPrice4 decimal.Decimal `json:"sellPrice4"`
	MinStock   decimal.Decimal `json:"minStock"`
}

// UpdateProductRequest is the input for a partial product update.
type UpdateProductRequest struct {
	CategoryID *string          `json:"categoryId"`
	SKU        *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Barcode    *string          `json:"barcode"`
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Unit       *string          `json:"unit"`
	CostPrice  *decimal.Decimal `json:"costPrice"`
	SellPrice1 *decimal.Decimal `json:"sellPrice1"`
	SellPrice2 *decimal.Decimal `json:"sellPrice2"`
	SellPrice3 *decimal.Decimal `json:"sellPrice3"`
	SellPrice4 *decimal.Decimal `json:"sellPrice4"`
	MinStock   *decimal.Decimal `json:"minStock"`
	IsActive   *bool            `json:"isActive"`
}

// ProductResponse is the product output shape.
type ProductResponse struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId,omitempty"`
	SKU        string          `json:"sku"`
	Barcode    string          `json:"barcode,omitempty"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit,omitempty"`
	CostPrice  decimal.Decimal `json:"costPrice"`
	SellPrice1 decimal.Decimal `json:"sellPrice1"`
	SellPrice2 decimal.Decimal `json:"sellPrice2"`
	SellPrice3 decimal.Decimal `json:"sellPrice3"`
	SellPrice4 decimal.Decimal `json:"sellPrice4"`
	MinStock   decimal.Decimal `json:"minStock"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProductListResponse is a paged product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse maps the entity to its output shape.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		SKU:        p.SKU,
		Barcode:    p.Barcode,
		Name:       p.Name,
		Unit:       p.Unit,
		CostPrice:  p.CostPrice,
		SellPrice1: p.SellPrice1,
		SellPrice2: p.SellPrice2,
		SellPrice3: p.SellPrice3,
		SellPrice4: p.SellPrice4,
		MinStock:   p.MinStock,
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
