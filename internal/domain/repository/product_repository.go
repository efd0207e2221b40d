package repository

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID string
	Query      string // normalized-name or SKU substring search
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// CountByCategory counts products referencing a category; used to refuse
	// deleting a category that would orphan products.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}
