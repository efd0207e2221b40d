package repository

import (
	"context"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// WarehouseRepository is the persistence port for Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, id string) error
	ClearDefault(ctx context.Context) error
	GetDefault(ctx context.Context) (*entity.Warehouse, error)
}
