package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// WarehouseUseCase covers warehouse CRUD with single-default handling.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
}

func NewWarehouseUseCase(warehouses repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses}
}

func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.IsDefault {
		if err := uc.warehouses.ClearDefault(ctx); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		IsDefault: in.IsDefault,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *dto.ToWarehouseResponse(w))
	}
	return out, nil
}

func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		warehouse.Name = name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsDefault != nil && *in.IsDefault != warehouse.IsDefault {
		if *in.IsDefault {
			if err := uc.warehouses.ClearDefault(ctx); err != nil {
				return nil, err
			}
		}
		warehouse.IsDefault = *in.IsDefault
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now().UTC()
	if err := uc.warehouses.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

// Delete removes a warehouse. Stock or document references surface as
// ErrConflict from the repository.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.warehouses.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.warehouses.Delete(ctx, id)
}
