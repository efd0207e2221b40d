package usecase

import (
	"context"
	"fmt"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// SettingsUseCase reads and replaces the single business settings row.
type SettingsUseCase struct {
	settings   repository.SettingsRepository
	warehouses repository.WarehouseRepository
}

func NewSettingsUseCase(settings repository.SettingsRepository, warehouses repository.WarehouseRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, warehouses: warehouses}
}

func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSettingsResponse(s), nil
}

func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if in.DefaultWarehouseID != "" {
		if _, err := uc.warehouses.GetByID(ctx, in.DefaultWarehouseID); err != nil {
			return nil, fmt.Errorf("default warehouse: %w", err)
		}
	}
	s := &entity.Settings{
		ID:                 1,
		BusinessName:       in.BusinessName,
		Currency:           in.Currency,
		DefaultWarehouseID: in.DefaultWarehouseID,
		DefaultTaxRate:     in.DefaultTaxRate,
		LowStockAlert:      in.LowStockAlert,
		ShowCostPrice:      in.ShowCostPrice,
		AllowNegativeStock: in.AllowNegativeStock,
	}
	if err := uc.settings.Update(ctx, s); err != nil {
		return nil, err
	}
	saved, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToSettingsResponse(saved), nil
}
