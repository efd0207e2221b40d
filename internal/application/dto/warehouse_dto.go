package dto

import (
	"time"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// CreateWarehouseRequest is the input for creating a warehouse.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Address   string `json:"address"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateWarehouseRequest is the input for a partial warehouse update.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address   *string `json:"address"`
	IsDefault *bool   `json:"isDefault"`
	IsActive  *bool   `json:"isActive"`
}

// WarehouseResponse is the warehouse output shape.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsDefault bool      `json:"isDefault"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToWarehouseResponse(w *entity.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		IsDefault: w.IsDefault,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
