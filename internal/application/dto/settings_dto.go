package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// UpdateSettingsRequest replaces the business settings.
type UpdateSettingsRequest struct {
	BusinessName       string          `json:"businessName" validate:"max=200"`
	Currency           string          `json:"currency" validate:"max=10"`
	DefaultWarehouseID string          `json:"defaultWarehouseId"`
	DefaultTaxRate     decimal.Decimal `json:"defaultTaxRate"`
	LowStockAlert      bool            `json:"lowStockAlert"`
	ShowCostPrice      bool            `json:"showCostPrice"`
	AllowNegativeStock bool            `json:"allowNegativeStock"`
}

// SettingsResponse is the settings output shape.
type SettingsResponse struct {
	BusinessName       string          `json:"businessName"`
	Currency           string          `json:"currency"`
	DefaultWarehouseID string          `json:"defaultWarehouseId,omitempty"`
	DefaultTaxRate     decimal.Decimal `json:"defaultTaxRate"`
	LowStockAlert      bool            `json:"lowStockAlert"`
	ShowCostPrice      bool            `json:"showCostPrice"`
	AllowNegativeStock bool            `json:"allowNegativeStock"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func ToSettingsResponse(s *entity.Settings) *SettingsResponse {
	return &SettingsResponse{
		BusinessName:       s.BusinessName,
		Currency:           s.Currency,
		DefaultWarehouseID: s.DefaultWarehouseID,
		DefaultTaxRate:     s.DefaultTaxRate,
		LowStockAlert:      s.LowStockAlert,
		ShowCostPrice:      s.ShowCostPrice,
		AllowNegativeStock: s.AllowNegativeStock,
		UpdatedAt:          s.UpdatedAt,
	}
}
