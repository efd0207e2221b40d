package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single-row process-wide configuration (id = 1).
type Settings struct {
	ID                 int
	BusinessName       string
	Currency           string
	DefaultWarehouseID string
	DefaultTaxRate     decimal.Decimal
	LowStockAlert      bool
	ShowCostPrice      bool
	AllowNegativeStock bool
	UpdatedAt          time.Time
}
