// Package inventory adjusts per-warehouse stock and records the movement
// audit log.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// Service covers direct stock adjustments and manual movements. Invoice
// posting moves stock through the invoicing service instead.
type Service struct {
	inventory repository.InventoryRepository
	invTxs    repository.InventoryTransactionRepository
	settings  repository.SettingsRepository
	tx        ports.TxRunner
}

// NewService builds the service.
func NewService(
	inventory repository.InventoryRepository,
	invTxs repository.InventoryTransactionRepository,
	settings repository.SettingsRepository,
	tx ports.TxRunner,
) *Service {
	return &Service{inventory: inventory, invTxs: invTxs, settings: settings, tx: tx}
}

// List lists stock rows.
func (s *Service) List(ctx context.Context, productID, warehouseID string, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.DefaultPage()
	list, err := s.inventory.List(ctx, repository.InventoryFilter{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryListResponse{
		Items: make([]dto.InventoryResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, row := range list {
		resp.Items = append(resp.Items, *dto.ToInventoryResponse(row))
	}
	return resp, nil
}

// History lists the audit log for one product.
func (s *Service) History(ctx context.Context, productID string, page dto.PageRequest) ([]dto.InventoryTransactionResponse, error) {
	page.DefaultPage()
	list, err := s.invTxs.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *dto.ToInventoryTransactionResponse(t))
	}
	return out, nil
}

// Update adjusts one stock row. With IsCount the quantity is the counted
// absolute value and the applied delta is (counted − current); a zero delta
// writes nothing, so re-submitting the same count is a no-op. Without IsCount
// the quantity is the delta itself.
func (s *Service) Update(ctx context.Context, in dto.UpdateInventoryRequest, userID string) (*dto.InventoryResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.IsCount && in.Quantity.IsNegative() {
		return nil, fmt.Errorf("counted quantity cannot be negative: %w", domain.ErrInvalidInput)
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	var result *entity.Inventory
	err = s.tx.Run(ctx, func(r ports.TxRepos) error {
		inv, err := r.Inventory.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}

		delta := in.Quantity
		sourceType := entity.InventorySourceManual
		if in.IsCount {
			delta = in.Quantity.Sub(inv.Quantity)
			sourceType = entity.InventorySourceCount
		}
		if delta.IsZero() {
			result = inv
			return nil
		}

		next := inv.Quantity.Add(delta)
		if next.IsNegative() && !cfg.AllowNegativeStock {
			return fmt.Errorf("product %s at %s: %w", in.ProductID, in.WarehouseID, domain.ErrInsufficientStock)
		}
		inv.Quantity = next
		if err := r.Inventory.Upsert(ctx, inv); err != nil {
			return err
		}
		if err := r.InventoryTxs.Create(ctx, &entity.InventoryTransaction{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Type:        entity.InventoryTxAdjustment,
			Quantity:    delta,
			SourceType:  sourceType,
			Notes:       in.Notes,
			CreatedBy:   userID,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(result), nil
}

// RegisterMovement applies a manual movement: in adds, out removes,
// adjustment applies a signed delta, transfer moves stock between two
// warehouses writing one audit row per side.
func (s *Service) RegisterMovement(ctx context.Context, in dto.MovementRequest, userID string) error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return fmt.Errorf("zero quantity: %w", domain.ErrInvalidInput)
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}

	switch in.Type {
	case dto.MovementIn, dto.MovementOut, dto.MovementAdjustment:
		if in.Quantity.IsNegative() && in.Type != dto.MovementAdjustment {
			return fmt.Errorf("negative quantity: %w", domain.ErrInvalidInput)
		}
		delta := in.Quantity
		if in.Type == dto.MovementOut {
			delta = delta.Neg()
		}
		return s.tx.Run(ctx, func(r ports.TxRepos) error {
			return applyDelta(ctx, r, in.ProductID, in.WarehouseID, delta,
				entity.InventoryTxAdjustment, entity.InventorySourceManual, in.Notes, userID,
				cfg.AllowNegativeStock)
		})

	case dto.MovementTransfer:
		if in.ToWarehouseID == "" || in.ToWarehouseID == in.WarehouseID {
			return fmt.Errorf("transfer needs a distinct destination: %w", domain.ErrInvalidInput)
		}
		if in.Quantity.IsNegative() {
			return fmt.Errorf("negative quantity: %w", domain.ErrInvalidInput)
		}
		return s.tx.Run(ctx, func(r ports.TxRepos) error {
			if err := applyDelta(ctx, r, in.ProductID, in.WarehouseID, in.Quantity.Neg(),
				entity.InventoryTxTransfer, entity.InventorySourceTransfer, in.Notes, userID,
				cfg.AllowNegativeStock); err != nil {
				return err
			}
			return applyDelta(ctx, r, in.ProductID, in.ToWarehouseID, in.Quantity,
				entity.InventoryTxTransfer, entity.InventorySourceTransfer, in.Notes, userID,
				cfg.AllowNegativeStock)
		})
	}
	return domain.ErrInvalidInput
}

// applyDelta locks the stock row, applies the delta and writes the audit row.
func applyDelta(
	ctx context.Context,
	r ports.TxRepos,
	productID, warehouseID string,
	delta decimal.Decimal,
	txType, sourceType, notes, userID string,
	allowNegative bool,
) error {
	inv, err := r.Inventory.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return err
	}
	next := inv.Quantity.Add(delta)
	if next.IsNegative() && !allowNegative {
		return fmt.Errorf("product %s at %s: %w", productID, warehouseID, domain.ErrInsufficientStock)
	}
	inv.Quantity = next
	if err := r.Inventory.Upsert(ctx, inv); err != nil {
		return err
	}
	return r.InventoryTxs.Create(ctx, &entity.InventoryTransaction{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        txType,
		Quantity:    delta,
		SourceType:  sourceType,
		Notes:       notes,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	})
}
