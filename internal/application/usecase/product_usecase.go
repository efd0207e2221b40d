package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/arabic"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

// deleteZeroAttempts bounds retries when zeroing a stock row before a
// product delete.
const deleteZeroAttempts = 3

// ProductUseCase covers product CRUD. Stock itself moves through the
// inventory and invoicing services, never here.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	inventory  repository.InventoryRepository
	tx         ports.TxRunner
	log        *logger.Logger
}

// NewProductUseCase builds the use case.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	inventory repository.InventoryRepository,
	tx ports.TxRunner,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, inventory: inventory, tx: tx, log: log}
}

// Create creates a product. An empty category falls back to the default
// category when one is flagged.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.products.GetBySKU(ctx, in.SKU); err == nil && existing != nil {
		return nil, fmt.Errorf("sku %q: %w", in.SKU, domain.ErrDuplicate)
	}
	if in.CategoryID == "" {
		if def, err := uc.categories.GetDefault(ctx); err == nil && def != nil {
			in.CategoryID = def.ID
		}
	} else if _, err := uc.categories.GetByID(ctx, in.CategoryID); err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		SKU:            in.SKU,
		Barcode:        strings.TrimSpace(in.Barcode),
		Name:           in.Name,
		NormalizedName: arabic.Normalize(in.Name),
		Unit:           in.Unit,
		CostPrice:      in.CostPrice,
		SellPrice1:     in.SellPrice1,
		SellPrice2:     in.SellPrice2,
		SellPrice3:     in.SellPrice3,
		SellPrice4:     in.SellPrice4,
		MinStock:       in.MinStock,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID fetches one product.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Update applies a partial update.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if existing, err := uc.products.GetBySKU(ctx, sku); err == nil && existing != nil && existing.ID != id {
			return nil, fmt.Errorf("sku %q: %w", sku, domain.ErrDuplicate)
		}
		product.SKU = sku
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			if _, err := uc.categories.GetByID(ctx, *in.CategoryID); err != nil {
				return nil, fmt.Errorf("category: %w", err)
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
		product.NormalizedName = arabic.Normalize(name)
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SellPrice1 != nil {
		product.SellPrice1 = *in.SellPrice1
	}
	if in.SellPrice2 != nil {
		product.SellPrice2 = *in.SellPrice2
	}
	if in.SellPrice3 != nil {
		product.SellPrice3 = *in.SellPrice3
	}
	if in.SellPrice4 != nil {
		product.SellPrice4 = *in.SellPrice4
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lists products with optional category/search filters.
func (uc *ProductUseCase) List(ctx context.Context, categoryID, query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	f := repository.ProductFilter{
		CategoryID: categoryID,
		Query:      arabic.Normalize(query),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	list, err := uc.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, *dto.ToProductResponse(p))
	}
	return resp, nil
}

// Delete removes a product. Stock rows are zeroed first, each with a bounded
// retry, so the audit log records where the stock went. A product still
// referenced by invoices is refused with ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id, userID string) error {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rows, err := uc.inventory.ListByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("list stock rows: %w", err)
	}
	var failed int
	for _, row := range rows {
		if row.Quantity.IsZero() {
			continue
		}
		if err := uc.zeroRow(ctx, product.ID, row.WarehouseID, userID); err != nil {
			failed++
			uc.log.Error().Err(err).
				Str("productId", product.ID).
				Str("warehouseId", row.WarehouseID).
				Msg("could not zero stock row before delete")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d stock rows could not be zeroed: %w", failed, domain.ErrConflict)
	}
	return uc.products.Delete(ctx, id)
}

// zeroRow sets one stock row to zero inside a transaction, retrying on
// transient failure.
func (uc *ProductUseCase) zeroRow(ctx context.Context, productID, warehouseID, userID string) error {
	var lastErr error
	for attempt := 0; attempt < deleteZeroAttempts; attempt++ {
		lastErr = uc.tx.Run(ctx, func(r ports.TxRepos) error {
			inv, err := r.Inventory.GetForUpdate(ctx, productID, warehouseID)
			if err != nil {
				return err
			}
			if inv.Quantity.IsZero() {
				return nil
			}
			delta := inv.Quantity.Neg()
			inv.Quantity = decimal.Zero
			if err := r.Inventory.Upsert(ctx, inv); err != nil {
				return err
			}
			return r.InventoryTxs.Create(ctx, &entity.InventoryTransaction{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Type:        entity.InventoryTxAdjustment,
				Quantity:    delta,
				SourceType:  entity.InventorySourceCount,
				Notes:       "zeroed before product delete",
				CreatedBy:   userID,
				CreatedAt:   time.Now().UTC(),
			})
		})
		if lastErr == nil {
			return nil
		}
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return lastErr
		}
	}
	return lastErr
}
