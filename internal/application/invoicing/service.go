// Package invoicing is the document engine: it computes totals and applies
// the stock and balance side effects of posting sales, purchases and returns.
package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ports"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/money"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

// Service creates, edits, posts and deletes invoices. Everything that touches
// stock or balances runs inside one database transaction.
type Service struct {
	invoices   repository.InvoiceRepository
	accounts   repository.AccountRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	settings   repository.SettingsRepository
	tx         ports.TxRunner
	log        *logger.Logger
}

// NewService builds the service.
func NewService(
	invoices repository.InvoiceRepository,
	accounts repository.AccountRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
	settings repository.SettingsRepository,
	tx ports.TxRunner,
	log *logger.Logger,
) *Service {
	return &Service{
		invoices:   invoices,
		accounts:   accounts,
		products:   products,
		warehouses: warehouses,
		settings:   settings,
		tx:         tx,
		log:        log,
	}
}

// Create saves a new invoice. Draft saves have no side effects; a save with
// status posted applies stock and balance effects in the same transaction
// that writes the document.
func (s *Service) Create(ctx context.Context, in dto.SaveInvoiceRequest, userID string) (*dto.InvoiceResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	inv, details, err := s.prepare(ctx, in, userID, cfg)
	if err != nil {
		return nil, err
	}
	inv.ID = uuid.New().String()
	for _, d := range details {
		d.InvoiceID = inv.ID
	}

	err = s.tx.Run(ctx, func(r ports.TxRepos) error {
		number, err := r.Invoices.NextNumber(ctx, inv.Type)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		for _, d := range details {
			if err := r.Invoices.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		if inv.Status == entity.InvoiceStatusPosted {
			return applyEffects(ctx, r, inv, details, cfg.AllowNegativeStock, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("invoiceId", inv.ID).Str("type", inv.Type).Int64("number", inv.Number).
		Str("status", inv.Status).Msg("invoice created")
	return dto.ToInvoiceResponse(inv, details), nil
}

// GetByID fetches one invoice with its lines.
func (s *Service) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.invoices.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceResponse(inv, details), nil
}

// List lists invoice headers.
func (s *Service) List(ctx context.Context, f repository.InvoiceFilter, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	f.Limit = page.Limit
	f.Offset = page.Offset
	list, err := s.invoices.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, inv := range list {
		resp.Items = append(resp.Items, *dto.ToInvoiceResponse(inv, nil))
	}
	return resp, nil
}

// Update replaces an invoice. Editing a posted document first reverses its
// prior stock and balance effects, then applies the new ones, all in one
// transaction, so a quantity edit Q1 to Q2 nets exactly Q2−Q1 on stock.
// Paid and cancelled documents cannot be edited.
func (s *Service) Update(ctx context.Context, id string, in dto.SaveInvoiceRequest, userID string) (*dto.InvoiceResponse, error) {
	prior, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch prior.Status {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusPosted:
	default:
		return nil, fmt.Errorf("invoice in status %s cannot be edited: %w", prior.Status, domain.ErrConflict)
	}
	if in.Type != prior.Type {
		return nil, fmt.Errorf("document type cannot change: %w", domain.ErrInvalidInput)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	inv, details, err := s.prepare(ctx, in, userID, cfg)
	if err != nil {
		return nil, err
	}
	inv.ID = prior.ID
	inv.Number = prior.Number
	inv.CreatedBy = prior.CreatedBy
	inv.CreatedAt = prior.CreatedAt
	for _, d := range details {
		d.InvoiceID = inv.ID
	}
	// A posted document stays posted through an edit; a draft may post now.
	if prior.Status == entity.InvoiceStatusPosted {
		inv.Status = entity.InvoiceStatusPosted
	}

	err = s.tx.Run(ctx, func(r ports.TxRepos) error {
		if prior.Status == entity.InvoiceStatusPosted {
			priorDetails, err := r.Invoices.GetDetails(ctx, id)
			if err != nil {
				return err
			}
			if err := reverseEffects(ctx, r, prior, priorDetails, userID); err != nil {
				return err
			}
		}
		if err := r.Invoices.DeleteDetails(ctx, id); err != nil {
			return err
		}
		if err := r.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		for _, d := range details {
			if err := r.Invoices.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		if inv.Status == entity.InvoiceStatusPosted {
			return applyEffects(ctx, r, inv, details, cfg.AllowNegativeStock, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("invoiceId", inv.ID).Str("status", inv.Status).Msg("invoice updated")
	return dto.ToInvoiceResponse(inv, details), nil
}

// ChangeStatus moves an invoice along draft → posted → {paid, partially_paid,
// cancelled}. Only the transition into posted carries side effects;
// cancelling does not reverse them (delete the document to undo its effects).
func (s *Service) ChangeStatus(ctx context.Context, id, status, userID string) (*dto.InvoiceResponse, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(inv.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", inv.Status, status, domain.ErrInvalidTransition)
	}

	if status == entity.InvoiceStatusPosted {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		err = s.tx.Run(ctx, func(r ports.TxRepos) error {
			details, err := r.Invoices.GetDetails(ctx, id)
			if err != nil {
				return err
			}
			if err := applyEffects(ctx, r, inv, details, cfg.AllowNegativeStock, userID); err != nil {
				return err
			}
			return r.Invoices.UpdateStatus(ctx, id, status)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.invoices.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}
	inv.Status = status
	s.log.Info().Str("invoiceId", id).Str("status", status).Msg("invoice status changed")
	return dto.ToInvoiceResponse(inv, nil), nil
}

// Delete removes an invoice. A document that was posted (whatever its current
// status) has its stock and balance effects reversed in the same transaction
// that deletes it. Drafts are plain deletes.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.tx.Run(ctx, func(r ports.TxRepos) error {
		if inv.Status != entity.InvoiceStatusDraft {
			details, err := r.Invoices.GetDetails(ctx, id)
			if err != nil {
				return err
			}
			if err := reverseEffects(ctx, r, inv, details, userID); err != nil {
				return err
			}
		}
		if err := r.Invoices.DeleteDetails(ctx, id); err != nil {
			return err
		}
		return r.Invoices.Delete(ctx, id)
	})
}

// prepare validates the request and builds the header and lines with computed
// totals. Nothing is written here; every rejection happens before any write.
func (s *Service) prepare(ctx context.Context, in dto.SaveInvoiceRequest, userID string, cfg *entity.Settings) (*entity.Invoice, []*entity.InvoiceDetail, error) {
	if !entity.IsValidInvoiceType(in.Type) || len(in.Lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = entity.InvoiceStatusDraft
	}
	if in.Status != entity.InvoiceStatusDraft && in.Status != entity.InvoiceStatusPosted {
		return nil, nil, fmt.Errorf("save status must be draft or posted: %w", domain.ErrInvalidInput)
	}
	if in.DiscountAmount.IsNegative() || in.TaxRate.IsNegative() || in.Paid.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	account, err := s.accounts.GetByID(ctx, in.AccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("account: %w", err)
	}

	warehouseID := in.WarehouseID
	if warehouseID == "" {
		warehouseID = cfg.DefaultWarehouseID
	}
	if warehouseID == "" {
		if def, err := s.warehouses.GetDefault(ctx); err == nil && def != nil {
			warehouseID = def.ID
		}
	}
	if warehouseID == "" {
		return nil, nil, fmt.Errorf("no warehouse given and no default configured: %w", domain.ErrInvalidInput)
	}
	if _, err := s.warehouses.GetByID(ctx, warehouseID); err != nil {
		return nil, nil, fmt.Errorf("warehouse: %w", err)
	}

	details := make([]*entity.InvoiceDetail, 0, len(in.Lines))
	for i, line := range in.Lines {
		if line.Quantity.Sign() <= 0 {
			return nil, nil, fmt.Errorf("line %d: quantity must be positive: %w", i+1, domain.ErrInvalidInput)
		}
		if line.UnitPrice.IsNegative() || line.Discount.IsNegative() || line.Tax.IsNegative() {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, domain.ErrInvalidInput)
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d product: %w", i+1, err)
		}
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = defaultPrice(in.Type, product)
		}
		details = append(details, &entity.InvoiceDetail{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Discount:  money.Round2(line.Discount),
			Tax:       money.Round2(line.Tax),
			Total:     money.Line(line.Quantity, unitPrice),
		})
	}

	totals := ComputeTotals(details, in.DiscountAmount, in.TaxRate)
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	now := time.Now().UTC()
	inv := &entity.Invoice{
		Type:           in.Type,
		AccountID:      account.ID,
		WarehouseID:    warehouseID,
		Date:           date,
		Subtotal:       totals.Subtotal,
		DiscountAmount: money.Round2(in.DiscountAmount),
		Discount:       totals.Discount,
		TaxRate:        in.TaxRate,
		Tax:            totals.Tax,
		Total:          totals.Total,
		Paid:           money.Round2(in.Paid),
		Status:         in.Status,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return inv, details, nil
}

// defaultPrice picks the product price used when a line omits one: first sell
// price on the sales side, cost price on the purchase side.
func defaultPrice(invoiceType string, p *entity.Product) decimal.Decimal {
	switch invoiceType {
	case entity.InvoiceTypePurchase, entity.InvoiceTypePurchaseReturn:
		return p.CostPrice
	}
	return p.SellPrice1
}

// applyEffects applies the posting side effects of inv: per line a locked
// stock update plus an audit row, then the ledger entry and the counterparty
// balance adjustment. Caller runs it inside a transaction.
func applyEffects(ctx context.Context, r ports.TxRepos, inv *entity.Invoice, details []*entity.InvoiceDetail, allowNegative bool, userID string) error {
	stockDir := entity.StockDirection(inv.Type)
	for _, d := range details {
		row, err := r.Inventory.GetForUpdate(ctx, d.ProductID, inv.WarehouseID)
		if err != nil {
			return err
		}
		delta := d.Quantity.Mul(stockDir)
		next := row.Quantity.Add(delta)
		if next.IsNegative() && !allowNegative {
			return fmt.Errorf("product %s: %w", d.ProductID, domain.ErrInsufficientStock)
		}
		row.Quantity = next
		if err := r.Inventory.Upsert(ctx, row); err != nil {
			return err
		}
		if err := r.InventoryTxs.Create(ctx, &entity.InventoryTransaction{
			ProductID:   d.ProductID,
			WarehouseID: inv.WarehouseID,
			Type:        entity.InventoryTxType(inv.Type),
			Quantity:    delta,
			SourceType:  entity.InventorySourceInvoice,
			SourceID:    inv.ID,
			CreatedBy:   userID,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	balanceDelta := inv.Total.Mul(entity.BalanceDirection(inv.Type))
	txType := entity.TransactionTypeDebit
	if balanceDelta.IsNegative() {
		txType = entity.TransactionTypeCredit
	}
	if err := r.Transactions.Create(ctx, &entity.Transaction{
		AccountID:   inv.AccountID,
		Type:        txType,
		Amount:      inv.Total,
		Date:        inv.Date,
		Description: fmt.Sprintf("%s #%d", inv.Type, inv.Number),
		SourceType:  entity.TransactionSourceInvoice,
		SourceID:    inv.ID,
		CreatedBy:   userID,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return err
	}
	return r.Accounts.AdjustBalance(ctx, inv.AccountID, balanceDelta)
}

// reverseEffects undoes a posted document: opposite stock deltas with
// reversal audit rows, the document's ledger rows removed, and the balance
// put back. Stock reversal skips the negative-stock check: a correction must
// not be blocked by the policy that applied to the original.
func reverseEffects(ctx context.Context, r ports.TxRepos, inv *entity.Invoice, details []*entity.InvoiceDetail, userID string) error {
	stockDir := entity.StockDirection(inv.Type)
	for _, d := range details {
		row, err := r.Inventory.GetForUpdate(ctx, d.ProductID, inv.WarehouseID)
		if err != nil {
			return err
		}
		delta := d.Quantity.Mul(stockDir).Neg()
		row.Quantity = row.Quantity.Add(delta)
		if err := r.Inventory.Upsert(ctx, row); err != nil {
			return err
		}
		if err := r.InventoryTxs.Create(ctx, &entity.InventoryTransaction{
			ProductID:   d.ProductID,
			WarehouseID: inv.WarehouseID,
			Type:        entity.InventoryTxType(inv.Type),
			Quantity:    delta,
			SourceType:  entity.InventorySourceReversal,
			SourceID:    inv.ID,
			CreatedBy:   userID,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	if err := r.Transactions.DeleteBySource(ctx, entity.TransactionSourceInvoice, inv.ID); err != nil {
		return err
	}
	balanceDelta := inv.Total.Mul(entity.BalanceDirection(inv.Type)).Neg()
	return r.Accounts.AdjustBalance(ctx, inv.AccountID, balanceDelta)
}
