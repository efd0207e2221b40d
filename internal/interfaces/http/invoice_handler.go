package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/invoicing"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/internal/infrastructure/pdf"
)

// InvoiceHandler serves invoice CRUD, status transitions and the PDF view.
type InvoiceHandler struct {
	svc      *invoicing.Service
	invoices repository.InvoiceRepository
	accounts repository.AccountRepository
	products repository.ProductRepository
	settings repository.SettingsRepository
	pdfGen   *pdf.InvoiceGenerator
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	svc *invoicing.Service,
	invoices repository.InvoiceRepository,
	accounts repository.AccountRepository,
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	pdfGen *pdf.InvoiceGenerator,
) *InvoiceHandler {
	return &InvoiceHandler{
		svc:      svc,
		invoices: invoices,
		accounts: accounts,
		products: products,
		settings: settings,
		pdfGen:   pdfGen,
	}
}

// Create godoc
// @Summary      Create an invoice (draft or posted)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveInvoiceRequest  true  "document"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	f := repository.InvoiceFilter{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		AccountID: c.Query("accountId"),
		DateFrom:  dateFromQuery(c, "startDate"),
		DateTo:    dateFromQuery(c, "endDate"),
	}
	out, err := h.svc.List(c.Context(), f, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.ChangeStatus(c.Context(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF renders the invoice as a downloadable PDF.
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	ctx := c.Context()
	id := c.Params("id")

	inv, err := h.invoices.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	details, err := h.invoices.GetDetails(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	account, err := h.accounts.GetByID(ctx, inv.AccountID)
	if err != nil {
		return respondError(c, err)
	}
	cfg, err := h.settings.Get(ctx)
	if err != nil {
		return respondError(c, err)
	}

	doc := pdf.Document{
		Invoice:      inv,
		Account:      account,
		BusinessName: cfg.BusinessName,
		Currency:     cfg.Currency,
	}
	for _, d := range details {
		name := d.ProductID
		if p, err := h.products.GetByID(ctx, d.ProductID); err == nil {
			name = p.Name
		}
		doc.Lines = append(doc.Lines, pdf.LineItem{
			ProductName: name,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Total:       d.Total,
		})
	}

	data, err := h.pdfGen.Generate(ctx, doc)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s-%d.pdf"`, inv.Type, inv.Number))
	return c.SendStream(bytes.NewReader(data), len(data))
}
