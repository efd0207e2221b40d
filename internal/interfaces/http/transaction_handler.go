package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/ledger"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
)

// TransactionHandler serves the financial ledger.
type TransactionHandler struct {
	svc *ledger.Service
}

func NewTransactionHandler(svc *ledger.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	f := repository.TransactionFilter{
		AccountID: c.Query("accountId"),
		Type:      c.Query("type"),
		DateFrom:  dateFromQuery(c, "startDate"),
		DateTo:    dateFromQuery(c, "endDate"),
	}
	out, err := h.svc.List(c.Context(), f, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
