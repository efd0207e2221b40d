package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/application/inventory"
)

// InventoryHandler serves stock rows, adjustments and manual movements.
type InventoryHandler struct {
	svc *inventory.Service
}

func NewInventoryHandler(svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.Context(), c.Query("productId"), c.Query("warehouseId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Adjust stock for one product/warehouse pair
// @Description  With isCount=true the quantity is the counted absolute value;
// @Description  otherwise it is a signed delta.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateInventoryRequest  true  "adjustment"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.svc.RegisterMovement(c.Context(), in, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History lists the audit log for one product.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	out, err := h.svc.History(c.Context(), c.Query("productId"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
