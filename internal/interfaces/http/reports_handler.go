package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/reports"
)

// ReportsHandler serves GET /api/reports.
type ReportsHandler struct {
	svc *reports.Service
}

func NewReportsHandler(svc *reports.Service) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Get godoc
// @Summary      Build a report
// @Tags         reports
// @Produce      json
// @Param        type       query  string  true   "sales|purchases|inventory|accounts|dashboard"
// @Param        startDate  query  string  false  "period start (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "period end (YYYY-MM-DD)"
// @Success      200  {object}  any
// @Router       /api/reports [get]
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Build(c.Context(), c.Query("type"), dateFromQuery(c, "startDate"), dateFromQuery(c, "endDate"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
