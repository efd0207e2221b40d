package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/backup"
	"github.com/tijara-app/tijara-api/internal/application/dto"
)

// BackupHandler serves backup/restore (admin only, enforced in the router).
type BackupHandler struct {
	svc *backup.Service
}

func NewBackupHandler(svc *backup.Service) *BackupHandler {
	return &BackupHandler{svc: svc}
}

func (h *BackupHandler) Create(c *fiber.Ctx) error {
	path, err := h.svc.Create(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"path": path})
}

func (h *BackupHandler) List(c *fiber.Ctx) error {
	files, err := h.svc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"backups": files})
}

func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var in struct {
		Path string `json:"path" validate:"required"`
	}
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.svc.Restore(c.Context(), in.Path); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "RESTORE_FAILED", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
