package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/auth"
	"github.com/tijara-app/tijara-api/internal/application/dto"
)

// AuthHandler serves login, logout and status.
type AuthHandler struct {
	svc        *auth.Service
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

// NewAuthHandler builds the handler.
func NewAuthHandler(svc *auth.Service, cookieName string, ttlHours int, secure bool) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		cookieName: cookieName,
		cookieTTL:  time.Duration(ttlHours) * time.Hour,
		secure:     secure,
	}
}

// Login godoc
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	resp, session, err := h.svc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(resp)
}

// Logout deletes the session and clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if err := h.svc.Logout(c.Context(), token); err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Status returns the current user or 401. Bearer clients carry no session
// cookie, so fall back to the bearer token the middleware already verified.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	if token := c.Cookies(h.cookieName); token != "" {
		user, err := h.svc.Status(c.Context(), token)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	}

	header := c.Get("Authorization")
	if len(header) > 7 {
		user, err := h.svc.ResolveBearer(c.Context(), header[7:])
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToUserResponse(user))
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no session"})
}
