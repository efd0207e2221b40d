package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID       = "user_id"
	LocalRole         = "role"
	LocalSessionToken = "session_token"
)

// Authenticator resolves credentials into a user. Implemented by the auth
// service; an interface here so middleware tests run without a database.
type Authenticator interface {
	Resolve(ctx context.Context, sessionToken string) (*entity.User, error)
	ResolveBearer(ctx context.Context, bearerToken string) (*entity.User, error)
}

// AuthMiddleware authenticates a request from the session cookie or, failing
// that, an Authorization: Bearer header. The web client carries the cookie;
// API clients carry the token.
func AuthMiddleware(cookieName string, auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(cookieName); token != "" {
			user, err := auth.Resolve(c.Context(), token)
			if err != nil {
				return respondError(c, err)
			}
			c.Locals(LocalUserID, user.ID)
			c.Locals(LocalRole, user.Role)
			c.Locals(LocalSessionToken, token)
			return c.Next()
		}

		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "session cookie or Bearer token required"})
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		user, err := auth.ResolveBearer(c.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole allows only the given roles past. Runs after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "no role on request"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return respondError(c, domain.ErrForbidden)
	}
}

// GetUserID returns the authenticated user id from locals.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole returns the authenticated user role from locals.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetSessionToken returns the session token, empty for Bearer requests.
func GetSessionToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSessionToken).(string)
	return s
}
