package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tijara-app/tijara-api/internal/interfaces/http"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
)

const (
	testCookieName = "tijara_session"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testSession    = "valid-session-token"
	testBearer     = "valid-bearer-token"
)

// fakeAuth resolves exactly one session token and one bearer token; everything
// else fails the way the real service does.
type fakeAuth struct {
	role string
}

func (f *fakeAuth) user() *entity.User {
	return &entity.User{ID: testUserID, Username: "admin", Role: f.role, IsActive: true}
}

func (f *fakeAuth) Resolve(_ context.Context, token string) (*entity.User, error) {
	switch token {
	case testSession:
		return f.user(), nil
	case "expired-session-token":
		return nil, domain.ErrSessionExpired
	default:
		return nil, domain.ErrUnauthorized
	}
}

func (f *fakeAuth) ResolveBearer(_ context.Context, token string) (*entity.User, error) {
	if token == testBearer {
		return f.user(), nil
	}
	return nil, domain.ErrUnauthorized
}

// buildTestApp wires a minimal Fiber app with the auth middleware, optional
// role gate, and a dummy handler that echoes the resolved identity.
func buildTestApp(role string, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testCookieName, &fakeAuth{role: role})}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": apphttp.GetUserID(c),
			"role":   apphttp.GetRole(c),
			"token":  apphttp.GetSessionToken(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func withCookie(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
}

func TestAuthMiddleware_ValidCookiePasses(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, withCookie(testSession))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testSession, body["token"], "session token must be kept in locals for logout")
}

func TestAuthMiddleware_ExpiredSessionReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, withCookie("expired-session-token"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_EXPIRED")
}

func TestAuthMiddleware_UnknownCookieReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, withCookie("garbage"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_NoCredentialsReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestAuthMiddleware_BearerTokenPasses(t *testing.T) {
	app := buildTestApp("seller")
	resp := doRequest(t, app, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+testBearer)
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
	assert.Empty(t, body["token"], "bearer requests carry no session token")
}

func TestAuthMiddleware_MalformedBearerReturns401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireRole_AdminReachesAdminRoute(t *testing.T) {
	app := buildTestApp("admin", "admin")
	resp := doRequest(t, app, withCookie(testSession))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_SellerBlockedOnAdminRoute(t *testing.T) {
	app := buildTestApp("seller", "admin")
	resp := doRequest(t, app, withCookie(testSession))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_SellerAllowedOnSharedRoute(t *testing.T) {
	app := buildTestApp("seller", "admin", "seller")
	resp := doRequest(t, app, withCookie(testSession))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_EmptyRoleReturns401(t *testing.T) {
	app := buildTestApp("", "admin")
	resp := doRequest(t, app, withCookie(testSession))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}
