package auth

import (
	"net/http/httptest"
	"testing"

	"cafe-pos-backend/internal/config"
	"cafe-pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTripThroughMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	user := &models.User{
		ID:     42,
		Email:  "garson@test.local",
		Role:   models.RoleStaff,
		CafeID: 7,
	}

	token, err := GenerateToken(cfg.JWTSecret, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	app := fiber.New()
	app.Get("/whoami", JWTMiddleware(cfg), func(c *fiber.Ctx) error {
		assert.Equal(t, uint(42), c.Locals(CtxUserIDKey))
		assert.Equal(t, models.RoleStaff, c.Locals(CtxUserRoleKey))
		assert.Equal(t, uint(7), c.Locals(CtxCafeIDKey))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	app := fiber.New()
	app.Get("/whoami", JWTMiddleware(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Header yok
	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Yanlış secret ile imzalanmış token
	other := &models.User{ID: 1, Email: "x@test.local", Role: models.RoleStaff, CafeID: 1}
	forged, err := GenerateToken("another-secret", other)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleBlocksStaff(t *testing.T) {
	app := fiber.New()
	app.Get("/admin-only", func(c *fiber.Ctx) error {
		c.Locals(CtxUserRoleKey, models.RoleStaff)
		return c.Next()
	}, RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
