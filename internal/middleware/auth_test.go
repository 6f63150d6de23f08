package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creator-marketplace/backend/internal/auth"
	"github.com/creator-marketplace/backend/internal/config"
	"github.com/creator-marketplace/backend/internal/rbac"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/me", AuthMiddleware(cfg, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	app.Post("/drafts", AuthMiddleware(cfg, zap.NewNop()), RequirePermission(rbac.PermAuthorDraft), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func bearer(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, uuid.New(), role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", JWTIssuer: "creator-marketplace"}
	app := testApp(cfg)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"no bearer prefix", "Token abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer abc", fiber.StatusUnauthorized},
		{"unknown role", bearer(t, cfg, "admin"), fiber.StatusForbidden},
		{"brand", bearer(t, cfg, rbac.RoleBrand), fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
		})
	}
}

func TestRequirePermission(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret", JWTIssuer: "creator-marketplace"}
	app := testApp(cfg)

	req := httptest.NewRequest("POST", "/drafts", nil)
	req.Header.Set("Authorization", bearer(t, cfg, rbac.RoleCreator))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("POST", "/drafts", nil)
	req.Header.Set("Authorization", bearer(t, cfg, rbac.RoleBrand))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRequestIDMiddleware_KeepsCallerID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(HeaderRequestID))
}
