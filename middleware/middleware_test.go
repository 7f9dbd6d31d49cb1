package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"pmfin-backend/lib/rbac"
	"pmfin-backend/models"
)

func withUser(role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(localUserID, "u1")
		ctx.Locals(localUserRole, role)
		return ctx.Next()
	}
}

func ok(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}

func status(t *testing.T, app *fiber.App, method, path string) int {
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRoleRequired(t *testing.T) {
	for _, tc := range []struct {
		role   models.UserRole
		expect int
	}{
		{models.AdminRole, fiber.StatusOK},
		{models.FinanceRole, fiber.StatusOK},
		{models.EmployeeRole, fiber.StatusForbidden},
	} {
		t.Run(string(tc.role), func(t *testing.T) {
			app := fiber.New()
			app.Get("/finance", withUser(tc.role), RoleRequired(models.FinanceRole), ok)
			app.Get("/admin", withUser(tc.role), AdminRequired(), ok)
			require.Equal(t, tc.expect, status(t, app, fiber.MethodGet, "/finance"))
			if tc.role.IsAdmin() {
				require.Equal(t, fiber.StatusOK, status(t, app, fiber.MethodGet, "/admin"))
			} else {
				require.Equal(t, fiber.StatusForbidden, status(t, app, fiber.MethodGet, "/admin"))
			}
		})
	}
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/upload", WithBodyLimit(1), ok)

	req := httptest.NewRequest(fiber.MethodPost, "/upload", strings.NewReader("small"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	big := strings.Repeat("x", 1024*1024+1)
	req = httptest.NewRequest(fiber.MethodPost, "/upload", strings.NewReader(big))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRbacMiddleware(t *testing.T) {
	rbac.NewHandler()
	newApp := func(role models.UserRole) *fiber.App {
		app := fiber.New()
		api := app.Group("/api/v1", withUser(role), RbacMiddleware())
		api.Post("/project", ok)
		api.Get("/unruled", ok)
		return app
	}

	t.Run("rule denies role outside the set", func(t *testing.T) {
		resp, err := newApp(models.EmployeeRole).Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/project", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		body := map[string]string{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, rbacForbidden, body["error"])
	})
	t.Run("rule allows role in the set", func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, status(t, newApp(models.ProjectManagerRole), fiber.MethodPost, "/api/v1/project"))
	})
	t.Run("route without rule is open", func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, status(t, newApp(models.EmployeeRole), fiber.MethodGet, "/api/v1/unruled"))
	})
}
