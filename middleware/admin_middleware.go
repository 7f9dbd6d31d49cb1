package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
)

// RoleRequired passes the listed roles through. ADMIN always passes.
func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role := GetUserRole(ctx)
		if role.IsAdmin() || slices.Contains(roles, role) {
			return ctx.Next()
		}
		log.
			WithField("user_id", GetUserID(ctx)).
			WithField("role", role).
			WithField("path", ctx.Path()).
			Debug("role not allowed")
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not allowed"))
	}
}

func AdminRequired() fiber.Handler {
	return RoleRequired()
}
