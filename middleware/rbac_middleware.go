package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/lib/rbac"
)

const rbacForbidden = "RBAC_FORBIDDEN"

// RbacMiddleware applies the route rules of lib/rbac. Routes without a rule are open.
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		role := GetUserRole(ctx)
		if userID == "" || !role.IsValid() {
			return rbacDeny(ctx)
		}
		if role.IsAdmin() {
			return ctx.Next()
		}
		allow, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if found && !allow(userID, role, ctx.Path()) {
			log.
				WithField("user_id", userID).
				WithField("role", role).
				WithField("route", ctx.Method()+" "+ctx.Path()).
				Info("route denied by rbac rule")
			return rbacDeny(ctx)
		}
		return ctx.Next()
	}
}

func rbacDeny(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status":  "fail",
		"message": "operation not allowed",
		"error":   rbacForbidden,
	})
}
