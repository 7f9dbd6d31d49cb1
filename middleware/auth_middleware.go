package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/fiberlog"
	usershandler "pmfin-backend/lib/users"
	authutils "pmfin-backend/lib/utils/auth-utils"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
)

const (
	localUserID   = fiberlog.TagUserID
	localUserRole = "user_role"
	localUserName = "user_name"
)

// ActiveUserRequired reloads the token subject on every request.
// The stored role is used instead of the token claim; banned and deleted users are rejected.
func ActiveUserRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := authutils.GetSubject(ctx)
		rec, err := usershandler.Instance.GetActive(userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("failed to load user")
			return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("failed to load user"))
		}
		if rec == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("unauthorized"))
		}
		if rec.Banned {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("user is banned"))
		}
		ctx.Locals(localUserID, rec.ID)
		ctx.Locals(localUserRole, rec.Role)
		ctx.Locals(localUserName, rec.Name)
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	userID, _ := ctx.Locals(localUserID).(string)
	return userID
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	role, _ := ctx.Locals(localUserRole).(models.UserRole)
	return role
}

func GetUserName(ctx *fiber.Ctx) string {
	name, _ := ctx.Locals(localUserName).(string)
	return name
}

func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		ID:   GetUserID(ctx),
		Name: GetUserName(ctx),
		Role: GetUserRole(ctx),
	}
}
