package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"pmfin-backend/config"
	"pmfin-backend/controllers"
	usershandler "pmfin-backend/lib/users"
	authutils "pmfin-backend/lib/utils/auth-utils"
	"pmfin-backend/middleware"
	apimodels "pmfin-backend/models/api"
	userapimodels "pmfin-backend/models/api/user"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app fiber.Router) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Post("logout", controller.logout)
		router.Get("session", middleware.AuthorizationRequired(), middleware.ActiveUserRequired(), controller.session)
	})
}

// @Summary Login
// @Tags Auth
// @Description Checks email and password, returns a JWT and sets the session cookie
// @Param	body				body		userapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=userapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload userapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := usershandler.Instance.Login(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "login failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     authutils.SessionCookie,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(config.Conf.Auth.JWTExpireInSec) * time.Second),
		HTTPOnly: true,
		Secure:   config.Conf.Auth.CookieSecure != nil && *config.Conf.Auth.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Logout
// @Tags Auth
// @Description Clears the session cookie
// @Success 200 {object} apimodels.Response
// @router /api/v1/auth/logout [post]
func (c *authApiController) logout(ctx *fiber.Ctx) error {
	ctx.ClearCookie(authutils.SessionCookie)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Current session
// @Tags Auth
// @Description Returns the current user id, role and ban flag
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.Session}
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/auth/session [get]
func (c *authApiController) session(ctx *fiber.Ctx) error {
	resp, err := usershandler.Instance.GetSession(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load session")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
