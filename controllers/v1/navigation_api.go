package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	"pmfin-backend/lib/navigation"
	"pmfin-backend/middleware"
	apimodels "pmfin-backend/models/api"
)

type navigationApiController struct {
	controllers.BaseAPIController
	tree navigation.Tree
}

func InitNavigationApiRouters(app fiber.Router) {
	controller := navigationApiController{tree: navigation.DefaultTree()}
	app.Route("navigation", func(router fiber.Router) {
		router.Get("", controller.menu)
		router.Get("access", controller.access)
	})
}

// @Summary Navigation menu
// @Tags Navigation
// @Description Navigation groups visible to the current role
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=navigation.Tree}
// @router /api/v1/navigation [get]
func (c *navigationApiController) menu(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(c.tree.Visible(middleware.GetUserRole(ctx))))
}

// @Summary Route access
// @Tags Navigation
// @Description Render decision for a dashboard path and the current role
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   path				query		string	true	"dashboard path"
// @Success 200 {object} apimodels.Response{data=navigation.AccessView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/navigation/access [get]
func (c *navigationApiController) access(ctx *fiber.Ctx) error {
	path := ctx.Query("path")
	if path == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("path not specified"))
	}
	role := middleware.GetUserRole(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(navigation.AccessView{
		Path:     navigation.NormalizePath(path),
		Decision: c.tree.Decide(path, &role),
	}))
}
