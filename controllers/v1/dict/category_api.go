package dict

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	categoryprovider "pmfin-backend/lib/dicts/category"
	apimodels "pmfin-backend/models/api"
	dictapimodels "pmfin-backend/models/api/dict"
)

type categoryDictApiController struct {
	controllers.BaseAPIController
}

func InitCategoryDictApiRouters(app fiber.Router) {
	controller := categoryDictApiController{}
	app.Route("category", func(router fiber.Router) {
		router.Post("list", controller.categoryFindByName)
		router.Post("", controller.categoryCreate)
		router.Put(":id", controller.categoryUpdate)
		router.Get(":id", controller.categoryGet)
		router.Delete(":id", controller.categoryDelete)
	})
}

// @Summary Create
// @Tags Dict. Categories
// @Description Create
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.CategoryData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category [post]
func (c *categoryDictApiController) categoryCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.CategoryData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := categoryprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create category")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update
// @Tags Dict. Categories
// @Description Update
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.CategoryData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/{id} [put]
func (c *categoryDictApiController) categoryUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.CategoryData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = categoryprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update category")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get
// @Tags Dict. Categories
// @Description Get
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/{id} [get]
func (c *categoryDictApiController) categoryGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := categoryprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get category")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete
// @Tags Dict. Categories
// @Description Delete. Categories used by invoices or reimbursements can not be deleted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/{id} [delete]
func (c *categoryDictApiController) categoryDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := categoryprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete category")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Find by name
// @Tags Dict. Categories
// @Description Find by name and flow type
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DictFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.CategoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/category/list [post]
func (c *categoryDictApiController) categoryFindByName(ctx *fiber.Ctx) error {
	var payload dictapimodels.DictFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := categoryprovider.Instance.FindByName(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list categories")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
