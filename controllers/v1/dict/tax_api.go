package dict

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	taxprovider "pmfin-backend/lib/dicts/tax"
	apimodels "pmfin-backend/models/api"
	dictapimodels "pmfin-backend/models/api/dict"
)

type taxDictApiController struct {
	controllers.BaseAPIController
}

func InitTaxDictApiRouters(app fiber.Router) {
	controller := taxDictApiController{}
	app.Route("tax", func(router fiber.Router) {
		router.Post("list", controller.taxFindByName)
		router.Post("", controller.taxCreate)
		router.Put(":id", controller.taxUpdate)
		router.Get(":id", controller.taxGet)
		router.Delete(":id", controller.taxDelete)
	})
}

// @Summary Create
// @Tags Dict. Taxes
// @Description Create
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.TaxData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/tax [post]
func (c *taxDictApiController) taxCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.TaxData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := taxprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create tax")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update
// @Tags Dict. Taxes
// @Description Update
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.TaxData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/tax/{id} [put]
func (c *taxDictApiController) taxUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.TaxData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = taxprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update tax")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get
// @Tags Dict. Taxes
// @Description Get
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.TaxView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/tax/{id} [get]
func (c *taxDictApiController) taxGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taxprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get tax")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete
// @Tags Dict. Taxes
// @Description Delete. Taxes used by invoices can not be deleted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/tax/{id} [delete]
func (c *taxDictApiController) taxDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := taxprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete tax")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Find by name
// @Tags Dict. Taxes
// @Description Find by name
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DictFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.TaxView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/tax/list [post]
func (c *taxDictApiController) taxFindByName(ctx *fiber.Ctx) error {
	var payload dictapimodels.DictFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taxprovider.Instance.FindByName(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list taxes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
