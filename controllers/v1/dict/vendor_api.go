package dict

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	vendorprovider "pmfin-backend/lib/dicts/supplier"
	apimodels "pmfin-backend/models/api"
	dictapimodels "pmfin-backend/models/api/dict"
)

type vendorDictApiController struct {
	controllers.BaseAPIController
}

func InitVendorDictApiRouters(app fiber.Router) {
	controller := vendorDictApiController{}
	app.Route("vendor", func(router fiber.Router) {
		router.Post("list", controller.vendorFindByName)
		router.Post("", controller.vendorCreate)
		router.Put(":id", controller.vendorUpdate)
		router.Get(":id", controller.vendorGet)
		router.Delete(":id", controller.vendorDelete)
	})
}

// @Summary Create
// @Tags Dict. Vendors
// @Description Create
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.VendorData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/vendor [post]
func (c *vendorDictApiController) vendorCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.VendorData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := vendorprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create vendor")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Update
// @Tags Dict. Vendors
// @Description Update
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.VendorData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/vendor/{id} [put]
func (c *vendorDictApiController) vendorUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload dictapimodels.VendorData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = vendorprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update vendor")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get
// @Tags Dict. Vendors
// @Description Get
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.VendorView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/vendor/{id} [get]
func (c *vendorDictApiController) vendorGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := vendorprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get vendor")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete
// @Tags Dict. Vendors
// @Description Delete. Vendors used by invoices can not be deleted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/vendor/{id} [delete]
func (c *vendorDictApiController) vendorDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := vendorprovider.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete vendor")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Find by name
// @Tags Dict. Vendors
// @Description Find by name
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DictFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.VendorView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/vendor/list [post]
func (c *vendorDictApiController) vendorFindByName(ctx *fiber.Ctx) error {
	var payload dictapimodels.DictFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := vendorprovider.Instance.FindByName(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list vendors")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
