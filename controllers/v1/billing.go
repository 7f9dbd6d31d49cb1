package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	billinghandler "pmfin-backend/lib/billing"
	"pmfin-backend/middleware"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
)

type billingApiController struct {
	controllers.BaseAPIController
}

func InitBillingApiRouters(app fiber.Router) {
	controller := billingApiController{}
	app.Route("billing", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("summary/:projectID", controller.summary)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("payment_status", controller.setPaymentStatus)
		})
	})
}

// @Summary Bill list
// @Tags Billing
// @Description Project bills
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.BillFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]financeapimodels.BillView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/billing/list [post]
func (c *billingApiController) list(ctx *fiber.Ctx) error {
	var payload financeapimodels.BillFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := billinghandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list bills")
	}
	page, limit := payload.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, page, limit, rowCount))
}

// @Summary Billing summary
// @Tags Billing
// @Description Bill totals of a project by payment status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   projectID          		path    string  				    	true         "project ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.BillSummary}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/billing/summary/{projectID} [get]
func (c *billingApiController) summary(ctx *fiber.Ctx) error {
	projectID, err := c.GetIDByKey(ctx, "projectID")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := billinghandler.Instance.Summary(projectID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get billing summary")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Create bill
// @Tags Billing
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.BillData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/billing [post]
func (c *billingApiController) create(ctx *fiber.Ctx) error {
	var payload financeapimodels.BillData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := billinghandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create bill")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get bill
// @Tags Billing
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.BillView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/billing/{id} [get]
func (c *billingApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := billinghandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get bill")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update bill
// @Tags Billing
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 financeapimodels.BillData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/billing/{id} [put]
func (c *billingApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.BillData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = billinghandler.Instance.Update(middleware.GetActor(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update bill")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete bill
// @Tags Billing
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/billing/{id} [delete]
func (c *billingApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = billinghandler.Instance.Delete(middleware.GetActor(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete bill")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Set payment status
// @Tags Billing
// @Description Payment status can be set to any valid value
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 financeapimodels.PaymentStatusData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/billing/{id}/payment_status [put]
func (c *billingApiController) setPaymentStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.PaymentStatusData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = billinghandler.Instance.SetPaymentStatus(middleware.GetActor(ctx), id, payload.PaymentStatus); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to set payment status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
