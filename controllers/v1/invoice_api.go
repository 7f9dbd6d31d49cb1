package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	invoicehandler "pmfin-backend/lib/invoice"
	"pmfin-backend/middleware"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
)

type invoiceApiController struct {
	controllers.BaseAPIController
}

func InitInvoiceApiRouters(app fiber.Router) {
	controller := invoiceApiController{}
	app.Route("invoice", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Get("pdf", controller.pdf)
			idRoute.Put("send", controller.send)
			idRoute.Put("pay", controller.pay)
			idRoute.Put("cancel", controller.cancel)
		})
	})
}

// @Summary Invoice list
// @Tags Invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.InvoiceFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]financeapimodels.InvoiceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invoice/list [post]
func (c *invoiceApiController) list(ctx *fiber.Ctx) error {
	var payload financeapimodels.InvoiceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := invoicehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list invoices")
	}
	page, limit := payload.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, page, limit, rowCount))
}

// @Summary Export invoices
// @Tags Invoice
// @Description Export filtered invoices to Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.InvoiceFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invoice/export [post]
func (c *invoiceApiController) export(ctx *fiber.Ctx) error {
	var payload financeapimodels.InvoiceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := invoicehandler.Instance.ExportXLSX(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export invoices")
	}
	return sendXLSX(ctx, "invoices", data.Bytes())
}

// @Summary Create invoice
// @Tags Invoice
// @Description Create invoice in DRAFT status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.InvoiceData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/invoice [post]
func (c *invoiceApiController) create(ctx *fiber.Ctx) error {
	var payload financeapimodels.InvoiceData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := invoicehandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create invoice")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get invoice
// @Tags Invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.InvoiceView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/invoice/{id} [get]
func (c *invoiceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := invoicehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get invoice")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update invoice
// @Tags Invoice
// @Description Update invoice. Only drafts can be edited
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 financeapimodels.InvoiceData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/invoice/{id} [put]
func (c *invoiceApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.InvoiceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := invoicehandler.Instance.Update(middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update invoice")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete invoice
// @Tags Invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/invoice/{id} [delete]
func (c *invoiceApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := invoicehandler.Instance.Delete(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete invoice")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Invoice PDF
// @Tags Invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @router /api/v1/invoice/{id}/pdf [get]
func (c *invoiceApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, data, err := invoicehandler.Instance.PDF(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to render invoice")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}

// @Summary Send invoice
// @Tags Invoice
// @Description DRAFT -> SENT
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/invoice/{id}/send [put]
func (c *invoiceApiController) send(ctx *fiber.Ctx) error {
	return c.changeStatus(ctx, invoicehandler.Provider.Send, "failed to send invoice")
}

// @Summary Pay invoice
// @Tags Invoice
// @Description SENT or OVERDUE -> PAID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/invoice/{id}/pay [put]
func (c *invoiceApiController) pay(ctx *fiber.Ctx) error {
	return c.changeStatus(ctx, invoicehandler.Provider.MarkPaid, "failed to mark invoice paid")
}

// @Summary Cancel invoice
// @Tags Invoice
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/invoice/{id}/cancel [put]
func (c *invoiceApiController) cancel(ctx *fiber.Ctx) error {
	return c.changeStatus(ctx, invoicehandler.Provider.Cancel, "failed to cancel invoice")
}

func (c *invoiceApiController) changeStatus(ctx *fiber.Ctx, action func(invoicehandler.Provider, models.Actor, string) (string, error), errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := action(invoicehandler.Instance, middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func sendXLSX(ctx *fiber.Ctx, prefix string, data []byte) error {
	fileName := fmt.Sprintf("%v-%v.xlsx", prefix, time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}
