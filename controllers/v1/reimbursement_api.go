package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"pmfin-backend/controllers"
	xlsexport "pmfin-backend/lib/export/xls"
	reimbursementhandler "pmfin-backend/lib/reimbursement"
	"pmfin-backend/middleware"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
)

type reimbursementApiController struct {
	controllers.BaseAPIController
}

func InitReimbursementApiRouters(app fiber.Router) {
	controller := reimbursementApiController{}
	app.Route("reimbursement", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Post("receipt", controller.addReceipt)
			idRoute.Get("attachment/:attachmentID", controller.getAttachment)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("pay", controller.pay)
			idRoute.Post("proof", controller.attachProof)
			idRoute.Post("pay_with_proof", controller.payWithProof)
		})
	})
}

// @Summary Reimbursement list
// @Tags Reimbursement
// @Description Reimbursement list. Non finance users see only their own requests
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.ReimbursementFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]financeapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reimbursement/list [post]
func (c *reimbursementApiController) list(ctx *fiber.Ctx) error {
	var payload financeapimodels.ReimbursementFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := reimbursementhandler.Instance.List(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list reimbursements")
	}
	page, limit := payload.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, page, limit, rowCount))
}

// @Summary Export reimbursements
// @Tags Reimbursement
// @Description Export filtered reimbursements to Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.ReimbursementFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reimbursement/export [post]
func (c *reimbursementApiController) export(ctx *fiber.Ctx) error {
	var payload financeapimodels.ReimbursementFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := reimbursementhandler.Instance.ListAll(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export reimbursements")
	}
	data, err := xlsexport.Instance.ExportReimbursementList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export reimbursements")
	}
	return sendXLSX(ctx, "reimbursements", data.Bytes())
}

// @Summary Submit reimbursement
// @Tags Reimbursement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 financeapimodels.ReimbursementData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reimbursement [post]
func (c *reimbursementApiController) create(ctx *fiber.Ctx) error {
	var payload financeapimodels.ReimbursementData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := reimbursementhandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit reimbursement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Get reimbursement
// @Tags Reimbursement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=financeapimodels.ReimbursementView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/reimbursement/{id} [get]
func (c *reimbursementApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := reimbursementhandler.Instance.GetByID(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get reimbursement")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Upload receipt
// @Tags Reimbursement
// @Description Attach a receipt to a pending request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file		formData	file	true	"receipt"
// @Success 200 {object} apimodels.Response{data=financeapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/receipt [post]
func (c *reimbursementApiController) addReceipt(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := c.GetFormFile(ctx, "file")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to read receipt")
	}
	resp, hMsg, err := reimbursementhandler.Instance.AddReceipt(ctx.UserContext(), middleware.GetActor(ctx), id, file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save receipt")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Download attachment
// @Tags Reimbursement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   attachmentID          		path    string  				    	true         "attachment ID"
// @Success 200
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/attachment/{attachmentID} [get]
func (c *reimbursementApiController) getAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	attachmentID, err := c.GetIDByKey(ctx, "attachmentID")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, view, err := reimbursementhandler.Instance.GetAttachment(ctx.UserContext(), middleware.GetActor(ctx), id, attachmentID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get attachment")
	}
	if view.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, view.ContentType)
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+view.FileName+`"`)
	return ctx.Send(data)
}

// @Summary Approve reimbursement
// @Tags Reimbursement
// @Description PENDING -> APPROVED
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/approve [put]
func (c *reimbursementApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reimbursementhandler.Instance.Approve(middleware.GetActor(ctx), id)
	return c.sendStatusResult(ctx, hMsg, err, "failed to approve reimbursement")
}

// @Summary Reject reimbursement
// @Tags Reimbursement
// @Description PENDING -> REJECTED. Reason is required
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 financeapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/reject [put]
func (c *reimbursementApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload financeapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reimbursementhandler.Instance.Reject(middleware.GetActor(ctx), id, payload.Reason)
	return c.sendStatusResult(ctx, hMsg, err, "failed to reject reimbursement")
}

// @Summary Pay reimbursement
// @Tags Reimbursement
// @Description APPROVED -> PAID. Payment proof is attached separately
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/pay [put]
func (c *reimbursementApiController) pay(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := reimbursementhandler.Instance.MarkPaid(middleware.GetActor(ctx), id)
	return c.sendStatusResult(ctx, hMsg, err, "failed to mark reimbursement paid")
}

// @Summary Attach payment proof
// @Tags Reimbursement
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file		formData	file	true	"payment proof"
// @Success 200 {object} apimodels.Response{data=financeapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reimbursement/{id}/proof [post]
func (c *reimbursementApiController) attachProof(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := c.GetFormFile(ctx, "file")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to read payment proof")
	}
	resp, hMsg, err := reimbursementhandler.Instance.AttachProof(ctx.UserContext(), middleware.GetActor(ctx), id, file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save payment proof")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Pay with proof
// @Tags Reimbursement
// @Description Marks the request paid, then attaches the proof. If the proof step fails the request stays PAID and the response carries the completed and failed steps in meta
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file		formData	file	true	"payment proof"
// @Success 200 {object} apimodels.Response{data=financeapimodels.ReimbursementView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response{data=financeapimodels.ReimbursementView,meta=financeapimodels.PartialFailureMeta}
// @router /api/v1/reimbursement/{id}/pay_with_proof [post]
func (c *reimbursementApiController) payWithProof(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := c.GetFormFile(ctx, "file")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to read payment proof")
	}
	resp, hMsg, err := reimbursementhandler.Instance.PayWithProof(ctx.UserContext(), middleware.GetActor(ctx), id, file)
	var partial *models.PartialFailureError
	if errors.As(err, &partial) {
		c.GetLogger(ctx).WithError(err).Warn("reimbursement paid without payment proof")
		body := apimodels.NewError(partial.Error())
		body.Data = resp
		body.Meta = financeapimodels.PartialFailureMeta{Completed: partial.Completed, Failed: partial.Failed}
		return ctx.Status(fiber.StatusInternalServerError).JSON(body)
	}
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to pay reimbursement")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *reimbursementApiController) sendStatusResult(ctx *fiber.Ctx, hMsg string, err error, errMsg string) error {
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
