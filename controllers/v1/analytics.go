package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	"pmfin-backend/lib/analytics"
	apimodels "pmfin-backend/models/api"
	analyticsapimodels "pmfin-backend/models/api/analytics"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app fiber.Router) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("summary", controller.summary)
	})
}

// @Summary Dashboard summary
// @Tags Analytics
// @Description Monthly income and expense of paid invoices, reimbursement totals and task counts
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   year          query    int  				    	false         "year, current by default"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.Summary}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/summary [get]
func (c *analyticsApiController) summary(ctx *fiber.Ctx) error {
	var payload analyticsapimodels.SummaryFilter
	if err := ctx.QueryParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid query"))
	}
	resp, err := analytics.Instance.Summary(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build summary")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
