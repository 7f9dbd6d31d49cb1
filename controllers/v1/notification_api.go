package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"pmfin-backend/controllers"
	notificationhandler "pmfin-backend/lib/notification"
	"pmfin-backend/middleware"
	apimodels "pmfin-backend/models/api"
	notificationapimodels "pmfin-backend/models/api/notification"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read", controller.markRead)
		router.Put("read_all", controller.markAllRead)
	})
}

// @Summary Notification list
// @Tags Notification
// @Description Notifications of the current user, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := notificationhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list notifications")
	}
	page, limit := payload.GetPage()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, page, limit, rowCount))
}

// @Summary Unread count
// @Tags Notification
// @Description Number of unread notifications of the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to count notifications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{Count: count}))
}

// @Summary Mark read
// @Tags Notification
// @Description Mark notifications of the current user as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.MarkReadData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @router /api/v1/notification/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	var payload notificationapimodels.MarkReadData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := notificationhandler.Instance.MarkRead(middleware.GetUserID(ctx), payload.IDs); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark notifications read")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark all read
// @Tags Notification
// @Description Mark every notification of the current user as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @router /api/v1/notification/read_all [put]
func (c *notificationApiController) markAllRead(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark notifications read")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
