package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	notificationhandler "pmfin-backend/lib/notification"
	wsclient "pmfin-backend/lib/ws/client"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
	"pmfin-backend/middleware"
)

const userIDKey = "ws_user_id"

func InitWs(router fiber.Router) {
	router.Get("ws", upgradeRequired, websocket.New(notificationsHandler))
}

func upgradeRequired(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	ctx.Locals(userIDKey, middleware.GetUserID(ctx))
	return ctx.Next()
}

// @Summary Live notifications
// @Tags Websocket
// @Description Pushes new notifications and the unread counter. A new connection replaces the previous one of the same user.
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/ws [get]
func notificationsHandler(c *websocket.Conn) {
	userID, _ := c.Locals(userIDKey).(string)
	if userID == "" {
		_ = c.Close()
		return
	}
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	notificationhandler.Instance.PushUnreadCount(userID)
	client.Dispatch()
}
