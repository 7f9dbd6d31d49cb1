package wsclient

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
)

// Conn is the read side of a websocket connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
}

type WsClient struct {
	conn   Conn
	userID string
}

func NewClient(userID string, c Conn) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch reads until the connection closes or stays silent longer than the pong wait.
// Every pong extends the deadline. Client messages are only logged.
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	extend := func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(connectionhub.PongWait))
	}
	if err := extend(""); err != nil {
		logger.WithError(err).Debug("failed to set ws read deadline")
		return
	}
	c.conn.SetPongHandler(extend)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Debug("ws connection lost")
			}
			return
		}
		logger.WithField("ws_message", string(data)).Debug("ws-msg")
	}
}
