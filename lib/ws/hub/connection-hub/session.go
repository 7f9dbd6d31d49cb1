package connectionhub

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn is the part of a websocket connection used by the hub.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const (
	sendBufferSize = 16
	writeWait      = time.Second

	// PongWait is how long a connection may stay silent before its reader gives up.
	PongWait   = 60 * time.Second
	pingPeriod = PongWait * 9 / 10
)

type clientSession struct {
	conn Conn

	// outbound messages, buffered
	sendCh   chan any
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
		ctx:    ctx,
		cancel: cancelFn,
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) enqueue(msg any) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		log.Warn("ws send queue is full, message dropped")
		return false
	}
}

func (s *clientSession) stop() {
	s.stopOnce.Do(s.cancel)
}

func (s *clientSession) startSend() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("failed to send ws message")
			}
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("failed to send ws ping")
			}
		}
	}
}

func (s *clientSession) close() {
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	if err != nil {
		log.WithError(err).Debug("failed to send ws close")
	}
}
