package wsclient

import (
	"io"
	"testing"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
)

type fakeConn struct {
	messages  []string
	deadlines []time.Time
	pong      func(string) error
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	if len(f.messages) == 0 {
		return 0, nil, io.EOF
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	if msg == "pong" {
		if err := f.pong(""); err != nil {
			return 0, nil, err
		}
		return f.ReadMessage()
	}
	return websocket.TextMessage, []byte(msg), nil
}

func (f *fakeConn) SetReadDeadline(t time.Time) error {
	f.deadlines = append(f.deadlines, t)
	return nil
}

func (f *fakeConn) SetPongHandler(h func(string) error) {
	f.pong = h
}

func TestDispatch(t *testing.T) {
	conn := &fakeConn{messages: []string{"hello", "pong", "bye"}}
	started := time.Now()
	NewClient("u1", conn).Dispatch()

	require.Empty(t, conn.messages)
	require.Len(t, conn.deadlines, 2)
	for _, deadline := range conn.deadlines {
		require.False(t, deadline.Before(started.Add(connectionhub.PongWait)))
	}
}
