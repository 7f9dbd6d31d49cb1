package connectionhub

import (
	"sync"

	wsmodels "pmfin-backend/models/ws"
)

type Provider interface {
	AddClient(userID string, conn Conn)
	DeleteClient(userID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage) bool
	SendClose(userID string)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = newHub()
}

func newHub() *impl {
	return &impl{
		clients: map[string]*clientSession{},
	}
}

// impl keeps one live session per user. A new connection replaces the previous one.
type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession // map[userID]
}

func (i *impl) AddClient(userID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if oldSess, ok := i.clients[userID]; ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
}

// DeleteClient removes the session of conn. A session that already replaced conn is kept.
func (i *impl) DeleteClient(userID string, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

// SendMessage queues msg for its recipient. It never blocks: false means the user
// is offline or the session queue is full.
func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	return sess.enqueue(msg)
}

func (i *impl) SendClose(userID string) {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.clients[userID]
	return ok
}
