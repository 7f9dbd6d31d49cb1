package dashclient

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	notificationapimodels "pmfin-backend/models/api/notification"
)

const unreadKey = notificationKeyPrefix + "/unread"

// UnreadCount always asks the server. The poller is the only reader and wants fresh data.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var resp notificationapimodels.UnreadCount
	if err := c.send(ctx, http.MethodGet, "notification/unread_count", nil, &resp); err != nil {
		return 0, err
	}
	c.cache.Set(unreadKey, resp.Count)
	return resp.Count, nil
}

func (c *Client) ListNotifications(ctx context.Context, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, error) {
	var resp []notificationapimodels.NotificationView
	err := c.send(ctx, http.MethodPost, "notification/list", filter, &resp)
	return resp, err
}

func (c *Client) MarkNotificationsRead(ctx context.Context, ids ...string) error {
	return c.mutate(ctx, http.MethodPut, "notification/read", notificationapimodels.MarkReadData{IDs: ids}, nil, notificationKeyPrefix)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.mutate(ctx, http.MethodPut, "notification/read_all", nil, nil, notificationKeyPrefix)
}

// UnreadPoller refreshes the unread count on a fixed interval. Each tick fires an independent
// request; whichever response arrives last wins.
type UnreadPoller struct {
	client   *Client
	interval time.Duration
	count    atomic.Int64
	// OnChange is called with every received count.
	OnChange func(count int64)
}

func NewUnreadPoller(client *Client, interval time.Duration) *UnreadPoller {
	return &UnreadPoller{client: client, interval: interval}
}

func (p *UnreadPoller) Count() int64 {
	return p.count.Load()
}

// Run blocks until ctx is cancelled. In-flight requests are abandoned with ctx.
func (p *UnreadPoller) Run(ctx context.Context) {
	go p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go p.refresh(ctx)
		}
	}
}

func (p *UnreadPoller) refresh(ctx context.Context) {
	count, err := p.client.UnreadCount(Quiet(ctx))
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).Debug("unread count refresh failed")
		}
		return
	}
	p.count.Store(count)
	if p.OnChange != nil {
		p.OnChange(count)
	}
}
