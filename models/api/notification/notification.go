package notificationapimodels

import (
	"time"

	"github.com/pkg/errors"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	dbmodels "pmfin-backend/models/db"
)

type NotificationView struct {
	ID        string                  `json:"id"`
	Code      models.NotificationCode `json:"code"`
	Title     string                  `json:"title"`
	Msg       string                  `json:"msg"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Code:      rec.Code,
		Title:     rec.Title,
		Msg:       rec.Msg,
		IsRead:    rec.IsRead,
		CreatedAt: rec.CreatedAt,
	}
}

type MarkReadData struct {
	IDs []string `json:"ids"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"`
}

func (m MarkReadData) Validate() error {
	if len(m.IDs) == 0 {
		return errors.New("ids are required")
	}
	return nil
}
