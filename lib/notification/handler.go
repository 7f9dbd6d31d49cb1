package notificationhandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pmfin-backend/lib/events"
	notificationstore "pmfin-backend/lib/notification/store"
	"pmfin-backend/lib/smtp"
	userstore "pmfin-backend/lib/users/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	connectionhub "pmfin-backend/lib/ws/hub/connection-hub"
	"pmfin-backend/models"
	notificationapimodels "pmfin-backend/models/api/notification"
	dbmodels "pmfin-backend/models/db"
	wsmodels "pmfin-backend/models/ws"
)

type Provider interface {
	// Send stores the notification and delivers it. Delivery failures are only logged.
	Send(userID string, code models.NotificationCode, args ...any)
	List(userID string, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID string, ids []string) error
	MarkAllRead(userID string) error
	PushUnreadCount(userID string)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:     notificationstore.NewInstance(tx),
		userStore: userstore.NewInstance(tx),
		hub:       connectionhub.Instance,
		mailer:    smtp.Instance,
		events:    events.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
		"hub", instance.hub,
		"mailer", instance.mailer,
		"events", instance.events,
	)
	Instance = instance
}

type impl struct {
	store     notificationstore.Provider
	userStore userstore.Provider
	hub       connectionhub.Provider
	mailer    smtp.Provider
	events    events.Provider
}

func (i impl) Send(userID string, code models.NotificationCode, args ...any) {
	logger := log.WithField("user_id", userID).WithField("code", code)
	if userID == "" {
		return
	}
	title, msg := code.Render(args...)
	rec := dbmodels.Notification{
		UserID: userID,
		Code:   code,
		Title:  title,
		Msg:    msg,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to save notification")
		return
	}
	i.push(userID, code, title, msg)
	i.email(userID, title, msg)
	i.events.Publish(context.Background(), events.Event{
		Type:     events.NotificationCreated,
		EntityID: id,
		Attrs: map[string]string{
			"user_id": userID,
			"code":    string(code),
		},
	})
	logger.Debug("notification sent")
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, notificationapimodels.NotificationConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) UnreadCount(userID string) (int64, error) {
	return i.store.UnreadCount(userID)
}

func (i impl) MarkRead(userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := i.store.MarkRead(userID, ids); err != nil {
		return err
	}
	i.PushUnreadCount(userID)
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	if err := i.store.MarkAllRead(userID); err != nil {
		return err
	}
	i.PushUnreadCount(userID)
	return nil
}

// PushUnreadCount sends the current counter to a connected client.
func (i impl) PushUnreadCount(userID string) {
	i.push(userID, "", "", "")
}

func (i impl) push(userID string, code models.NotificationCode, title, msg string) {
	if !i.hub.IsConnected(userID) {
		return
	}
	count, err := i.store.UnreadCount(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to count unread notifications")
		return
	}
	i.hub.SendMessage(wsmodels.ServerMessage{
		ToUserID:    userID,
		Time:        time.Now().Format(time.RFC3339),
		Code:        string(code),
		Title:       title,
		Msg:         msg,
		UnreadCount: count,
	})
}

func (i impl) email(userID, title, msg string) {
	if !i.mailer.IsConfigured() {
		return
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil || user == nil || user.Email == "" {
		return
	}
	go func() {
		if err := i.mailer.SendEMail(user.Email, title, msg); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("notification email not sent")
		}
	}()
}
