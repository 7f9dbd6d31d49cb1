package notificationstore

import (
	"gorm.io/gorm"
	notificationapimodels "pmfin-backend/models/api/notification"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, rowCount int64, err error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID string, ids []string) error
	MarkAllRead(userID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID)
	if filter.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.Notification{}
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Offset(filter.Offset()).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) UnreadCount(userID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	return count, err
}

func (i impl) MarkRead(userID string, ids []string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		Update("is_read", true).
		Error
}

func (i impl) MarkAllRead(userID string) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).
		Error
}
