package dbmodels

import (
	"github.com/shopspring/decimal"
	"pmfin-backend/models"
)

type Vendor struct {
	BaseModel
	Name    string `gorm:"type:varchar(255)"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(32)"`
	Address string
	TaxCode string `gorm:"type:varchar(64)"`
}

type Tax struct {
	BaseModel
	Name string          `gorm:"type:varchar(255)"`
	Rate decimal.Decimal `gorm:"type:numeric(6,3)"` // percent
}

type Category struct {
	BaseModel
	Name string          `gorm:"type:varchar(255)"`
	Type models.FlowType `gorm:"type:varchar(20)"`
}

type Notification struct {
	BaseModel
	UserID string                  `gorm:"type:varchar(36);index:idx_user"`
	Code   models.NotificationCode `gorm:"type:varchar(64)"`
	Title  string
	Msg    string
	IsRead bool `gorm:"index"`
}
