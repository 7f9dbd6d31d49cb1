package dbmodels

import (
	"time"

	"pmfin-backend/models"
)

type User struct {
	BaseModel
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Password  string          `gorm:"type:varchar(128)"`
	Name      string          `gorm:"type:varchar(255)"`
	Role      models.UserRole `gorm:"type:varchar(50);index"`
	Banned    bool
	BanReason string
	LastLogin *time.Time
}
