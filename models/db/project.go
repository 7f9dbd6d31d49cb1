package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	ManagerID   *string `gorm:"type:varchar(36);index"`
	Manager     *User   `gorm:"foreignKey:ManagerID"`
	TeamID      *string `gorm:"type:varchar(36)"`
	Team        *Team
	Budget      decimal.Decimal `gorm:"type:numeric(14,2)"`
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string         `gorm:"type:varchar(255)"`
	Tags        pq.StringArray `gorm:"type:text[]"`
}

type Team struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	Members     []User `gorm:"many2many:team_members"`
}
