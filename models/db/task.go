package dbmodels

import (
	"time"

	"pmfin-backend/models"
)

type Task struct {
	BaseModel
	ProjectID    string   `gorm:"type:varchar(36);index"`
	Project      *Project `gorm:"foreignKey:ProjectID"`
	Title        string   `gorm:"type:varchar(255)"`
	Description  string
	Status       models.TaskStatus   `gorm:"type:varchar(20);index"`
	Priority     models.TaskPriority `gorm:"type:varchar(20)"`
	AssignedToID *string             `gorm:"type:varchar(36);index"`
	AssignedTo   *User               `gorm:"foreignKey:AssignedToID"`
	CreatedByID  string              `gorm:"type:varchar(36)"`
	Deadline     *time.Time
	SubmittedAt  *time.Time
	CompletedAt  *time.Time
}
