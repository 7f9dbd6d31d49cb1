package taskstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pmfin-backend/models"
	taskapimodels "pmfin-backend/models/api/task"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Task) (id string, err error)
	GetByID(id string) (*dbmodels.Task, error)
	List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error)
	ListByProject(projectID string) ([]dbmodels.Task, error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateStatus applies updMap only while the task still has status from.
	UpdateStatus(id string, from models.TaskStatus, updMap map[string]interface{}) (updated bool, err error)
	Delete(id string) error
	GetProject(projectID string) (*dbmodels.Project, error)
	CountByStatus() (map[models.TaskStatus]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
	err := i.db.
		Preload("Project").
		Preload("AssignedTo").
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter taskapimodels.TaskFilter) (list []dbmodels.Task, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Task{})
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.AssignedToID != "" {
		tx = tx.Where("assigned_to_id = ?", filter.AssignedToID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		tx = tx.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.Task{}
	err = tx.
		Preload("Project").
		Preload("AssignedTo").
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

func (i impl) ListByProject(projectID string) ([]dbmodels.Task, error) {
	list := []dbmodels.Task{}
	err := i.db.
		Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) UpdateStatus(id string, from models.TaskStatus, updMap map[string]interface{}) (bool, error) {
	result := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Task{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.Delete(&rec).Error
}

func (i impl) GetProject(projectID string) (*dbmodels.Project, error) {
	rec := dbmodels.Project{}
	err := i.db.
		Where("id = ?", projectID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) CountByStatus() (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}
	err := i.db.
		Model(&dbmodels.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := map[models.TaskStatus]int64{}
	for _, row := range rows {
		result[row.Status] = row.Count
	}
	return result, nil
}
