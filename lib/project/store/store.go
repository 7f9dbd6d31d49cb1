package projectstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	projectapimodels "pmfin-backend/models/api/project"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Project) (id string, err error)
	GetByID(id string) (*dbmodels.Project, error)
	List(filter projectapimodels.ProjectFilter) (list []dbmodels.Project, rowCount int64, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	HasTasks(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Project) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Project, error) {
	rec := dbmodels.Project{}
	err := i.db.
		Preload("Manager").
		Preload("Team").
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

func (i impl) List(filter projectapimodels.ProjectFilter) (list []dbmodels.Project, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Project{})
	if filter.Search != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.ManagerID != "" {
		tx = tx.Where("manager_id = ?", filter.ManagerID)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.Project{}
	err = tx.
		Preload("Manager").
		Preload("Team").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Project{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Project{}).
		Error
}

func (i impl) HasTasks(id string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("project_id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}
