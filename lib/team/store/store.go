package teamstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Team, memberIDs []string) (id string, err error)
	GetByID(id string) (*dbmodels.Team, error)
	List() ([]dbmodels.Team, error)
	Update(id string, updMap map[string]interface{}, memberIDs []string) error
	Delete(id string) error
	UsedByProjects(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Team, memberIDs []string) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(&rec).Error; err != nil {
			return err
		}
		return replaceMembers(tx, &rec, memberIDs)
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Team, error) {
	rec := dbmodels.Team{}
	err := i.db.
		Preload("Members").
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

func (i impl) List() ([]dbmodels.Team, error) {
	list := []dbmodels.Team{}
	err := i.db.
		Preload("Members").
		Order("name").
		Find(&list).
		Error
	return list, err
}

func (i impl) Update(id string, updMap map[string]interface{}, memberIDs []string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.Team{BaseModel: dbmodels.BaseModel{ID: id}}
		err := tx.
			Model(&rec).
			Updates(updMap).
			Error
		if err != nil {
			return err
		}
		return replaceMembers(tx, &rec, memberIDs)
	})
}

func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		rec := dbmodels.Team{BaseModel: dbmodels.BaseModel{ID: id}}
		if err := tx.Model(&rec).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&rec).Error
	})
}

func (i impl) UsedByProjects(id string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Project{}).
		Where("team_id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

func replaceMembers(tx *gorm.DB, rec *dbmodels.Team, memberIDs []string) error {
	members := []dbmodels.User{}
	if len(memberIDs) > 0 {
		if err := tx.Where("id IN ?", memberIDs).Find(&members).Error; err != nil {
			return err
		}
		if len(members) != len(memberIDs) {
			return errors.Wrap(models.ErrValidation, "some team members do not exist")
		}
	}
	return tx.Model(rec).Association("Members").Replace(members)
}
