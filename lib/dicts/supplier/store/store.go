package vendorstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Vendor) (id string, err error)
	GetByID(id string) (*dbmodels.Vendor, error)
	FindByName(name string) ([]dbmodels.Vendor, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	// InUse reports whether finance records reference the entry.
	InUse(id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Vendor) (id string, err error) {
	if err = i.isUnique("", rec.Name); err != nil {
		return "", err
	}
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Vendor, error) {
	rec := dbmodels.Vendor{}
	err := i.db.
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

func (i impl) FindByName(name string) ([]dbmodels.Vendor, error) {
	list := []dbmodels.Vendor{}
	tx := i.db.Model(&dbmodels.Vendor{})
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	err := tx.Order("name").Find(&list).Error
	return list, err
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	if name, ok := updMap["name"]; ok {
		if err := i.isUnique(id, name.(string)); err != nil {
			return err
		}
	}
	result := i.db.
		Model(&dbmodels.Vendor{}).
		Where("id = ?", id).
		Updates(updMap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(models.ErrNotFound, "vendor not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Vendor{}).
		Error
}

func (i impl) InUse(id string) (bool, error) {
	for _, model := range []interface{}{&dbmodels.Invoice{}} {
		var count int64
		err := i.db.
			Model(model).
			Where("vendor_id = ?", id).
			Count(&count).
			Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (i impl) isUnique(id, name string) error {
	var count int64
	tx := i.db.
		Model(&dbmodels.Vendor{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if id != "" {
		tx = tx.Where("id <> ?", id)
	}
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.Wrapf(models.ErrConflict, "vendor %q already exists", name)
	}
	return nil
}
