package invoicestore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Invoice) (id string, err error)
	GetByID(id string) (*dbmodels.Invoice, error)
	NumberExists(number, excludeID string) (bool, error)
	List(filter financeapimodels.InvoiceFilter) (list []dbmodels.Invoice, rowCount int64, err error)
	ListAll(filter financeapimodels.InvoiceFilter) ([]dbmodels.Invoice, error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateStatus applies updMap only while the record still has status from.
	UpdateStatus(id string, from models.InvoiceStatus, updMap map[string]interface{}) (updated bool, err error)
	Delete(id string) error
	// ListDue returns SENT invoices with due date before now.
	ListDue(now time.Time, limit int) ([]dbmodels.Invoice, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Invoice) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Invoice, error) {
	rec := dbmodels.Invoice{}
	err := i.withRefs(i.db).
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

func (i impl) NumberExists(number, excludeID string) (bool, error) {
	var count int64
	tx := i.db.
		Model(&dbmodels.Invoice{}).
		Where("number = ?", number)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	err := tx.Count(&count).Error
	return count > 0, err
}

func (i impl) filtered(filter financeapimodels.InvoiceFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.Invoice{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.VendorID != "" {
		tx = tx.Where("vendor_id = ?", filter.VendorID)
	}
	return tx
}

func (i impl) List(filter financeapimodels.InvoiceFilter) (list []dbmodels.Invoice, rowCount int64, err error) {
	if err = i.filtered(filter).Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.Invoice{}
	err = i.withRefs(i.filtered(filter)).
		Order("issue_date desc").
		Order("number").
		Limit(limit).
		Offset(filter.Offset()).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListAll(filter financeapimodels.InvoiceFilter) ([]dbmodels.Invoice, error) {
	list := []dbmodels.Invoice{}
	err := i.withRefs(i.filtered(filter)).
		Order("issue_date").
		Order("number").
		Find(&list).
		Error
	return list, err
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Invoice{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) UpdateStatus(id string, from models.InvoiceStatus, updMap map[string]interface{}) (bool, error) {
	result := i.db.
		Model(&dbmodels.Invoice{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Invoice{}).
		Error
}

func (i impl) ListDue(now time.Time, limit int) ([]dbmodels.Invoice, error) {
	list := []dbmodels.Invoice{}
	err := i.db.
		Where("status = ?", models.InvoiceStatusSent).
		Where("due_date < ?", now).
		Order("due_date").
		Limit(limit).
		Find(&list).
		Error
	return list, err
}

func (i impl) withRefs(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Project").
		Preload("Vendor").
		Preload("Category").
		Preload("Tax")
}
