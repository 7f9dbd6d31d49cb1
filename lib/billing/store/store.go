package billingstore

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ProjectBill) (id string, err error)
	GetByID(id string) (*dbmodels.ProjectBill, error)
	List(filter financeapimodels.BillFilter) (list []dbmodels.ProjectBill, rowCount int64, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	TotalsByPaymentStatus(projectID string) (map[models.PaymentStatus]decimal.Decimal, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProjectBill) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ProjectBill, error) {
	rec := dbmodels.ProjectBill{}
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

func (i impl) List(filter financeapimodels.BillFilter) (list []dbmodels.ProjectBill, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.ProjectBill{})
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.PaymentStatus != "" {
		tx = tx.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.ProjectBill{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	result := i.db.
		Model(&dbmodels.ProjectBill{}).
		Where("id = ?", id).
		Updates(updMap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(models.ErrNotFound, "bill not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.ProjectBill{}).
		Error
}

func (i impl) TotalsByPaymentStatus(projectID string) (map[models.PaymentStatus]decimal.Decimal, error) {
	var rows []struct {
		PaymentStatus models.PaymentStatus
		Total         decimal.Decimal
	}
	err := i.db.
		Model(&dbmodels.ProjectBill{}).
		Select("payment_status, COALESCE(SUM(amount), 0) AS total").
		Where("project_id = ?", projectID).
		Group("payment_status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.PaymentStatus]decimal.Decimal, len(models.AllPaymentStatuses))
	for _, status := range models.AllPaymentStatuses {
		result[status] = decimal.Zero
	}
	for _, row := range rows {
		result[row.PaymentStatus] = row.Total
	}
	return result, nil
}
