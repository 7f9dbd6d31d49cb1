package reimbursementstore

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Reimbursement) (id string, err error)
	GetByID(id string) (*dbmodels.Reimbursement, error)
	List(filter financeapimodels.ReimbursementFilter) (list []dbmodels.Reimbursement, rowCount int64, err error)
	ListAll(filter financeapimodels.ReimbursementFilter) ([]dbmodels.Reimbursement, error)
	// UpdateStatus applies updMap only while the record still has status from.
	UpdateStatus(id string, from models.ReimbursementStatus, updMap map[string]interface{}) (updated bool, err error)
	AddAttachment(rec dbmodels.Attachment) (id string, err error)
	GetAttachment(reimbursementID, attachmentID string) (*dbmodels.Attachment, error)
	TotalsByStatus() (map[models.ReimbursementStatus]decimal.Decimal, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Reimbursement) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Reimbursement, error) {
	rec := dbmodels.Reimbursement{}
	err := i.db.
		Preload("SubmittedBy").
		Preload("Attachments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at")
		}).
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

func (i impl) filtered(filter financeapimodels.ReimbursementFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.Reimbursement{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.SubmittedByID != "" {
		tx = tx.Where("submitted_by_id = ?", filter.SubmittedByID)
	}
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	return tx
}

func (i impl) List(filter financeapimodels.ReimbursementFilter) (list []dbmodels.Reimbursement, rowCount int64, err error) {
	tx := i.filtered(filter)
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	list = []dbmodels.Reimbursement{}
	err = tx.
		Preload("SubmittedBy").
		Preload("Attachments").
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

func (i impl) ListAll(filter financeapimodels.ReimbursementFilter) ([]dbmodels.Reimbursement, error) {
	list := []dbmodels.Reimbursement{}
	err := i.filtered(filter).
		Preload("SubmittedBy").
		Preload("Attachments").
		Order("created_at").
		Find(&list).
		Error
	return list, err
}

func (i impl) UpdateStatus(id string, from models.ReimbursementStatus, updMap map[string]interface{}) (bool, error) {
	result := i.db.
		Model(&dbmodels.Reimbursement{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (i impl) AddAttachment(rec dbmodels.Attachment) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetAttachment(reimbursementID, attachmentID string) (*dbmodels.Attachment, error) {
	rec := dbmodels.Attachment{}
	err := i.db.
		Where("id = ?", attachmentID).
		Where("reimbursement_id = ?", reimbursementID).
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

func (i impl) TotalsByStatus() (map[models.ReimbursementStatus]decimal.Decimal, error) {
	var rows []struct {
		Status models.ReimbursementStatus
		Total  decimal.Decimal
	}
	err := i.db.
		Model(&dbmodels.Reimbursement{}).
		Select("status, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := map[models.ReimbursementStatus]decimal.Decimal{}
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}
