package analyticsstore

import (
	"time"

	"gorm.io/gorm"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	// PaidInvoices returns invoices paid in [from, to).
	PaidInvoices(from, to time.Time) ([]dbmodels.Invoice, error)
	CountInvoices(status models.InvoiceStatus) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) PaidInvoices(from, to time.Time) ([]dbmodels.Invoice, error) {
	list := []dbmodels.Invoice{}
	err := i.db.
		Select("id", "type", "amount", "tax_amount", "paid_at").
		Where("status = ?", models.InvoiceStatusPaid).
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Find(&list).
		Error
	return list, err
}

func (i impl) CountInvoices(status models.InvoiceStatus) (int64, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Invoice{}).
		Where("status = ?", status).
		Count(&count).
		Error
	return count, err
}
