package dbmodels

import (
	"time"

	"github.com/shopspring/decimal"
	"pmfin-backend/models"
)

type Invoice struct {
	BaseModel
	Number      string               `gorm:"type:varchar(64);uniqueIndex"`
	Type        models.FlowType      `gorm:"type:varchar(20)"`
	Status      models.InvoiceStatus `gorm:"type:varchar(20);index"`
	ProjectID   *string              `gorm:"type:varchar(36);index"`
	Project     *Project             `gorm:"foreignKey:ProjectID"`
	VendorID    *string              `gorm:"type:varchar(36)"`
	Vendor      *Vendor              `gorm:"foreignKey:VendorID"`
	CategoryID  *string              `gorm:"type:varchar(36)"`
	Category    *Category            `gorm:"foreignKey:CategoryID"`
	TaxID       *string              `gorm:"type:varchar(36)"`
	Tax         *Tax                 `gorm:"foreignKey:TaxID"`
	Amount      decimal.Decimal      `gorm:"type:numeric(14,2)"`
	TaxAmount   decimal.Decimal      `gorm:"type:numeric(14,2)"`
	Currency    string               `gorm:"type:varchar(3)"`
	IssueDate   time.Time
	DueDate     time.Time
	PaidAt      *time.Time
	Notes       string
	CreatedByID string `gorm:"type:varchar(36)"`
}

func (i Invoice) Total() decimal.Decimal {
	return i.Amount.Add(i.TaxAmount)
}

type ProjectBill struct {
	BaseModel
	ProjectID     string               `gorm:"type:varchar(36);index"`
	Project       *Project             `gorm:"foreignKey:ProjectID"`
	Title         string               `gorm:"type:varchar(255)"`
	Type          models.FlowType      `gorm:"type:varchar(20)"`
	Amount        decimal.Decimal      `gorm:"type:numeric(14,2)"`
	PaymentStatus models.PaymentStatus `gorm:"type:varchar(20);index"`
	DueDate       *time.Time
}

type Reimbursement struct {
	BaseModel
	Title           string `gorm:"type:varchar(255)"`
	Description     string
	Amount          decimal.Decimal            `gorm:"type:numeric(14,2)"`
	Status          models.ReimbursementStatus `gorm:"type:varchar(20);index"`
	ProjectID       *string                    `gorm:"type:varchar(36)"`
	CategoryID      *string                    `gorm:"type:varchar(36)"`
	SubmittedByID   string                     `gorm:"type:varchar(36);index"`
	SubmittedBy     *User                      `gorm:"foreignKey:SubmittedByID"`
	ApprovedByID    *string                    `gorm:"type:varchar(36)"`
	ApprovedBy      *User                      `gorm:"foreignKey:ApprovedByID"`
	RejectionReason string
	ApprovedAt      *time.Time
	PaidAt          *time.Time
	Attachments     []Attachment `gorm:"foreignKey:ReimbursementID"`
}

func (r Reimbursement) ProofCount() int {
	count := 0
	for _, item := range r.Attachments {
		if item.Kind == models.AttachmentPaymentProof {
			count++
		}
	}
	return count
}

type Attachment struct {
	BaseModel
	ReimbursementID string                `gorm:"type:varchar(36);index"`
	Kind            models.AttachmentKind `gorm:"type:varchar(20)"`
	FileName        string                `gorm:"type:varchar(255)"`
	ContentType     string                `gorm:"type:varchar(128)"`
	ObjectKey       string                `gorm:"type:varchar(255)"`
	Size            int64
	UploadedByID    string `gorm:"type:varchar(36)"`
}
