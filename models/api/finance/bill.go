package financeapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	dbmodels "pmfin-backend/models/db"
)

type BillData struct {
	ProjectID     string               `json:"project_id"`
	Title         string               `json:"title"`
	Type          models.FlowType      `json:"type"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	DueDate       *time.Time           `json:"due_date"`
}

func (d BillData) Validate() error {
	if d.ProjectID == "" {
		return errors.New("project_id is required")
	}
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if !d.Type.IsValid() {
		return errors.Errorf("unknown bill type: %v", d.Type)
	}
	if !d.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if d.PaymentStatus != "" && !d.PaymentStatus.IsValid() {
		return errors.Errorf("unknown payment status: %v", d.PaymentStatus)
	}
	return nil
}

type PaymentStatusData struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

func (d PaymentStatusData) Validate() error {
	if !d.PaymentStatus.IsValid() {
		return errors.Errorf("unknown payment status: %v", d.PaymentStatus)
	}
	return nil
}

type BillView struct {
	ID            string               `json:"id"`
	ProjectID     string               `json:"project_id"`
	Title         string               `json:"title"`
	Type          models.FlowType      `json:"type"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	DueDate       *time.Time           `json:"due_date,omitempty"`
}

func BillConvert(rec dbmodels.ProjectBill) BillView {
	return BillView{
		ID:            rec.ID,
		ProjectID:     rec.ProjectID,
		Title:         rec.Title,
		Type:          rec.Type,
		Amount:        rec.Amount,
		PaymentStatus: rec.PaymentStatus,
		DueDate:       rec.DueDate,
	}
}

type BillSummary struct {
	ProjectID string                                   `json:"project_id"`
	Totals    map[models.PaymentStatus]decimal.Decimal `json:"totals"`
}

type BillFilter struct {
	apimodels.Pagination
	ProjectID     string               `json:"project_id" query:"project_id"`
	PaymentStatus models.PaymentStatus `json:"payment_status" query:"payment_status"`
	Type          models.FlowType      `json:"type" query:"type"`
}
