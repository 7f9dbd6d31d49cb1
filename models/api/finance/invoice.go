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

type InvoiceData struct {
	Number     string          `json:"number"`
	Type       models.FlowType `json:"type"`
	ProjectID  string          `json:"project_id"`
	VendorID   string          `json:"vendor_id"`
	CategoryID string          `json:"category_id"`
	TaxID      string          `json:"tax_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    time.Time       `json:"due_date"`
	Notes      string          `json:"notes"`
}

func (d InvoiceData) Validate() error {
	if strings.TrimSpace(d.Number) == "" {
		return errors.New("invoice number is required")
	}
	if !d.Type.IsValid() {
		return errors.Errorf("unknown invoice type: %v", d.Type)
	}
	if !d.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if d.Currency != "" && len(d.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if d.IssueDate.IsZero() || d.DueDate.IsZero() {
		return errors.New("issue_date and due_date are required")
	}
	if d.DueDate.Before(d.IssueDate) {
		return errors.New("due date cannot be before issue date")
	}
	return nil
}

type InvoiceFilter struct {
	apimodels.Pagination
	Status    models.InvoiceStatus `json:"status" query:"status"`
	Type      models.FlowType      `json:"type" query:"type"`
	ProjectID string               `json:"project_id" query:"project_id"`
	VendorID  string               `json:"vendor_id" query:"vendor_id"`
}

type InvoiceView struct {
	ID           string                 `json:"id"`
	Number       string                 `json:"number"`
	Type         models.FlowType        `json:"type"`
	Status       models.InvoiceStatus   `json:"status"`
	ProjectID    string                 `json:"project_id,omitempty"`
	ProjectName  string                 `json:"project_name,omitempty"`
	VendorID     string                 `json:"vendor_id,omitempty"`
	VendorName   string                 `json:"vendor_name,omitempty"`
	CategoryID   string                 `json:"category_id,omitempty"`
	CategoryName string                 `json:"category_name,omitempty"`
	TaxID        string                 `json:"tax_id,omitempty"`
	Amount       decimal.Decimal        `json:"amount"`
	TaxAmount    decimal.Decimal        `json:"tax_amount"`
	Total        decimal.Decimal        `json:"total"`
	Currency     string                 `json:"currency"`
	IssueDate    time.Time              `json:"issue_date"`
	DueDate      time.Time              `json:"due_date"`
	PaidAt       *time.Time             `json:"paid_at,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	NextStatuses []models.InvoiceStatus `json:"next_statuses"`
}

func InvoiceConvert(rec dbmodels.Invoice) InvoiceView {
	view := InvoiceView{
		ID:           rec.ID,
		Number:       rec.Number,
		Type:         rec.Type,
		Status:       rec.Status,
		Amount:       rec.Amount,
		TaxAmount:    rec.TaxAmount,
		Total:        rec.Total(),
		Currency:     rec.Currency,
		IssueDate:    rec.IssueDate,
		DueDate:      rec.DueDate,
		PaidAt:       rec.PaidAt,
		Notes:        rec.Notes,
		NextStatuses: rec.Status.NextStatuses(),
	}
	if rec.ProjectID != nil {
		view.ProjectID = *rec.ProjectID
	}
	if rec.Project != nil {
		view.ProjectName = rec.Project.Name
	}
	if rec.VendorID != nil {
		view.VendorID = *rec.VendorID
	}
	if rec.Vendor != nil {
		view.VendorName = rec.Vendor.Name
	}
	if rec.CategoryID != nil {
		view.CategoryID = *rec.CategoryID
	}
	if rec.Category != nil {
		view.CategoryName = rec.Category.Name
	}
	if rec.TaxID != nil {
		view.TaxID = *rec.TaxID
	}
	return view
}
