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

type ReimbursementData struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ProjectID   string          `json:"project_id"`
	CategoryID  string          `json:"category_id"`
}

func (d ReimbursementData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if !d.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

func (d RejectData) Validate() error {
	if strings.TrimSpace(d.Reason) == "" {
		return errors.New("rejection reason is required")
	}
	return nil
}

type ReimbursementFilter struct {
	apimodels.Pagination
	Status        models.ReimbursementStatus `json:"status" query:"status"`
	SubmittedByID string                     `json:"submitted_by_id" query:"submitted_by_id"`
	ProjectID     string                     `json:"project_id" query:"project_id"`
}

type AttachmentView struct {
	ID          string                `json:"id"`
	Kind        models.AttachmentKind `json:"kind"`
	FileName    string                `json:"file_name"`
	ContentType string                `json:"content_type"`
	Size        int64                 `json:"size"`
	CreatedAt   time.Time             `json:"created_at"`
}

type ReimbursementView struct {
	ID              string                       `json:"id"`
	Title           string                       `json:"title"`
	Description     string                       `json:"description"`
	Amount          decimal.Decimal              `json:"amount"`
	Status          models.ReimbursementStatus   `json:"status"`
	ProjectID       string                       `json:"project_id,omitempty"`
	CategoryID      string                       `json:"category_id,omitempty"`
	SubmittedByID   string                       `json:"submitted_by_id"`
	SubmittedByName string                       `json:"submitted_by_name,omitempty"`
	ApprovedByID    string                       `json:"approved_by_id,omitempty"`
	RejectionReason string                       `json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time                   `json:"approved_at,omitempty"`
	PaidAt          *time.Time                   `json:"paid_at,omitempty"`
	Attachments     []AttachmentView             `json:"attachments"`
	ProofMissing    bool                         `json:"proof_missing"`
	NextStatuses    []models.ReimbursementStatus `json:"next_statuses"`
	CreatedAt       time.Time                    `json:"created_at"`
}

func AttachmentConvert(rec dbmodels.Attachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		Kind:        rec.Kind,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		CreatedAt:   rec.CreatedAt,
	}
}

func ReimbursementConvert(rec dbmodels.Reimbursement) ReimbursementView {
	view := ReimbursementView{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		Amount:          rec.Amount,
		Status:          rec.Status,
		SubmittedByID:   rec.SubmittedByID,
		RejectionReason: rec.RejectionReason,
		ApprovedAt:      rec.ApprovedAt,
		PaidAt:          rec.PaidAt,
		Attachments:     make([]AttachmentView, 0, len(rec.Attachments)),
		ProofMissing:    rec.Status == models.ReimbursementPaid && rec.ProofCount() == 0,
		NextStatuses:    rec.Status.NextStatuses(),
		CreatedAt:       rec.CreatedAt,
	}
	if rec.ProjectID != nil {
		view.ProjectID = *rec.ProjectID
	}
	if rec.CategoryID != nil {
		view.CategoryID = *rec.CategoryID
	}
	if rec.SubmittedBy != nil {
		view.SubmittedByName = rec.SubmittedBy.Name
	}
	if rec.ApprovedByID != nil {
		view.ApprovedByID = *rec.ApprovedByID
	}
	for _, item := range rec.Attachments {
		view.Attachments = append(view.Attachments, AttachmentConvert(item))
	}
	return view
}

// PartialFailureMeta is returned in the response meta when a multi-step operation stopped halfway.
type PartialFailureMeta struct {
	Completed []string `json:"completed"`
	Failed    string   `json:"failed"`
}
