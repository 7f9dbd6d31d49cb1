package reimbursementhandler

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pmfin-backend/lib/events"
	filestorage "pmfin-backend/lib/file-storage"
	notificationhandler "pmfin-backend/lib/notification"
	reimbursementstore "pmfin-backend/lib/reimbursement/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/lib/utils/lock"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, data financeapimodels.ReimbursementData) (id string, err error)
	GetByID(actor models.Actor, id string) (financeapimodels.ReimbursementView, error)
	List(actor models.Actor, filter financeapimodels.ReimbursementFilter) (list []financeapimodels.ReimbursementView, rowCount int64, err error)
	ListAll(actor models.Actor, filter financeapimodels.ReimbursementFilter) ([]dbmodels.Reimbursement, error)
	AddReceipt(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.AttachmentView, hMsg string, err error)
	GetAttachment(ctx context.Context, actor models.Actor, id, attachmentID string) (data []byte, view financeapimodels.AttachmentView, err error)
	Approve(actor models.Actor, id string) (hMsg string, err error)
	Reject(actor models.Actor, id, reason string) (hMsg string, err error)
	MarkPaid(actor models.Actor, id string) (hMsg string, err error)
	AttachProof(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.AttachmentView, hMsg string, err error)
	// PayWithProof marks the request paid and then stores the proof. When the second step
	// fails the request stays PAID without proof and a *models.PartialFailureError is returned.
	PayWithProof(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.ReimbursementView, hMsg string, err error)
	TotalsByStatus() (map[models.ReimbursementStatus]decimal.Decimal, error)
}

type Notifier interface {
	Send(userID string, code models.NotificationCode, args ...any)
}

var Instance Provider

const statusLockWait = 5 * time.Second

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:    reimbursementstore.NewInstance(tx),
		files:    filestorage.Instance,
		notifier: notificationhandler.Instance,
		events:   events.Instance,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"files", instance.files,
		"notifier", instance.notifier,
		"events", instance.events,
	)
	Instance = instance
}

type impl struct {
	store    reimbursementstore.Provider
	files    filestorage.Provider
	notifier Notifier
	events   events.Provider
}

func (i impl) Create(actor models.Actor, data financeapimodels.ReimbursementData) (id string, err error) {
	rec := dbmodels.Reimbursement{
		Title:         data.Title,
		Description:   data.Description,
		Amount:        data.Amount,
		Status:        models.ReimbursementPending,
		SubmittedByID: actor.ID,
	}
	if data.ProjectID != "" {
		rec.ProjectID = &data.ProjectID
	}
	if data.CategoryID != "" {
		rec.CategoryID = &data.CategoryID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	log.WithField("reimbursement_id", id).
		WithField("user_id", actor.ID).
		WithField("amount", rec.Amount.String()).
		Info("reimbursement submitted")
	return id, nil
}

func (i impl) GetByID(actor models.Actor, id string) (financeapimodels.ReimbursementView, error) {
	rec, err := i.getVisible(actor, id)
	if err != nil {
		return financeapimodels.ReimbursementView{}, err
	}
	return financeapimodels.ReimbursementConvert(*rec), nil
}

func (i impl) List(actor models.Actor, filter financeapimodels.ReimbursementFilter) (list []financeapimodels.ReimbursementView, rowCount int64, err error) {
	if !actor.Role.IsFinance() {
		filter.SubmittedByID = actor.ID
	}
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]financeapimodels.ReimbursementView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, financeapimodels.ReimbursementConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListAll(actor models.Actor, filter financeapimodels.ReimbursementFilter) ([]dbmodels.Reimbursement, error) {
	if !actor.Role.IsFinance() {
		filter.SubmittedByID = actor.ID
	}
	return i.store.ListAll(filter)
}

func (i impl) AddReceipt(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.AttachmentView, hMsg string, err error) {
	rec, err := i.getVisible(actor, id)
	if err != nil {
		return view, "", err
	}
	if rec.Status != models.ReimbursementPending {
		return view, "receipts can only be added to pending requests", nil
	}
	view, err = i.saveAttachment(ctx, actor, rec.ID, models.AttachmentReceipt, file)
	return view, "", err
}

func (i impl) GetAttachment(ctx context.Context, actor models.Actor, id, attachmentID string) (data []byte, view financeapimodels.AttachmentView, err error) {
	if _, err = i.getVisible(actor, id); err != nil {
		return nil, view, err
	}
	att, err := i.store.GetAttachment(id, attachmentID)
	if err != nil {
		return nil, view, err
	}
	if att == nil {
		return nil, view, errors.Wrap(models.ErrNotFound, "attachment not found")
	}
	data, err = i.files.GetFile(ctx, att.ObjectKey)
	if err != nil {
		return nil, view, err
	}
	return data, financeapimodels.AttachmentConvert(*att), nil
}

func (i impl) Approve(actor models.Actor, id string) (hMsg string, err error) {
	now := time.Now()
	rec, hMsg, err := i.changeStatus(actor, id, models.ReimbursementApproved, map[string]interface{}{
		"approved_by_id": actor.ID,
		"approved_at":    now,
	})
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	i.notifier.Send(rec.SubmittedByID, models.NotifyReimbursementApproved, rec.Title)
	return "", nil
}

func (i impl) Reject(actor models.Actor, id, reason string) (hMsg string, err error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "rejection reason is required", nil
	}
	rec, hMsg, err := i.changeStatus(actor, id, models.ReimbursementRejected, map[string]interface{}{
		"approved_by_id":   actor.ID,
		"rejection_reason": reason,
	})
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	i.notifier.Send(rec.SubmittedByID, models.NotifyReimbursementRejected, rec.Title, reason)
	return "", nil
}

func (i impl) MarkPaid(actor models.Actor, id string) (hMsg string, err error) {
	rec, hMsg, err := i.changeStatus(actor, id, models.ReimbursementPaid, map[string]interface{}{
		"paid_at": time.Now(),
	})
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	i.notifier.Send(rec.SubmittedByID, models.NotifyReimbursementPaid, rec.Title)
	return "", nil
}

func (i impl) AttachProof(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.AttachmentView, hMsg string, err error) {
	if !actor.Role.IsFinance() {
		return view, "", errors.Wrap(models.ErrForbidden, "only finance can attach payment proof")
	}
	rec, err := i.getRec(id)
	if err != nil {
		return view, "", err
	}
	switch rec.Status {
	case models.ReimbursementApproved, models.ReimbursementPaid:
	case models.ReimbursementPending, models.ReimbursementRejected:
		return view, fmt.Sprintf("payment proof can not be attached to a %v request", rec.Status), nil
	}
	view, err = i.saveAttachment(ctx, actor, rec.ID, models.AttachmentPaymentProof, file)
	if err != nil {
		return view, "", err
	}
	i.events.Publish(ctx, events.Event{
		Type:     events.ReimbursementProofAdded,
		EntityID: rec.ID,
		ActorID:  actor.ID,
		Attrs:    map[string]string{"attachment_id": view.ID},
	})
	return view, "", nil
}

func (i impl) PayWithProof(ctx context.Context, actor models.Actor, id string, file apimodels.FileData) (view financeapimodels.ReimbursementView, hMsg string, err error) {
	hMsg, err = i.MarkPaid(actor, id)
	if err != nil || hMsg != "" {
		return view, hMsg, err
	}
	_, proofMsg, proofErr := i.AttachProof(ctx, actor, id, file)
	if proofErr == nil && proofMsg != "" {
		proofErr = errors.New(proofMsg)
	}
	rec, err := i.getRec(id)
	if err != nil {
		return view, "", err
	}
	view = financeapimodels.ReimbursementConvert(*rec)
	if proofErr != nil {
		log.WithError(proofErr).
			WithField("reimbursement_id", id).
			WithField("user_id", actor.ID).
			Error("reimbursement is paid but payment proof was not saved")
		return view, "", &models.PartialFailureError{
			Completed: []string{models.StepMarkPaid},
			Failed:    models.StepAttachProof,
			Err:       proofErr,
		}
	}
	return view, "", nil
}

func (i impl) TotalsByStatus() (map[models.ReimbursementStatus]decimal.Decimal, error) {
	return i.store.TotalsByStatus()
}

func (i impl) changeStatus(actor models.Actor, id string, to models.ReimbursementStatus, updMap map[string]interface{}) (rec *dbmodels.Reimbursement, hMsg string, err error) {
	logger := log.
		WithField("reimbursement_id", id).
		WithField("user_id", actor.ID).
		WithField("new_status", to)
	if !actor.Role.IsFinance() {
		return nil, "", errors.Wrap(models.ErrForbidden, "only finance can process reimbursements")
	}
	var from models.ReimbursementStatus
	locked, err := lock.WithDelay(context.Background(), "reimbursement:"+id, statusLockWait, func() error {
		var lockErr error
		rec, lockErr = i.getRec(id)
		if lockErr != nil {
			return lockErr
		}
		from = rec.Status
		if !from.IsAllowChange(to) {
			hMsg = fmt.Sprintf("status change from %v to %v is not allowed", from, to)
			return nil
		}
		updMap["status"] = to
		updated, lockErr := i.store.UpdateStatus(id, from, updMap)
		if lockErr != nil {
			return lockErr
		}
		if !updated {
			return errors.Wrap(models.ErrConflict, "reimbursement status was changed by another request")
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if !locked {
		return nil, "", errors.Wrap(models.ErrConflict, "reimbursement is being changed by another request")
	}
	if hMsg != "" {
		return nil, hMsg, nil
	}
	logger.WithField("old_status", from).Info("reimbursement status changed")
	i.events.Publish(context.Background(), events.Event{
		Type:     events.ReimbursementStatusChanged,
		EntityID: id,
		ActorID:  actor.ID,
		From:     string(from),
		To:       string(to),
	})
	return rec, "", nil
}

func (i impl) saveAttachment(ctx context.Context, actor models.Actor, reimbursementID string, kind models.AttachmentKind, file apimodels.FileData) (financeapimodels.AttachmentView, error) {
	key := objectKey(reimbursementID, file.FileName)
	if err := i.files.UploadFile(ctx, key, file.Reader, file.Size, file.ContentType); err != nil {
		return financeapimodels.AttachmentView{}, err
	}
	rec := dbmodels.Attachment{
		ReimbursementID: reimbursementID,
		Kind:            kind,
		FileName:        file.FileName,
		ContentType:     file.ContentType,
		ObjectKey:       key,
		Size:            file.Size,
		UploadedByID:    actor.ID,
	}
	id, err := i.store.AddAttachment(rec)
	if err != nil {
		if delErr := i.files.DeleteFile(ctx, key); delErr != nil {
			log.WithError(delErr).WithField("object_key", key).Warn("failed to delete orphan file")
		}
		return financeapimodels.AttachmentView{}, err
	}
	rec.ID = id
	log.WithField("reimbursement_id", reimbursementID).
		WithField("attachment_id", id).
		WithField("kind", kind).
		Info("attachment saved")
	return financeapimodels.AttachmentConvert(rec), nil
}

// getVisible returns the request when actor submitted it or works in finance.
func (i impl) getVisible(actor models.Actor, id string) (*dbmodels.Reimbursement, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsFinance() && rec.SubmittedByID != actor.ID {
		return nil, errors.Wrap(models.ErrForbidden, "reimbursement belongs to another user")
	}
	return rec, nil
}

func (i impl) getRec(id string) (*dbmodels.Reimbursement, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "reimbursement not found")
	}
	return rec, nil
}

func objectKey(reimbursementID, fileName string) string {
	return path.Join("reimbursement", reimbursementID, uuid.NewString()+path.Ext(fileName))
}
