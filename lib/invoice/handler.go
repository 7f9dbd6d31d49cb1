package invoicehandler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"pmfin-backend/config"
	taxstore "pmfin-backend/lib/dicts/tax/store"
	"pmfin-backend/lib/events"
	pdfexport "pmfin-backend/lib/export/pdf"
	xlsexport "pmfin-backend/lib/export/xls"
	invoicestore "pmfin-backend/lib/invoice/store"
	notificationhandler "pmfin-backend/lib/notification"
	"pmfin-backend/lib/utils/helpers"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/lib/utils/lock"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, data financeapimodels.InvoiceData) (id, hMsg string, err error)
	Update(actor models.Actor, id string, data financeapimodels.InvoiceData) (hMsg string, err error)
	Delete(actor models.Actor, id string) (hMsg string, err error)
	GetByID(id string) (financeapimodels.InvoiceView, error)
	List(filter financeapimodels.InvoiceFilter) (list []financeapimodels.InvoiceView, rowCount int64, err error)
	Send(actor models.Actor, id string) (hMsg string, err error)
	MarkPaid(actor models.Actor, id string) (hMsg string, err error)
	Cancel(actor models.Actor, id string) (hMsg string, err error)
	// MarkOverdue moves SENT invoices whose due date is before now to OVERDUE.
	MarkOverdue(ctx context.Context, now time.Time) (count int, err error)
	ExportXLSX(filter financeapimodels.InvoiceFilter) (*bytes.Buffer, error)
	PDF(id string) (fileName string, data []byte, err error)
}

type Notifier interface {
	Send(userID string, code models.NotificationCode, args ...any)
}

var Instance Provider

const (
	statusLockWait  = 5 * time.Second
	overdueBatch    = 100
	overdueDateSpec = "2006-01-02"
)

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:    invoicestore.NewInstance(tx),
		taxStore: taxstore.NewInstance(tx),
		notifier: notificationhandler.Instance,
		events:   events.Instance,
		xls:      xlsexport.Instance,
		company: pdfexport.Company{
			Name:    config.Conf.Company.Name,
			Address: config.Conf.Company.Address,
			Email:   config.Conf.Company.Email,
		},
		currency: config.Conf.Company.Currency,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"taxStore", instance.taxStore,
		"notifier", instance.notifier,
		"events", instance.events,
		"xls", instance.xls,
	)
	Instance = instance
}

type impl struct {
	store    invoicestore.Provider
	taxStore taxstore.Provider
	notifier Notifier
	events   events.Provider
	xls      xlsexport.Provider
	company  pdfexport.Company
	currency string
}

func (i impl) Create(actor models.Actor, data financeapimodels.InvoiceData) (id, hMsg string, err error) {
	logger := log.WithField("user_id", actor.ID).WithField("number", data.Number)
	exists, err := i.store.NumberExists(data.Number, "")
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", fmt.Sprintf("invoice %v already exists", data.Number), nil
	}
	taxAmount, hMsg, err := i.taxAmount(data)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec := dbmodels.Invoice{
		Number:      strings.TrimSpace(data.Number),
		Type:        data.Type,
		Status:      models.InvoiceStatusDraft,
		ProjectID:   nullable(data.ProjectID),
		VendorID:    nullable(data.VendorID),
		CategoryID:  nullable(data.CategoryID),
		TaxID:       nullable(data.TaxID),
		Amount:      data.Amount,
		TaxAmount:   taxAmount,
		Currency:    i.currencyOf(data),
		IssueDate:   data.IssueDate,
		DueDate:     data.DueDate,
		Notes:       data.Notes,
		CreatedByID: actor.ID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create invoice")
		return "", "", err
	}
	logger.WithField("invoice_id", id).
		WithField("total", rec.Total().String()).
		Info("invoice created")
	return id, "", nil
}

func (i impl) Update(actor models.Actor, id string, data financeapimodels.InvoiceData) (hMsg string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	if !rec.Status.AllowEdit() {
		return fmt.Sprintf("invoice in status %v can not be edited", rec.Status), nil
	}
	exists, err := i.store.NumberExists(data.Number, id)
	if err != nil {
		return "", err
	}
	if exists {
		return fmt.Sprintf("invoice %v already exists", data.Number), nil
	}
	taxAmount, hMsg, err := i.taxAmount(data)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{
		"number":      strings.TrimSpace(data.Number),
		"type":        data.Type,
		"project_id":  nullable(data.ProjectID),
		"vendor_id":   nullable(data.VendorID),
		"category_id": nullable(data.CategoryID),
		"tax_id":      nullable(data.TaxID),
		"amount":      data.Amount,
		"tax_amount":  taxAmount,
		"currency":    i.currencyOf(data),
		"issue_date":  data.IssueDate,
		"due_date":    data.DueDate,
		"notes":       data.Notes,
	}
	// status guard keeps a concurrent send from being overwritten
	updated, err := i.store.UpdateStatus(id, models.InvoiceStatusDraft, updMap)
	if err != nil {
		return "", err
	}
	if !updated {
		return "", errors.Wrap(models.ErrConflict, "invoice was changed by another request")
	}
	log.WithField("invoice_id", id).WithField("user_id", actor.ID).Info("invoice updated")
	return "", nil
}

func (i impl) Delete(actor models.Actor, id string) (hMsg string, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", err
	}
	if !rec.Status.AllowDelete() {
		return fmt.Sprintf("invoice in status %v can not be deleted", rec.Status), nil
	}
	if err = i.store.Delete(id); err != nil {
		return "", err
	}
	log.WithField("invoice_id", id).WithField("user_id", actor.ID).Info("invoice deleted")
	return "", nil
}

func (i impl) GetByID(id string) (financeapimodels.InvoiceView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return financeapimodels.InvoiceView{}, err
	}
	return financeapimodels.InvoiceConvert(*rec), nil
}

func (i impl) List(filter financeapimodels.InvoiceFilter) (list []financeapimodels.InvoiceView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]financeapimodels.InvoiceView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, financeapimodels.InvoiceConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Send(actor models.Actor, id string) (hMsg string, err error) {
	return i.changeStatus(actor, id, models.InvoiceStatusSent, map[string]interface{}{})
}

func (i impl) MarkPaid(actor models.Actor, id string) (hMsg string, err error) {
	return i.changeStatus(actor, id, models.InvoiceStatusPaid, map[string]interface{}{
		"paid_at": time.Now(),
	})
}

func (i impl) Cancel(actor models.Actor, id string) (hMsg string, err error) {
	return i.changeStatus(actor, id, models.InvoiceStatusCancelled, map[string]interface{}{})
}

func (i impl) MarkOverdue(ctx context.Context, now time.Time) (count int, err error) {
	for {
		list, err := i.store.ListDue(now, overdueBatch)
		if err != nil {
			return count, err
		}
		moved := 0
		for _, rec := range list {
			if helpers.IsContextDone(ctx) {
				return count, ctx.Err()
			}
			updated, err := i.store.UpdateStatus(rec.ID, models.InvoiceStatusSent, map[string]interface{}{
				"status": models.InvoiceStatusOverdue,
			})
			if err != nil {
				return count, err
			}
			if !updated {
				continue
			}
			moved++
			log.WithField("invoice_id", rec.ID).
				WithField("due_date", rec.DueDate.Format(overdueDateSpec)).
				Info("invoice is overdue")
			i.events.Publish(ctx, events.Event{
				Type:     events.InvoiceStatusChanged,
				EntityID: rec.ID,
				ActorID:  models.SystemUser,
				From:     string(models.InvoiceStatusSent),
				To:       string(models.InvoiceStatusOverdue),
			})
			if rec.CreatedByID != "" {
				i.notifier.Send(rec.CreatedByID, models.NotifyInvoiceOverdue, rec.Number, rec.DueDate.Format(overdueDateSpec))
			}
		}
		count += moved
		if len(list) < overdueBatch || moved == 0 {
			return count, nil
		}
	}
}

func (i impl) ExportXLSX(filter financeapimodels.InvoiceFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListAll(filter)
	if err != nil {
		return nil, err
	}
	return i.xls.ExportInvoiceList(list)
}

func (i impl) PDF(id string) (fileName string, data []byte, err error) {
	rec, err := i.getRec(id)
	if err != nil {
		return "", nil, err
	}
	data, err = pdfexport.GenerateInvoice(i.company, *rec)
	if err != nil {
		log.WithField("invoice_id", id).WithError(err).Error("failed to render invoice pdf")
		return "", nil, err
	}
	return fmt.Sprintf("invoice-%v.pdf", rec.Number), data, nil
}

func (i impl) changeStatus(actor models.Actor, id string, to models.InvoiceStatus, updMap map[string]interface{}) (hMsg string, err error) {
	if !actor.Role.IsFinance() {
		return "", errors.Wrap(models.ErrForbidden, "only finance can change invoice status")
	}
	var from models.InvoiceStatus
	locked, err := lock.WithDelay(context.Background(), "invoice:"+id, statusLockWait, func() error {
		rec, lockErr := i.getRec(id)
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
			return errors.Wrap(models.ErrConflict, "invoice status was changed by another request")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !locked {
		return "", errors.Wrap(models.ErrConflict, "invoice is being changed by another request")
	}
	if hMsg != "" {
		return hMsg, nil
	}
	log.WithField("invoice_id", id).
		WithField("user_id", actor.ID).
		WithField("old_status", from).
		WithField("new_status", to).
		Info("invoice status changed")
	i.events.Publish(context.Background(), events.Event{
		Type:     events.InvoiceStatusChanged,
		EntityID: id,
		ActorID:  actor.ID,
		From:     string(from),
		To:       string(to),
	})
	return "", nil
}

func (i impl) taxAmount(data financeapimodels.InvoiceData) (amount decimal.Decimal, hMsg string, err error) {
	if data.TaxID == "" {
		return decimal.Zero, "", nil
	}
	tax, err := i.taxStore.GetByID(data.TaxID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if tax == nil {
		return decimal.Zero, "tax not found", nil
	}
	return data.Amount.Mul(tax.Rate).Div(decimal.NewFromInt(100)).Round(2), "", nil
}

func (i impl) currencyOf(data financeapimodels.InvoiceData) string {
	if data.Currency != "" {
		return strings.ToUpper(data.Currency)
	}
	return i.currency
}

func (i impl) getRec(id string) (*dbmodels.Invoice, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "invoice not found")
	}
	return rec, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
