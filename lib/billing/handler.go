package billinghandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	billingstore "pmfin-backend/lib/billing/store"
	projectstore "pmfin-backend/lib/project/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
	dbmodels "pmfin-backend/models/db"
)

// Provider manages project bills. PaymentStatus has no transition rules:
// any valid value may replace any other.
type Provider interface {
	Create(actor models.Actor, data financeapimodels.BillData) (id, hMsg string, err error)
	Update(actor models.Actor, id string, data financeapimodels.BillData) error
	Delete(actor models.Actor, id string) error
	GetByID(id string) (financeapimodels.BillView, error)
	List(filter financeapimodels.BillFilter) (list []financeapimodels.BillView, rowCount int64, err error)
	SetPaymentStatus(actor models.Actor, id string, status models.PaymentStatus) error
	Summary(projectID string) (financeapimodels.BillSummary, error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:        billingstore.NewInstance(tx),
		projectStore: projectstore.NewInstance(tx),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"projectStore", instance.projectStore,
	)
	Instance = instance
}

type impl struct {
	store        billingstore.Provider
	projectStore projectstore.Provider
}

func (i impl) Create(actor models.Actor, data financeapimodels.BillData) (id, hMsg string, err error) {
	project, err := i.projectStore.GetByID(data.ProjectID)
	if err != nil {
		return "", "", err
	}
	if project == nil {
		return "", "project not found", nil
	}
	rec := dbmodels.ProjectBill{
		ProjectID:     data.ProjectID,
		Title:         data.Title,
		Type:          data.Type,
		Amount:        data.Amount,
		PaymentStatus: data.PaymentStatus,
		DueDate:       data.DueDate,
	}
	if rec.PaymentStatus == "" {
		rec.PaymentStatus = models.PaymentStatusUnpaid
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithField("request", fmt.Sprintf("%+v", data)).WithError(err).Error("failed to create bill")
		return "", "", err
	}
	log.WithField("bill_id", id).
		WithField("project_id", rec.ProjectID).
		WithField("user_id", actor.ID).
		Info("bill created")
	return id, "", nil
}

func (i impl) Update(actor models.Actor, id string, data financeapimodels.BillData) error {
	updMap := map[string]interface{}{
		"title":    data.Title,
		"type":     data.Type,
		"amount":   data.Amount,
		"due_date": data.DueDate,
	}
	if data.PaymentStatus != "" {
		updMap["payment_status"] = data.PaymentStatus
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	log.WithField("bill_id", id).WithField("user_id", actor.ID).Info("bill updated")
	return nil
}

func (i impl) Delete(actor models.Actor, id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return err
	}
	log.WithField("bill_id", id).WithField("user_id", actor.ID).Info("bill deleted")
	return nil
}

func (i impl) GetByID(id string) (financeapimodels.BillView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return financeapimodels.BillView{}, err
	}
	return financeapimodels.BillConvert(*rec), nil
}

func (i impl) List(filter financeapimodels.BillFilter) (list []financeapimodels.BillView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]financeapimodels.BillView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, financeapimodels.BillConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) SetPaymentStatus(actor models.Actor, id string, status models.PaymentStatus) error {
	if !status.IsValid() {
		return errors.Wrapf(models.ErrValidation, "unknown payment status: %v", status)
	}
	if err := i.store.Update(id, map[string]interface{}{"payment_status": status}); err != nil {
		return err
	}
	log.WithField("bill_id", id).
		WithField("user_id", actor.ID).
		WithField("payment_status", status).
		Info("bill payment status changed")
	return nil
}

func (i impl) Summary(projectID string) (financeapimodels.BillSummary, error) {
	totals, err := i.store.TotalsByPaymentStatus(projectID)
	if err != nil {
		return financeapimodels.BillSummary{}, err
	}
	return financeapimodels.BillSummary{
		ProjectID: projectID,
		Totals:    totals,
	}, nil
}

func (i impl) getRec(id string) (*dbmodels.ProjectBill, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "bill not found")
	}
	return rec, nil
}
