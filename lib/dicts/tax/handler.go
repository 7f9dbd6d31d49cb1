package taxprovider

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	taxstore "pmfin-backend/lib/dicts/tax/store"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.TaxData) (id string, err error)
	Update(id string, request dictapimodels.TaxData) error
	Get(id string) (item dictapimodels.TaxView, err error)
	FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.TaxView, err error)
	Delete(id string) (hMsg string, err error)
	// Rate returns the tax rate in percent.
	Rate(id string) (decimal.Decimal, error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	Instance = impl{
		store: taxstore.NewInstance(tx),
	}
}

type impl struct {
	store taxstore.Provider
}

func (i impl) Create(request dictapimodels.TaxData) (id string, err error) {
	rec := dbmodels.Tax{
		Name: request.Name,
		Rate: request.Rate,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("failed to create tax")
		return "", err
	}
	log.
		WithField("tax_name", rec.Name).
		WithField("rate", rec.Rate.String()).
		WithField("rec_id", id).
		Info("tax created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.TaxData) error {
	logger := log.WithField("rec_id", id)
	err := i.store.Update(id, map[string]interface{}{
		"name": request.Name,
		"rate": request.Rate,
	})
	if err != nil {
		logger.WithError(err).Error("failed to update tax")
		return err
	}
	logger.Info("tax updated")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.TaxView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.TaxView{}, err
	}
	if rec == nil {
		return dictapimodels.TaxView{}, errors.Wrap(models.ErrNotFound, "tax not found")
	}
	return dictapimodels.TaxConvert(*rec), nil
}

func (i impl) FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.TaxView, err error) {
	recList, err := i.store.FindByName(filter.Name)
	if err != nil {
		log.WithError(err).Error("failed to list taxes")
		return nil, err
	}
	list = make([]dictapimodels.TaxView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.TaxConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) (hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	used, err := i.store.InUse(id)
	if err != nil {
		return "", err
	}
	if used {
		return "tax is used by invoices", nil
	}
	if err = i.store.Delete(id); err != nil {
		logger.WithError(err).Error("failed to delete tax")
		return "", err
	}
	logger.Info("tax deleted")
	return "", nil
}

func (i impl) Rate(id string) (decimal.Decimal, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	if rec == nil {
		return decimal.Zero, errors.Wrap(models.ErrNotFound, "tax not found")
	}
	return rec.Rate, nil
}
