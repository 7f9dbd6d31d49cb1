package vendorprovider

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	vendorstore "pmfin-backend/lib/dicts/supplier/store"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
)

type Provider interface {
	Create(request dictapimodels.VendorData) (id string, err error)
	Update(id string, request dictapimodels.VendorData) error
	Get(id string) (item dictapimodels.VendorView, err error)
	FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.VendorView, err error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	Instance = impl{
		store: vendorstore.NewInstance(tx),
	}
}

type impl struct {
	store vendorstore.Provider
}

func (i impl) Create(request dictapimodels.VendorData) (id string, err error) {
	rec := dictapimodels.VendorToDB(request)
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("request", fmt.Sprintf("%+v", request)).
			WithError(err).
			Error("failed to create vendor")
		return "", err
	}
	log.
		WithField("vendor_name", rec.Name).
		WithField("rec_id", id).
		Info("vendor created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.VendorData) error {
	logger := log.WithField("rec_id", id)
	updMap := map[string]interface{}{
		"name":     request.Name,
		"email":    request.Email,
		"phone":    request.Phone,
		"address":  request.Address,
		"tax_code": request.TaxCode,
	}
	err := i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update vendor")
		return err
	}
	logger.Info("vendor updated")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.VendorView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.VendorView{}, err
	}
	if rec == nil {
		return dictapimodels.VendorView{}, errors.Wrap(models.ErrNotFound, "vendor not found")
	}
	return dictapimodels.VendorConvert(*rec), nil
}

func (i impl) FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.VendorView, err error) {
	recList, err := i.store.FindByName(filter.Name)
	if err != nil {
		log.WithError(err).Error("failed to list vendors")
		return nil, err
	}
	list = make([]dictapimodels.VendorView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.VendorConvert(rec))
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
		return "vendor is used by invoices", nil
	}
	if err = i.store.Delete(id); err != nil {
		logger.WithError(err).Error("failed to delete vendor")
		return "", err
	}
	logger.Info("vendor deleted")
	return "", nil
}
