package categoryprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	categorystore "pmfin-backend/lib/dicts/category/store"
	"pmfin-backend/models"
	dictapimodels "pmfin-backend/models/api/dict"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.CategoryData) (id string, err error)
	Update(id string, request dictapimodels.CategoryData) error
	Get(id string) (item dictapimodels.CategoryView, err error)
	FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.CategoryView, err error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	Instance = impl{
		store: categorystore.NewInstance(tx),
	}
}

type impl struct {
	store categorystore.Provider
}

func (i impl) Create(request dictapimodels.CategoryData) (id string, err error) {
	rec := dbmodels.Category{
		Name: request.Name,
		Type: request.Type,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithError(err).Error("failed to create category")
		return "", err
	}
	log.
		WithField("category_name", rec.Name).
		WithField("rec_id", id).
		Info("category created")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.CategoryData) error {
	logger := log.WithField("rec_id", id)
	err := i.store.Update(id, map[string]interface{}{
		"name": request.Name,
		"type": request.Type,
	})
	if err != nil {
		logger.WithError(err).Error("failed to update category")
		return err
	}
	logger.Info("category updated")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.CategoryView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.CategoryView{}, err
	}
	if rec == nil {
		return dictapimodels.CategoryView{}, errors.Wrap(models.ErrNotFound, "category not found")
	}
	return dictapimodels.CategoryConvert(*rec), nil
}

func (i impl) FindByName(filter dictapimodels.DictFilter) (list []dictapimodels.CategoryView, err error) {
	recList, err := i.store.FindByName(filter.Name, filter.Type)
	if err != nil {
		log.WithError(err).Error("failed to list categories")
		return nil, err
	}
	list = make([]dictapimodels.CategoryView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.CategoryConvert(rec))
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
		return "category is used by finance records", nil
	}
	if err = i.store.Delete(id); err != nil {
		logger.WithError(err).Error("failed to delete category")
		return "", err
	}
	logger.Info("category deleted")
	return "", nil
}
