package projecthandler

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	projectstore "pmfin-backend/lib/project/store"
	userstore "pmfin-backend/lib/users/store"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/models"
	projectapimodels "pmfin-backend/models/api/project"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(data projectapimodels.ProjectData) (id, hMsg string, err error)
	Update(id string, data projectapimodels.ProjectData) (hMsg string, err error)
	GetByID(id string) (projectapimodels.ProjectView, error)
	List(filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:     projectstore.NewInstance(tx),
		userStore: userstore.NewInstance(tx),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"userStore", instance.userStore,
	)
	Instance = instance
}

type impl struct {
	store     projectstore.Provider
	userStore userstore.Provider
}

func (i impl) Create(data projectapimodels.ProjectData) (id, hMsg string, err error) {
	hMsg, err = i.checkManager(data.ManagerID)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec := dbmodels.Project{
		Name:        data.Name,
		Description: data.Description,
		Budget:      data.Budget,
		StartDate:   data.StartDate,
		EndDate:     data.EndDate,
		Location:    data.Location,
		Tags:        pq.StringArray(data.Tags),
	}
	if data.ManagerID != "" {
		rec.ManagerID = &data.ManagerID
	}
	if data.TeamID != "" {
		rec.TeamID = &data.TeamID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("failed to create project")
		return "", "", err
	}
	log.WithField("project_id", id).
		WithField("project_name", rec.Name).
		Info("project created")
	return id, "", nil
}

func (i impl) Update(id string, data projectapimodels.ProjectData) (hMsg string, err error) {
	if _, err = i.getRec(id); err != nil {
		return "", err
	}
	hMsg, err = i.checkManager(data.ManagerID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{
		"name":        data.Name,
		"description": data.Description,
		"budget":      data.Budget,
		"start_date":  data.StartDate,
		"end_date":    data.EndDate,
		"location":    data.Location,
		"tags":        pq.StringArray(data.Tags),
		"manager_id":  nullable(data.ManagerID),
		"team_id":     nullable(data.TeamID),
	}
	if err = i.store.Update(id, updMap); err != nil {
		log.WithField("project_id", id).WithError(err).Error("failed to update project")
		return "", err
	}
	log.WithField("project_id", id).Info("project updated")
	return "", nil
}

func (i impl) GetByID(id string) (projectapimodels.ProjectView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return projectapimodels.ProjectView{}, err
	}
	return projectapimodels.ProjectConvert(*rec), nil
}

func (i impl) List(filter projectapimodels.ProjectFilter) (list []projectapimodels.ProjectView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]projectapimodels.ProjectView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, projectapimodels.ProjectConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Delete(id string) (hMsg string, err error) {
	if _, err = i.getRec(id); err != nil {
		return "", err
	}
	hasTasks, err := i.store.HasTasks(id)
	if err != nil {
		return "", err
	}
	if hasTasks {
		return "project has tasks", nil
	}
	if err = i.store.Delete(id); err != nil {
		return "", err
	}
	log.WithField("project_id", id).Info("project deleted")
	return "", nil
}

func (i impl) checkManager(managerID string) (hMsg string, err error) {
	if managerID == "" {
		return "", nil
	}
	user, err := i.userStore.GetByID(managerID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "manager not found", nil
	}
	if !user.Role.IsManager() {
		return fmt.Sprintf("user with role %v can not manage projects", user.Role.ToHuman()), nil
	}
	return "", nil
}

func (i impl) getRec(id string) (*dbmodels.Project, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "project not found")
	}
	return rec, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
