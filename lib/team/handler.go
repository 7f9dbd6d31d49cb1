package teamhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	teamstore "pmfin-backend/lib/team/store"
	"pmfin-backend/models"
	projectapimodels "pmfin-backend/models/api/project"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Create(data projectapimodels.TeamData) (id string, err error)
	Update(id string, data projectapimodels.TeamData) error
	GetByID(id string) (projectapimodels.TeamView, error)
	List() ([]projectapimodels.TeamView, error)
	Delete(id string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	Instance = impl{
		store: teamstore.NewInstance(tx),
	}
}

type impl struct {
	store teamstore.Provider
}

func (i impl) Create(data projectapimodels.TeamData) (id string, err error) {
	rec := dbmodels.Team{
		Name:        data.Name,
		Description: data.Description,
	}
	id, err = i.store.Create(rec, uniq(data.MemberIDs))
	if err != nil {
		log.WithError(err).Error("failed to create team")
		return "", err
	}
	log.WithField("team_id", id).
		WithField("members", len(data.MemberIDs)).
		Info("team created")
	return id, nil
}

func (i impl) Update(id string, data projectapimodels.TeamData) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        data.Name,
		"description": data.Description,
	}
	if err := i.store.Update(id, updMap, uniq(data.MemberIDs)); err != nil {
		log.WithField("team_id", id).WithError(err).Error("failed to update team")
		return err
	}
	log.WithField("team_id", id).Info("team updated")
	return nil
}

func (i impl) GetByID(id string) (projectapimodels.TeamView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return projectapimodels.TeamView{}, err
	}
	return projectapimodels.TeamConvert(*rec), nil
}

func (i impl) List() ([]projectapimodels.TeamView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	list := make([]projectapimodels.TeamView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, projectapimodels.TeamConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) (hMsg string, err error) {
	if _, err = i.getRec(id); err != nil {
		return "", err
	}
	used, err := i.store.UsedByProjects(id)
	if err != nil {
		return "", err
	}
	if used {
		return "team is assigned to a project", nil
	}
	if err = i.store.Delete(id); err != nil {
		return "", err
	}
	log.WithField("team_id", id).Info("team deleted")
	return "", nil
}

func (i impl) getRec(id string) (*dbmodels.Team, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "team not found")
	}
	return rec, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
