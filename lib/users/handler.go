package usershandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	userstore "pmfin-backend/lib/users/store"
	authutils "pmfin-backend/lib/utils/auth-utils"
	initchecker "pmfin-backend/lib/utils/init-checker"
	"pmfin-backend/models"
	userapimodels "pmfin-backend/models/api/user"
	dbmodels "pmfin-backend/models/db"
)

type Provider interface {
	Login(request userapimodels.LoginRequest) (resp userapimodels.LoginResponse, hMsg string, err error)
	GetActive(userID string) (*dbmodels.User, error)
	GetSession(userID string) (userapimodels.Session, error)
	GetByID(id string) (userapimodels.UserView, error)
	List(filter userapimodels.UserFilter) (list []userapimodels.UserView, rowCount int64, err error)
	Create(request userapimodels.UserCreateData) (id string, hMsg string, err error)
	SetRole(actorID, id string, role models.UserRole) error
	Ban(actorID, id, reason string) error
	Unban(id string) error
	Delete(actorID, id string) error
}

var Instance Provider

func NewHandler(tx *gorm.DB) {
	instance := impl{
		store:    userstore.NewInstance(tx),
		tokenGen: authutils.GetToken,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store    userstore.Provider
	tokenGen func(userID, name string, role models.UserRole) (string, error)
}

const wrongCredentials = "wrong email or password"

func (i impl) Login(request userapimodels.LoginRequest) (resp userapimodels.LoginResponse, hMsg string, err error) {
	logger := log.WithField("email", request.Email)
	rec, err := i.store.FindByEmail(request.Email)
	if err != nil {
		return resp, "", errors.Wrap(err, "failed to find user")
	}
	if rec == nil {
		return resp, wrongCredentials, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(request.Password)) != nil {
		logger.Info("login with wrong password")
		return resp, wrongCredentials, nil
	}
	if rec.Banned {
		return resp, "user is banned", nil
	}
	token, err := i.tokenGen(rec.ID, rec.Name, rec.Role)
	if err != nil {
		return resp, "", errors.Wrap(err, "failed to issue token")
	}
	now := time.Now()
	if err = i.store.Update(rec.ID, map[string]interface{}{"last_login": now}); err != nil {
		logger.WithError(err).Warn("failed to save last login")
	}
	logger.WithField("user_id", rec.ID).Info("user logged in")
	return userapimodels.LoginResponse{
		Token:   token,
		Session: userapimodels.SessionConvert(*rec),
	}, "", nil
}

// GetActive returns the persisted user or nil when it does not exist.
func (i impl) GetActive(userID string) (*dbmodels.User, error) {
	if userID == "" {
		return nil, nil
	}
	return i.store.GetByID(userID)
}

func (i impl) GetSession(userID string) (userapimodels.Session, error) {
	rec, err := i.getRec(userID)
	if err != nil {
		return userapimodels.Session{}, err
	}
	return userapimodels.SessionConvert(*rec), nil
}

func (i impl) GetByID(id string) (userapimodels.UserView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) List(filter userapimodels.UserFilter) (list []userapimodels.UserView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, userapimodels.UserConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Create(request userapimodels.UserCreateData) (id string, hMsg string, err error) {
	existed, err := i.store.FindByEmail(request.Email)
	if err != nil {
		return "", "", err
	}
	if existed != nil {
		return "", "user with this email already exists", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to hash password")
	}
	rec := dbmodels.User{
		Email:    request.Email,
		Password: string(hash),
		Name:     request.Name,
		Role:     request.Role,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.WithField("user_id", id).WithField("role", rec.Role).Info("user created")
	return id, "", nil
}

func (i impl) SetRole(actorID, id string, role models.UserRole) error {
	if !role.IsValid() {
		return errors.Errorf("unknown role: %v", role)
	}
	if actorID == id {
		return errors.Wrap(models.ErrForbidden, "own role can not be changed")
	}
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.store.Update(id, map[string]interface{}{"role": role}); err != nil {
		return err
	}
	log.WithField("user_id", id).
		WithField("actor_id", actorID).
		WithField("role", role).
		Info("user role changed")
	return nil
}

func (i impl) Ban(actorID, id, reason string) error {
	if actorID == id {
		return errors.Wrap(models.ErrForbidden, "own account can not be banned")
	}
	if _, err := i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"banned":     true,
		"ban_reason": reason,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	log.WithField("user_id", id).WithField("actor_id", actorID).Info("user banned")
	return nil
}

func (i impl) Unban(id string) error {
	if _, err := i.getRec(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"banned":     false,
		"ban_reason": "",
	}
	if err := i.store.Update(id, updMap); err != nil {
		return err
	}
	log.WithField("user_id", id).Info("user unbanned")
	return nil
}

func (i impl) Delete(actorID, id string) error {
	if actorID == id {
		return errors.Wrap(models.ErrForbidden, "own account can not be deleted")
	}
	if _, err := i.getRec(id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return err
	}
	log.WithField("user_id", id).WithField("actor_id", actorID).Info("user deleted")
	return nil
}

func (i impl) getRec(id string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "user not found")
	}
	return rec, nil
}
