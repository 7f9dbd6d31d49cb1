package db

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"pmfin-backend/config"
	"pmfin-backend/models"
	dbmodels "pmfin-backend/models/db"
)

func InitPreload() {
	addAdmin()
}

// addAdmin creates the first administrator when the users table has no admin yet.
func addAdmin() {
	if config.Conf.Auth.AdminEmail == "" {
		log.Warn("admin user not added: AUTH_ADMIN_EMAIL is empty")
		return
	}
	var count int64
	err := DB.Model(&dbmodels.User{}).Where("email = ?", config.Conf.Auth.AdminEmail).Count(&count).Error
	if err != nil {
		log.WithError(err).Error("failed to check admin user")
		return
	}
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.Conf.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("failed to hash admin password")
		return
	}
	rec := dbmodels.User{
		Email:    config.Conf.Auth.AdminEmail,
		Password: string(hash),
		Name:     "Administrator",
		Role:     models.AdminRole,
	}
	if err = DB.Create(&rec).Error; err != nil {
		log.WithError(err).Error("failed to add admin user")
	}
}
