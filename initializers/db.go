package initializers

import (
	log "github.com/sirupsen/logrus"
	"pmfin-backend/config"
	"pmfin-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	logger := log.
		WithField("host", conf.Host).
		WithField("database", conf.Name)
	err := db.Connect(conf.Host, conf.Port, conf.Name, conf.User, conf.Password, *conf.DebugMode, *conf.MigrateOnStart)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	db.InitPreload()
}
