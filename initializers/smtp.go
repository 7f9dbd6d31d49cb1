package initializers

import (
	log "github.com/sirupsen/logrus"
	"pmfin-backend/config"
	"pmfin-backend/lib/smtp"
)

func InitSmtp() {
	conf := config.Conf.Smtp
	if err := smtp.Connect(conf.User, conf.Password, conf.Host, conf.Port, *conf.TLSEnabled); err != nil {
		log.WithError(err).Fatal("failed to init smtp client")
	}
	if !smtp.Instance.IsConfigured() {
		log.Info("smtp is not configured, notification e-mails are disabled")
	}
}
