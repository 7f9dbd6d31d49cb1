package initializers

import (
	log "github.com/sirupsen/logrus"
	"pmfin-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

// InitLogger configures the global logger and returns the request logger config for fiberlog.
func InitLogger(level string) *fiberlog.Config {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetFormatter(jsonFormatter())
	log.SetLevel(lvl)
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
	}

	requestLogger := log.New()
	requestLogger.SetFormatter(jsonFormatter())
	requestLogger.SetLevel(lvl)
	return &fiberlog.Config{
		Logger: requestLogger,
		Tags: []string{
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
			fiberlog.TagBytesIn,
			fiberlog.TagError,
		},
	}
}
