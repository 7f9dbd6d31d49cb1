package fiberlog

import "github.com/sirupsen/logrus"

// Config selects the logger and the tags written for every request.
// A nil Logger writes through the logrus standard logger.
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		TagUserID,
	},
}
