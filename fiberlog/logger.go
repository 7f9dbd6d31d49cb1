// Package fiberlog writes one logrus entry per API request.
package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New logs every request except CORS preflights. Server errors are logged at error level,
// other statuses from 300 up and handler errors at warn level.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	tags := getFuncTagMap(cfg)
	pid := os.Getpid()

	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		d.end = time.Now()
		d.err = err

		entry := logger.WithFields(fields(tags, c, d))
		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("api request")
		case status >= fiber.StatusMultipleChoices || err != nil:
			entry.Warn("api request")
		default:
			entry.Info("api request")
		}
		return err
	}
}

// fields skips empty string values.
func fields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	result := make(log.Fields, len(tags))
	for key, tag := range tags {
		value := tag(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		result[key] = value
	}
	return result
}
