package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/go-retryablehttp"
	log "github.com/sirupsen/logrus"
)

type errNotifyPayload struct {
	Code   int    `json:"code"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Error  string `json:"error"`
}

// ErrNotify posts 5xx responses to addr in the background.
func ErrNotify(addr string) fiber.Handler {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		body := string(c.Response().Body())
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Warn("error unmarshalling response body in middleware")
		}
		path := strings.Clone(c.OriginalURL())
		if r := c.Route(); r != nil {
			path = r.Path
		}
		payload := errNotifyPayload{
			Code:   statusCode,
			Method: strings.Clone(c.Method()),
			Path:   path,
			Error:  data.Message,
		}
		if payload.Error == "" {
			payload.Error = body
		}

		go func() {
			raw, mErr := json.Marshal(payload)
			if mErr != nil {
				return
			}
			resp, reqErr := client.Post(addr, fiber.MIMEApplicationJSON, raw)
			if reqErr != nil {
				log.WithError(reqErr).Warn("error sending error notification")
				return
			}
			_ = resp.Body.Close()
		}()
		return err
	}
}
