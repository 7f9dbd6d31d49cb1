package fiberlog

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{Logger: logger, Tags: []string{TagStatus, TagMethod, TagPath, TagUserID}}))
	app.Get("/ok", func(c *fiber.Ctx) error {
		c.Locals(TagUserID, "u1")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	t.Run("success is info", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, 200, entry.Data[TagStatus])
		require.Equal(t, "/ok", entry.Data[TagPath])
		require.Equal(t, "u1", entry.Data[TagUserID])
	})
	t.Run("error status is warn", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, 404, entry.Data[TagStatus])
	})
	t.Run("server error is error", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/broken", nil))
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.ErrorLevel, entry.Level)
		_, hasUser := entry.Data[TagUserID]
		require.False(t, hasUser)
	})
}
