package controllers

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/middleware"
	"pmfin-backend/models"
	apimodels "pmfin-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("%v not specified", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("invalid %v", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError maps domain errors to HTTP statuses. Unknown errors are logged and answered with 500 and msg.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrConflict):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

func (c *BaseAPIController) SendHMsg(ctx *fiber.Ctx, hMsg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
}

// GetFormFile reads a multipart file field into memory.
func (c *BaseAPIController) GetFormFile(ctx *fiber.Ctx, key string) (apimodels.FileData, error) {
	file, err := ctx.FormFile(key)
	if err != nil {
		return apimodels.FileData{}, errors.Wrapf(models.ErrValidation, "file %v not specified", key)
	}
	src, err := file.Open()
	if err != nil {
		return apimodels.FileData{}, errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()
	body, err := io.ReadAll(src)
	if err != nil {
		return apimodels.FileData{}, errors.Wrap(err, "failed to read uploaded file")
	}
	return apimodels.FileData{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        int64(len(body)),
		Reader:      bytes.NewReader(body),
	}, nil
}
