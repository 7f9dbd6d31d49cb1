package models

import "github.com/pkg/errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("operation not allowed")
	ErrConflict   = errors.New("record was changed concurrently")
	ErrValidation = errors.New("validation failed")
)
