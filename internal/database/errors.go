package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInUse              = errors.New("record is still referenced")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFullyDepreciated   = errors.New("asset is fully depreciated")
)

// ValidationError names the offending field. It matches ErrValidation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func notFound(entity string, key any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
	}
	return err
}

func inUse(entity string, key any, dependents string, n int64) error {
	return fmt.Errorf("%s %v has %d %s: %w", entity, key, n, dependents, ErrInUse)
}
