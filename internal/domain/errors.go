package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is the category for every field-constraint violation
	// raised by the entity Validate methods. The specific sentinels
	// (ErrEmptyTaskTitle, ErrInvalidEmail, ...) all wrap it, so callers can
	// classify any of them with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)
)
