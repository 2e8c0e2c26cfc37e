package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This is the single translation point from the
// service error taxonomy to the HTTP surface.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors. ErrValidation covers every field-constraint
	// sentinel raised by the entity Validate methods.
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Service-level errors carry messages constructed for
// clients ("Task not found with id: 7"); anything else collapses to a
// generic message so internal detail never leaks.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}

	var duplicate *service.DuplicateEmailError
	if errors.As(err, &duplicate) {
		return duplicate.Error()
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, domain.ErrValidation):
		// Validation sentinels carry constraint text written for clients
		// ("task title must be at least 3 characters long").
		return err.Error()
	default:
		return "An unexpected error occurred"
	}
}

// ValidationErrorDetails converts validator errors into a map from JSON field
// name to a human-friendly violation message, suitable for the
// validationErrors field of the error response.
func ValidationErrorDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "invalid payload"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldErrorMessage(fe)
	}
	return out
}

// fieldErrorMessage maps a validator tag to a stable violation message.
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
