package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/priority-sorter/internal/api/shared"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/export"
	"github.com/phrazzld/priority-sorter/internal/service"
	"github.com/phrazzld/priority-sorter/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidQuadrant),
		errors.Is(err, export.ErrUnsupportedFormat):
		return http.StatusBadRequest

	// Validation errors
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, service.ErrInvalidImportMode),
		errors.Is(err, export.ErrInvalidPayload),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return "Task not found"

	case store.IsDuplicateError(err):
		return "Task already exists"

	case errors.Is(err, domain.ErrInvalidQuadrant):
		return "Invalid quadrant ID. Must be 1-4."

	case errors.Is(err, export.ErrUnsupportedFormat):
		return "Unsupported format. Use json, yaml, csv or pdf."

	case errors.Is(err, service.ErrInvalidImportMode):
		return "Invalid import mode. Use replace or merge."

	case errors.Is(err, export.ErrInvalidPayload):
		return "Invalid import payload. Expected an array of tasks."

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.As(err, &domainErr):
		return fmt.Sprintf("Invalid %s: %s", domainErr.Field, domainErr.Message)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a user-friendly
// message naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		return "must be one of " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for unexpected errors when it is non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
