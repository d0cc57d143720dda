package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/lexicon-srs/internal/api/shared"
	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Not found errors
	case errors.Is(err, store.ErrWordNotFound),
		errors.Is(err, store.ErrEventNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, study.ErrNoWordIDs),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Timeouts waiting on the word lock or the store
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

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

	var verrs validator.ValidationErrors
	var fieldErr *domain.ValidationError

	switch {
	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, store.ErrEventNotFound):
		return "Study event not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Word already exists"

	case errors.Is(err, domain.ErrInvalidQuality):
		return "Invalid answer quality"

	case errors.Is(err, study.ErrNoWordIDs):
		return "No word IDs provided"

	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "Word schedule is out of range of the interval table"

	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out, try again"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field, without echoing the rejected value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "too small"
	case "lt", "lte":
		return "too large"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the safe message for server errors, so callers can name
// the operation that failed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safe := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && message != "" {
		safe = message
	}
	shared.RespondWithErrorAndLog(w, r, status, safe, err)
}

// respondBadRequest writes a 400 for a request body that could not be decoded
// or failed validation.
func respondBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	if shared.IsDecodeError(err) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}
