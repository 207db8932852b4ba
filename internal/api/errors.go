package api

import (
	"errors"
	"net/http"

	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/service/auth"
	"github.com/promanage/promanage-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. Duplicate-entity errors map to 400 rather than
// 409: the public API contract fixes that code for duplicate registrations
// and email changes.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Internal store or runtime errors never reach the client
// verbatim; the raw error is logged alongside the trace ID instead.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already in use"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid or expired token"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		isDomainValidationError(err):
		// Domain validation messages are written for users and safe to echo.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError matches the domain's entity validation sentinels,
// which are plain errors rather than wraps of ErrValidation.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyHashedPassword,
		domain.ErrPasswordTooShort,
		domain.ErrTaskTitleEmpty,
		domain.ErrTaskPriorityEmpty,
		domain.ErrTaskPriorityInvalid,
		domain.ErrTaskCreatorEmpty,
		domain.ErrChecklistEmpty,
		domain.ErrChecklistItemNoText,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
