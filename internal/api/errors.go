package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest

	case errors.Is(err, task.ErrQueueFull):
		return http.StatusTooManyRequests

	case errors.Is(err, browser.ErrControllerClosed),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory):
		return "Invalid category"

	case errors.Is(err, task.ErrQueueFull):
		return "Too many card requests in flight, try again shortly"

	case errors.Is(err, browser.ErrControllerClosed),
		errors.Is(err, task.ErrQueueClosed):
		return "The card browser is shutting down"

	default:
		return "An unexpected error occurred"
	}
}
