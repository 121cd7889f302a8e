package store

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-browser/internal/domain"
)

// Common source errors used across all CardSource implementations.
var (
	// ErrSourceUnavailable is returned when the source cannot be reached.
	ErrSourceUnavailable = errors.New("card source unavailable")

	// ErrBadResponse is returned when the source answers with an unexpected
	// status or a body that cannot be decoded.
	ErrBadResponse = errors.New("card source returned a bad response")

	// ErrInvalidDeck is returned when a deck file fails to parse or validate.
	ErrInvalidDeck = errors.New("invalid card deck")
)

// SourceError is a custom error type for card source failures with additional context.
type SourceError struct {
	Operation string          // The operation that failed (e.g., "all_cards")
	Category  domain.Category // The requested category, empty for unfiltered fetches
	Err       error           // Original error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s (category %s) failed: %v", e.Operation, e.Category, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(operation string, category domain.Category, err error) *SourceError {
	return &SourceError{
		Operation: operation,
		Category:  category,
		Err:       err,
	}
}

// IsUnavailableError reports whether err means the source could not be reached.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
