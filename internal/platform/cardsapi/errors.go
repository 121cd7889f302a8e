package cardsapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/phrazzld/scry-browser/internal/store"
)

// MapError classifies a transport error as a store error.
// Context errors are kept as they are so that callers can tell a timeout
// or cancellation apart from an unreachable source.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: request timed out: %v", store.ErrSourceUnavailable, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s %s: %v", store.ErrSourceUnavailable, urlErr.Op, urlErr.URL, urlErr.Err)
	}

	return fmt.Errorf("%w: %v", store.ErrSourceUnavailable, err)
}

// StatusError describes a non-2xx answer from the card API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Is makes a StatusError match store.ErrBadResponse.
func (e *StatusError) Is(target error) bool {
	return target == store.ErrBadResponse
}
