package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         domain.NewValidationError("category", "too long", domain.ErrValidation),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid category",
		},
		{
			name:        "queue full",
			err:         fmt.Errorf("dispatch fetch 4: %w", task.ErrQueueFull),
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "Too many card requests in flight, try again shortly",
		},
		{
			name:        "queue closed",
			err:         fmt.Errorf("dispatch fetch 9: %w", task.ErrQueueClosed),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "The card browser is shutting down",
		},
		{
			name:        "controller closed",
			err:         browser.ErrControllerClosed,
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: "The card browser is shutting down",
		},
		{
			name:        "unknown",
			err:         errors.New("password=hunter2 leaked"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMessage, GetSafeErrorMessage(tt.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
