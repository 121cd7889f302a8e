package api

import (
	"context"

	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/events"
)

// CardBrowser is the part of browser.Controller the handlers depend on.
type CardBrowser interface {
	State() browser.State
	GetAllCards(ctx context.Context) (uint64, error)
	GetCategoryCards(ctx context.Context, category domain.Category) (uint64, error)
	Subscribe(h events.EventHandler) func()
}

var _ CardBrowser = (*browser.Controller)(nil)

// RequestAcceptedResponse is returned when a card request has been issued.
// The cards arrive later through the state endpoints.
type RequestAcceptedResponse struct {
	Request  uint64 `json:"request"`
	Category string `json:"category"`
}
