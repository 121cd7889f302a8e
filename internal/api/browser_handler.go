package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-browser/internal/api/shared"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
)

// BrowserHandler serves the JSON state and the card request endpoints.
type BrowserHandler struct {
	browser CardBrowser
	logger  *slog.Logger
}

// NewBrowserHandler creates a new BrowserHandler
func NewBrowserHandler(browser CardBrowser, logger *slog.Logger) *BrowserHandler {
	if browser == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("browser cannot be nil for BrowserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BrowserHandler")
	}

	return &BrowserHandler{
		browser: browser,
		logger:  logger.With(slog.String("component", "browser_handler")),
	}
}

// GetState handles GET /api/state requests.
func (h *BrowserHandler) GetState(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.browser.State())
}

// RequestAllCards handles POST /api/cards requests.
func (h *BrowserHandler) RequestAllCards(w http.ResponseWriter, r *http.Request) {
	seq, err := h.browser.GetAllCards(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, RequestAcceptedResponse{
		Request:  seq,
		Category: string(domain.CategoryAll),
	})
}

// RequestCategoryCards handles POST /api/cards/category/{category} requests.
func (h *BrowserHandler) RequestCategoryCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	category, err := categoryParam(r)
	if err != nil {
		log.Debug("rejected category parameter", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	seq, err := h.browser.GetCategoryCards(r.Context(), category)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, RequestAcceptedResponse{
		Request:  seq,
		Category: string(category),
	})
}

// categoryParam extracts and checks the {category} URL parameter.
func categoryParam(r *http.Request) (domain.Category, error) {
	raw := chi.URLParam(r, "category")
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", domain.NewValidationError("category", "is not a valid path segment", domain.ErrValidation)
	}

	req := shared.CategoryRequest{Category: value}
	if err := shared.ValidateRequest(&req); err != nil {
		return "", domain.NewValidationError("category", "must be between 1 and 128 characters", domain.ErrValidation)
	}
	return domain.Category(req.Category), nil
}
