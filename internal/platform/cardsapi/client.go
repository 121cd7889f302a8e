package cardsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/scry-browser/internal/config"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
	"github.com/phrazzld/scry-browser/internal/redact"
	"github.com/phrazzld/scry-browser/internal/store"
)

const (
	// MaxBodyBytes caps the size of a decoded card list.
	MaxBodyBytes = 4 << 20

	// DefaultTimeout applies when the configuration leaves the timeout unset.
	DefaultTimeout = 10 * time.Second

	cardsPath = "cards"
)

// Client fetches cards from a remote card API.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

var _ store.CardSource = (*Client)(nil)

// NewClient creates a client for the API rooted at cfg.BaseURL.
// If logger is nil, a default logger will be used.
func NewClient(cfg config.SourceConfig, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, domain.NewValidationError("base_url", "cannot be empty", domain.ErrValidation)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, domain.NewValidationError("base_url", "must be an absolute URL", domain.ErrValidation)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "cards_api")),
	}, nil
}

// AllCards implements store.CardSource.AllCards.
func (c *Client) AllCards(ctx context.Context) ([]domain.FlashCard, error) {
	cards, err := c.get(ctx, nil)
	if err != nil {
		return nil, store.NewSourceError("all_cards", "", err)
	}
	return cards, nil
}

// CardsByCategory implements store.CardSource.CardsByCategory.
// The category is sent as given.
func (c *Client) CardsByCategory(ctx context.Context, category domain.Category) ([]domain.FlashCard, error) {
	query := url.Values{}
	query.Set("category", string(category))

	cards, err := c.get(ctx, query)
	if err != nil {
		return nil, store.NewSourceError("cards_by_category", category, err)
	}
	return cards, nil
}

func (c *Client) endpoint(query url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: cardsPath})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, query url.Values) ([]domain.FlashCard, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	endpoint := c.endpoint(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		mapped := MapError(err)
		log.Warn("card request failed",
			slog.String("url", redact.String(endpoint)),
			slog.String("error", redact.Error(mapped)))
		return nil, mapped
	}
	defer func() {
		// Drain so the pooled connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxBodyBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("card request returned an error status",
			slog.String("url", redact.String(endpoint)),
			slog.Int("status", resp.StatusCode))
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	cards, err := decodeCards(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug("card request completed",
		slog.String("url", redact.String(endpoint)),
		slog.Int("card_count", len(cards)),
		slog.Duration("elapsed", time.Since(start)))
	return cards, nil
}

// decodeCards reads a JSON array of cards. A null body decodes to an empty
// list. Trailing data and bodies over MaxBodyBytes are rejected.
func decodeCards(body io.Reader) ([]domain.FlashCard, error) {
	limited := &io.LimitedReader{R: body, N: MaxBodyBytes + 1}
	dec := json.NewDecoder(limited)

	var cards []domain.FlashCard
	if err := dec.Decode(&cards); err != nil {
		if limited.N <= 0 {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", store.ErrBadResponse, MaxBodyBytes)
		}
		return nil, fmt.Errorf("%w: decode cards: %v", store.ErrBadResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after card list", store.ErrBadResponse)
	}
	if cards == nil {
		cards = []domain.FlashCard{}
	}
	return cards, nil
}
