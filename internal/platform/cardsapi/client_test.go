package cardsapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/scry-browser/internal/config"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deckJSON = `[
	{"_id":"1","category":"Node","question":"What is npm?","answers":[{"text":"A package manager","correct":true}]},
	{"_id":"2","category":"Angular","question":"What is a directive?","answers":[{"text":"A marker on a DOM element","correct":true},{"text":"A database","correct":false}]}
]`

type recordedRequest struct {
	method string
	path   string
	query  string
	accept string
}

// newTestServer serves fixed responses and records each request.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			accept: r.Header.Get("Accept"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.SourceConfig{
		Kind:           config.SourceKindHTTP,
		BaseURL:        baseURL,
		TimeoutSeconds: 2,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "absolute url", baseURL: "http://localhost:3000"},
		{name: "url with path", baseURL: "https://cards.example.com/api/"},
		{name: "empty", baseURL: "", wantErr: true},
		{name: "relative", baseURL: "/api", wantErr: true},
		{name: "unparseable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(config.SourceConfig{BaseURL: tt.baseURL}, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		})
	}
}

func TestClientEndpoint(t *testing.T) {
	t.Parallel()

	withPath := newTestClient(t, "http://cards.local/api")
	assert.Equal(t, "http://cards.local/api/cards", withPath.endpoint(nil))

	root := newTestClient(t, "http://cards.local")
	assert.Equal(t, "http://cards.local/cards?category=C%23", root.endpoint(map[string][]string{"category": {"C#"}}))
}

func TestAllCards(t *testing.T) {
	t.Parallel()

	srv, requests := newTestServer(t, http.StatusOK, deckJSON)
	client := newTestClient(t, srv.URL)

	cards, err := client.AllCards(context.Background())
	require.NoError(t, err)

	require.Len(t, cards, 2)
	assert.Equal(t, "1", cards[0].ID)
	assert.Equal(t, domain.Category("Node"), cards[0].Category)
	assert.Equal(t, "What is a directive?", cards[1].Question)
	assert.Equal(t, []domain.Answer{
		{Text: "A marker on a DOM element", Correct: true},
		{Text: "A database", Correct: false},
	}, cards[1].Answers)

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodGet, got[0].method)
	assert.Equal(t, "/cards", got[0].path)
	assert.Empty(t, got[0].query)
	assert.Equal(t, "application/json", got[0].accept)
}

func TestAllCardsKeepsUnknownFields(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusOK, `[{"title":"A"},{"title":"B"}]`)
	client := newTestClient(t, srv.URL)

	cards, err := client.AllCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)

	encoded, err := json.Marshal(cards)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"A"},{"title":"B"}]`, string(encoded))
	assert.Equal(t, `{"title":"B"}`, cards[1].Summary())
}

func TestCardsByCategory(t *testing.T) {
	t.Parallel()

	srv, requests := newTestServer(t, http.StatusOK, deckJSON)
	client := newTestClient(t, srv.URL)

	// The client returns the body verbatim; it never filters on its own.
	cards, err := client.CardsByCategory(context.Background(), "Node.js & Express")
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, "category=Node.js+%26+Express", got[0].query)
}

func TestClientBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantCount int
		wantErr   error
	}{
		{name: "empty array", body: `[]`, wantCount: 0},
		{name: "null", body: `null`, wantCount: 0},
		{name: "object instead of array", body: `{"cards":[]}`, wantErr: store.ErrBadResponse},
		{name: "truncated", body: `[{"_id":"1"`, wantErr: store.ErrBadResponse},
		{name: "trailing data", body: `[] []`, wantErr: store.ErrBadResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tt.body)
			cards, err := newTestClient(t, srv.URL).AllCards(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cards)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cards)
			assert.Len(t, cards, tt.wantCount)
		})
	}
}

func TestClientOversizedBody(t *testing.T) {
	t.Parallel()

	body := `[{"question":"` + strings.Repeat("x", MaxBodyBytes) + `"}]`
	srv, _ := newTestServer(t, http.StatusOK, body)

	_, err := newTestClient(t, srv.URL).AllCards(context.Background())
	assert.ErrorIs(t, err, store.ErrBadResponse)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestClientErrorStatus(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, http.StatusInternalServerError, `{"error":"db down"}`)
	_, err := newTestClient(t, srv.URL).CardsByCategory(context.Background(), "Node")

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrBadResponse)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	var srcErr *store.SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "cards_by_category", srcErr.Operation)
	assert.Equal(t, domain.Category("Node"), srcErr.Category)
}

func TestClientUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).AllCards(context.Background())

	assert.ErrorIs(t, err, store.ErrSourceUnavailable)
	assert.True(t, store.IsUnavailableError(err))

	var srcErr *store.SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "all_cards", srcErr.Operation)
}

func TestClientContextCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, srv.URL).AllCards(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, store.IsUnavailableError(err))
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(context.Canceled), context.Canceled)
	assert.ErrorIs(t, MapError(errors.New("reset by peer")), store.ErrSourceUnavailable)
}
