package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/scry-browser/internal/api"
	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/config"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/platform/cardsapi"
	"github.com/phrazzld/scry-browser/internal/platform/deckfile"
	"github.com/phrazzld/scry-browser/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := testutils.CreateDeckFile(t, "test deck", testutils.CreateTestCards("Angular", "Node", "MongoDB"))

	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		Source: config.SourceConfig{
			Kind:           config.SourceKindFile,
			DeckPath:       path,
			TimeoutSeconds: 5,
		},
		Browser: config.BrowserConfig{
			Categories:          []string{"Angular", "Node", "MongoDB"},
			TrackChosenCategory: true,
			ResponsePolicy:      config.PolicyLatestIssued,
		},
		Worker: config.WorkerConfig{Count: 2, QueueSize: 8},
	}
}

func TestNewCardSource(t *testing.T) {
	t.Run("http", func(t *testing.T) {
		src, err := newCardSource(config.SourceConfig{
			Kind:           config.SourceKindHTTP,
			BaseURL:        "http://localhost:3000",
			TimeoutSeconds: 1,
		}, testLogger())
		require.NoError(t, err)
		assert.IsType(t, &cardsapi.Client{}, src)
	})

	t.Run("file", func(t *testing.T) {
		cfg := testConfig(t)
		src, err := newCardSource(cfg.Source, testLogger())
		require.NoError(t, err)
		assert.IsType(t, &deckfile.Source{}, src)
	})

	t.Run("missing deck", func(t *testing.T) {
		_, err := newCardSource(config.SourceConfig{
			Kind:     config.SourceKindFile,
			DeckPath: filepath.Join(t.TempDir(), "nope.yaml"),
		}, testLogger())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown kind", func(t *testing.T) {
		src, err := newCardSource(config.SourceConfig{Kind: "ftp"}, testLogger())
		assert.Error(t, err)
		assert.Nil(t, src)
	})
}

func TestNewApplicationRejectsBadCategories(t *testing.T) {
	cfg := testConfig(t)
	cfg.Browser.Categories = []string{"Node", "All"}

	_, err := newApplication(cfg, testLogger())
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func fetchState(srv *httptest.Server) (browser.State, error) {
	var s browser.State
	resp, err := http.Get(srv.URL + "/api/state")
	if err != nil {
		return s, err
	}
	defer func() { _ = resp.Body.Close() }()
	err = json.NewDecoder(resp.Body).Decode(&s)
	return s, err
}

// waitSettled polls the state endpoint until request seq has resolved.
func waitSettled(t *testing.T, srv *httptest.Server, seq uint64) browser.State {
	t.Helper()
	require.Eventually(t, func() bool {
		s, err := fetchState(srv)
		return err == nil && s.LastIssued == seq && s.Pending == 0
	}, 2*time.Second, 10*time.Millisecond)

	var s browser.State
	testutils.AssertJSONResponse(t, testutils.Get(t, srv, "/api/state"), http.StatusOK, &s)
	return s
}

func TestApplicationEndToEnd(t *testing.T) {
	app, err := newApplication(testConfig(t), testLogger())
	require.NoError(t, err)
	defer app.cleanup()

	srv := testutils.CreateTestServer(t, app.setupRouter())

	// The initial load shows every card under "All".
	s := waitSettled(t, srv, 1)
	assert.Equal(t, domain.CategoryAll, s.ChosenCategory)
	require.Len(t, s.FlashCards, 3)
	assert.Equal(t, []string{"card-0", "card-1", "card-2"},
		[]string{s.FlashCards[0].ID, s.FlashCards[1].ID, s.FlashCards[2].ID})

	var accepted api.RequestAcceptedResponse
	testutils.AssertJSONResponse(t, testutils.Post(t, srv, "/api/cards/category/Node"), http.StatusAccepted, &accepted)
	assert.Equal(t, uint64(2), accepted.Request)

	s = waitSettled(t, srv, 2)
	assert.Equal(t, domain.Category("Node"), s.ChosenCategory)
	require.Len(t, s.FlashCards, 1)
	assert.Equal(t, "card-1", s.FlashCards[0].ID)

	// A category outside the configured list is still requested.
	testutils.AssertJSONResponse(t, testutils.Post(t, srv, "/api/cards/category/Express"), http.StatusAccepted, &accepted)
	s = waitSettled(t, srv, 3)
	assert.Equal(t, domain.Category("Express"), s.ChosenCategory)
	assert.Empty(t, s.FlashCards)

	testutils.AssertJSONResponse(t, testutils.Post(t, srv, "/api/cards"), http.StatusAccepted, &accepted)
	s = waitSettled(t, srv, 4)
	assert.Len(t, s.FlashCards, 3)

	page := testutils.Get(t, srv, "/")
	body, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `value="All" class="chosen"`)
	assert.Contains(t, string(body), "Question card-1 about Node?")

	health := testutils.Get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, health.StatusCode)
}

func TestApplicationCleanupRejectsRequests(t *testing.T) {
	app, err := newApplication(testConfig(t), testLogger())
	require.NoError(t, err)

	srv := testutils.CreateTestServer(t, app.setupRouter())

	app.cleanup()

	testutils.AssertErrorResponse(t, testutils.Post(t, srv, "/api/cards"),
		http.StatusServiceUnavailable, "shutting down")
}

func TestApplicationCORS(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.AllowedOrigins = []string{"http://deck.example"}
	app, err := newApplication(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	srv := testutils.CreateTestServer(t, app.setupRouter())

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/cards", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://deck.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	testutils.CleanupResponseBody(t, resp)

	assert.Equal(t, "http://deck.example", resp.Header.Get("Access-Control-Allow-Origin"))

	other := testutils.Get(t, srv, "/api/state")
	assert.Empty(t, other.Header.Get("Access-Control-Allow-Origin"))
}
