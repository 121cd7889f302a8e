package api

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-browser/internal/api/middleware"
	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/events"
	"github.com/stretchr/testify/require"
)

// fakeBrowser records requests and publishes whatever state the test sets.
type fakeBrowser struct {
	mu        sync.Mutex
	state     browser.State
	seq       uint64
	requested []domain.Category
	err       error
	emitter   *events.InMemoryEventEmitter
}

func newFakeBrowser(state browser.State) *fakeBrowser {
	return &fakeBrowser{
		state:   state,
		emitter: events.NewInMemoryEventEmitter(testLogger()),
	}
}

func (f *fakeBrowser) State() browser.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *fakeBrowser) GetAllCards(ctx context.Context) (uint64, error) {
	return f.GetCategoryCards(ctx, domain.CategoryAll)
}

func (f *fakeBrowser) GetCategoryCards(_ context.Context, c domain.Category) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.requested = append(f.requested, c)
	return f.seq, f.err
}

func (f *fakeBrowser) Subscribe(h events.EventHandler) func() {
	return f.emitter.RegisterHandler(h)
}

func (f *fakeBrowser) Requested() []domain.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Category(nil), f.requested...)
}

// publish replaces the state and notifies subscribers.
func (f *fakeBrowser) publish(t *testing.T, reason string, s browser.State) {
	t.Helper()
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()

	event, err := events.NewStateChangedEvent(s.Version, reason, s)
	require.NoError(t, err)
	require.NoError(t, f.emitter.EmitEvent(context.Background(), event))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleState() browser.State {
	return browser.State{
		FlashCards: []domain.FlashCard{
			{ID: "1", Category: "Node", Question: "What is npm?", Answers: []domain.Answer{{Text: "A package manager", Correct: true}}},
			{ID: "2", Category: "Angular", Question: "What is <ng-content>?", Answers: []domain.Answer{{Text: "Content projection"}}},
		},
		Categories:     domain.StandardCategories.Slice(),
		ChosenCategory: domain.CategoryAll,
		LastIssued:     1,
		LastApplied:    1,
		Version:        2,
	}
}

// newTestRouter wires the handlers the same way the server does.
func newTestRouter(b CardBrowser) (chi.Router, *StreamHandler) {
	log := testLogger()
	browserHandler := NewBrowserHandler(b, log)
	viewHandler := NewViewHandler(b, "", log)
	streamHandler := NewStreamHandler(b, log)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Get("/", viewHandler.Page)
	r.Post("/select", viewHandler.Select)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", browserHandler.GetState)
		r.Get("/state/stream", streamHandler.Stream)
		r.Post("/cards", browserHandler.RequestAllCards)
		r.Post("/cards/category/{category}", browserHandler.RequestCategoryCards)
	})
	return r, streamHandler
}
