package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/events"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
	"github.com/phrazzld/scry-browser/internal/redact"
	"github.com/phrazzld/scry-browser/internal/store"
	"github.com/phrazzld/scry-browser/internal/task"
)

// Options configures a Controller.
type Options struct {
	// Categories is the fixed list offered to the view.
	Categories domain.CategorySet

	// TrackChosenCategory enables the chosen-category highlight.
	TrackChosenCategory bool

	// Policy selects how overlapping responses are applied.
	// The zero value means PolicyLatestIssued.
	Policy ResponsePolicy
}

// Controller binds view requests to the card source and publishes the
// resulting snapshots.
type Controller struct {
	source  store.CardSource
	queue   task.TaskQueueWriter
	rules   Rules
	emitter *events.InMemoryEventEmitter
	logger  *slog.Logger

	// publishMu serializes reduce+emit so that subscribers observe snapshots
	// in version order. mu guards state and closed only.
	publishMu sync.Mutex
	mu        sync.RWMutex
	state     State
	closed    bool
}

// NewController creates a controller and immediately requests all cards,
// the way a freshly opened browser page does.
func NewController(
	source store.CardSource,
	queue task.TaskQueueWriter,
	opts Options,
	logger *slog.Logger,
) (*Controller, error) {
	if source == nil {
		return nil, domain.NewValidationError("source", "cannot be nil", ErrNilSource)
	}
	if queue == nil {
		return nil, domain.NewValidationError("queue", "cannot be nil", ErrNilQueue)
	}

	policy, err := ParseResponsePolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "card_browser"))

	c := &Controller{
		source: source,
		queue:  queue,
		rules: Rules{
			TrackChosenCategory: opts.TrackChosenCategory,
			Policy:              policy,
		},
		emitter: events.NewInMemoryEventEmitter(logger),
		logger:  logger,
		state:   initialState(opts.Categories, opts.TrackChosenCategory),
	}

	logger.Info("card browser created",
		slog.Any("categories", opts.Categories.Strings()),
		slog.Bool("track_chosen_category", opts.TrackChosenCategory),
		slog.String("policy", string(policy)))

	if _, err := c.GetAllCards(context.Background()); err != nil {
		// The failure is already recorded in the snapshot; the controller
		// stays usable once the queue drains.
		logger.Warn("initial card load could not be dispatched",
			slog.String("error", redact.Error(err)))
	}

	return c, nil
}

// State returns a copy of the current snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Subscribe registers h to receive a StateChangedEvent after every
// reduction. Handlers run synchronously on the goroutine that produced the
// change and must not call GetAllCards or GetCategoryCards themselves.
// The returned function removes the subscription.
func (c *Controller) Subscribe(h events.EventHandler) func() {
	return c.emitter.RegisterHandler(h)
}

// GetAllCards resets the chosen category to "All" (when highlighting is
// enabled) and requests every card. It returns the request sequence number.
func (c *Controller) GetAllCards(ctx context.Context) (uint64, error) {
	return c.request(ctx, store.AllCardsQuery())
}

// GetCategoryCards marks category as chosen (when highlighting is enabled)
// and requests its cards. The category is not checked against the
// configured list and always goes to the filtered fetch, "All" included.
// It returns the request sequence number.
func (c *Controller) GetCategoryCards(ctx context.Context, category domain.Category) (uint64, error) {
	return c.request(ctx, store.CategoryQuery(category))
}

// Close stops the controller from accepting requests. Responses that arrive
// afterwards are dropped. The queue and pool are owned by the caller.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.logger.Info("card browser closed")
	}
}

// request reserves the next sequence number and commits it only once the
// fetch is queued. publishMu stays held across Enqueue so the task cannot
// complete before its request is part of the snapshot.
func (c *Controller) request(ctx context.Context, q store.Query) (uint64, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return 0, ErrControllerClosed
	}
	issued, _ := c.rules.Reduce(c.state, RequestIssued{Category: q.Category})
	c.mu.RUnlock()

	seq := issued.LastIssued
	t := newFetchTask(seq, q, c.source, c.complete)
	if err := c.queue.Enqueue(t); err != nil {
		log.Error("failed to enqueue card fetch",
			slog.String("category", string(q.Category)),
			slog.String("error", err.Error()))

		c.mu.Lock()
		failed, _ := c.rules.Reduce(c.state, DispatchFailed{Category: q.Category, Err: err})
		c.state = failed
		c.mu.Unlock()
		c.emit(ctx, DispatchFailed{}.Name(), failed)
		return 0, fmt.Errorf("dispatch fetch for %q: %w", q.Category, err)
	}

	c.mu.Lock()
	c.state = issued
	c.mu.Unlock()
	c.emit(ctx, RequestIssued{}.Name(), issued)

	log.Debug("card fetch issued",
		slog.Uint64("seq", seq),
		slog.String("category", string(q.Category)),
		slog.Bool("filtered", q.Filtered))
	return seq, nil
}

// complete is the continuation of every fetch task.
func (c *Controller) complete(seq uint64, cards []domain.FlashCard, err error) {
	var action Action = FetchSucceeded{Seq: seq, Cards: cards}
	if err != nil {
		action = FetchFailed{Seq: seq, Err: err}
	}

	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("dropping response for closed browser", slog.Uint64("seq", seq))
		return
	}
	next, applied := c.rules.Reduce(c.state, action)
	c.state = next
	c.mu.Unlock()

	switch {
	case !applied:
		c.logger.Debug("discarding stale response",
			slog.Uint64("seq", seq),
			slog.Uint64("last_issued", next.LastIssued),
			slog.String("action", action.Name()))
	case err != nil:
		c.logger.Warn("card fetch failed",
			slog.Uint64("seq", seq),
			slog.String("error", redact.Error(err)))
	default:
		c.logger.Info("card list updated",
			slog.Uint64("seq", seq),
			slog.Int("card_count", len(next.FlashCards)))
	}

	c.emit(context.Background(), action.Name(), next)
}

func (c *Controller) emit(ctx context.Context, reason string, s State) {
	event, err := events.NewStateChangedEvent(s.Version, reason, s)
	if err != nil {
		c.logger.Error("failed to build state change event",
			slog.String("error", err.Error()),
			slog.Uint64("version", s.Version))
		return
	}
	// Handler failures are logged by the emitter and do not affect state.
	_ = c.emitter.EmitEvent(ctx, event)
}
