package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter is a simple implementation of the EventEmitter interface
// that stores registered handlers in memory and dispatches events to them.
type InMemoryEventEmitter struct {
	handlers map[uint64]EventHandler
	order    []uint64
	nextID   uint64
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEventEmitter creates a new instance of InMemoryEventEmitter.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		handlers: make(map[uint64]EventHandler),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a new event handler to receive events. The returned
// function removes the handler again; calling it more than once is harmless.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers[id] = handler
	e.order = append(e.order, id)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.handlers[id]; !ok {
			return
		}
		delete(e.handlers, id)
		for i, existing := range e.order {
			if existing == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
		e.logger.Debug("removed event handler", "handler_count", len(e.handlers))
	}
}

// HandlerCount returns the number of registered handlers.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// EmitEvent publishes the given event to all registered handlers in
// registration order. If any handler returns an error, the event is still
// sent to all other handlers, and the first error encountered is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *StateChangedEvent) error {
	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.order))
	for _, id := range e.order {
		handlers = append(handlers, e.handlers[id])
	}
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"version", event.Version,
		"reason", event.Reason,
		"handler_count", len(handlers))

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"version", event.Version)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
