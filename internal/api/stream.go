package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/scry-browser/internal/events"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
)

const (
	streamWriteWait  = 5 * time.Second
	streamReadLimit  = 512
	streamBufferSize = 32
)

// StreamMessage is one websocket frame of the state stream.
type StreamMessage struct {
	Version uint64          `json:"version"`
	Reason  string          `json:"reason"`
	State   json.RawMessage `json:"state"`
}

// StreamHandler pushes browser snapshots to websocket clients. Each client
// first receives the current snapshot and then one message per change.
// A client that falls behind gets a fresh snapshot instead of the missed
// changes.
type StreamHandler struct {
	browser  CardBrowser
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	clients sync.WaitGroup
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(browser CardBrowser, logger *slog.Logger) *StreamHandler {
	if browser == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("browser cannot be nil for StreamHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StreamHandler")
	}

	return &StreamHandler{
		browser: browser,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With(slog.String("component", "state_stream")),
		done:   make(chan struct{}),
	}
}

// Stream handles GET /api/state/stream requests.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		http.Error(w, "state stream is shutting down", http.StatusServiceUnavailable)
		return
	}
	h.clients.Add(1)
	h.mu.Unlock()
	defer h.clients.Done()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		log.Debug("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = conn.Close() }()

	updates := make(chan *events.StateChangedEvent, streamBufferSize)
	resync := make(chan struct{}, 1)
	unsubscribe := h.browser.Subscribe(events.HandlerFunc(
		func(_ context.Context, e *events.StateChangedEvent) error {
			select {
			case updates <- e:
			default:
				select {
				case resync <- struct{}{}:
				default:
				}
			}
			return nil
		}))
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(streamReadLimit)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug("state stream client connected", slog.String("remote_addr", r.RemoteAddr))
	defer log.Debug("state stream client disconnected", slog.String("remote_addr", r.RemoteAddr))

	var lastVersion uint64
	write := func(msg StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(msg)
	}
	writeSnapshot := func(reason string) error {
		s := h.browser.State()
		raw, err := json.Marshal(s)
		if err != nil {
			return err
		}
		lastVersion = s.Version
		return write(StreamMessage{Version: s.Version, Reason: reason, State: raw})
	}

	if err := writeSnapshot("snapshot"); err != nil {
		log.Debug("failed to send initial snapshot", slog.String("error", err.Error()))
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-h.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(streamWriteWait))
			return
		case <-resync:
			log.Warn("state stream client fell behind, resending snapshot")
			if err := writeSnapshot("resync"); err != nil {
				return
			}
		case e := <-updates:
			if e.Version <= lastVersion {
				continue
			}
			lastVersion = e.Version
			if err := write(StreamMessage{Version: e.Version, Reason: e.Reason, State: e.Snapshot}); err != nil {
				log.Debug("failed to send state change", slog.String("error", err.Error()))
				return
			}
		}
	}
}

// Shutdown disconnects every client and waits for their handlers to return
// or for ctx to end. Hijacked websocket connections are not closed by
// http.Server.Shutdown, so the server owner calls this as well.
func (h *StreamHandler) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
	h.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		h.clients.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
