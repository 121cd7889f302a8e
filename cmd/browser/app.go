package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-browser/internal/api"
	"github.com/phrazzld/scry-browser/internal/browser"
	"github.com/phrazzld/scry-browser/internal/config"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/platform/cardsapi"
	"github.com/phrazzld/scry-browser/internal/platform/deckfile"
	"github.com/phrazzld/scry-browser/internal/redact"
	"github.com/phrazzld/scry-browser/internal/store"
	"github.com/phrazzld/scry-browser/internal/task"
)

// application holds the long-lived components of the browser process.
type application struct {
	config *config.Config
	logger *slog.Logger

	source  store.CardSource
	queue   *task.TaskQueue
	pool    *task.WorkerPool
	browser *browser.Controller
	stream  *api.StreamHandler
}

// newApplication wires the card source, the worker pool and the browser
// controller. The controller issues its initial request for all cards
// before this function returns.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	categories, err := domain.NewCategorySet(cfg.Browser.Categories...)
	if err != nil {
		return nil, fmt.Errorf("invalid browser categories: %w", err)
	}

	policy, err := browser.ParseResponsePolicy(cfg.Browser.ResponsePolicy)
	if err != nil {
		return nil, err
	}

	app.source, err = newCardSource(cfg.Source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card source: %w", err)
	}

	app.queue = task.NewTaskQueue(cfg.Worker.QueueSize, logger)
	app.pool = task.NewWorkerPool(app.queue, task.WorkerPoolConfig{
		WorkerCount: cfg.Worker.Count,
	}, logger)
	app.pool.SetErrorHandler(func(t task.Task, err error) {
		// Fetch failures are already part of the browser state.
		logger.Debug("card fetch task finished with error",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", redact.Error(err)))
	})
	app.pool.Start()

	app.browser, err = browser.NewController(app.source, app.queue, browser.Options{
		Categories:          categories,
		TrackChosenCategory: cfg.Browser.TrackChosenCategory,
		Policy:              policy,
	}, logger)
	if err != nil {
		app.pool.Stop()
		app.queue.Close()
		return nil, fmt.Errorf("failed to create card browser: %w", err)
	}

	app.stream = api.NewStreamHandler(app.browser, logger)

	logger.Info("Application initialized successfully",
		"categories", categories.Strings(),
		"workers", cfg.Worker.Count)
	return app, nil
}

// newCardSource builds the collaborator selected by cfg.Kind.
func newCardSource(cfg config.SourceConfig, logger *slog.Logger) (store.CardSource, error) {
	switch cfg.Kind {
	case config.SourceKindHTTP:
		client, err := cardsapi.NewClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.SourceKindFile:
		deck, err := deckfile.Load(cfg.DeckPath, logger)
		if err != nil {
			return nil, err
		}
		return deck, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

// Run serves HTTP until ctx is cancelled or the process receives a
// termination signal.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops accepting card requests and drains the worker pool.
func (app *application) cleanup() {
	if app.browser != nil {
		app.browser.Close()
	}
	if app.queue != nil {
		app.queue.Close()
	}
	if app.pool != nil {
		app.pool.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
