// Package main implements the entry point for the flash-card browser, which
// serves a page for browsing cards by category and loads the cards from a
// remote card API or a local deck file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/scry-browser/internal/config"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, log, err := initializeApp(*configPath)
	if err != nil {
		logFatal(err)
	}

	app, err := newApplication(cfg, log)
	if err != nil {
		logFatal(fmt.Errorf("failed to initialize application: %w", err))
	}

	if err := app.Run(context.Background()); err != nil {
		log.Error("application stopped with error", "error", err)
		logFatal(err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"source_kind", cfg.Source.Kind,
		"response_policy", cfg.Browser.ResponsePolicy)

	return cfg, l, nil
}

func logFatal(err error) {
	log.Fatalf("scry-browser: %v", err)
}
