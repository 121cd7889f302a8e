package config

import "errors"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Source  SourceConfig  `mapstructure:"source"  validate:"required"`
	Browser BrowserConfig `mapstructure:"browser" validate:"required"`
	Worker  WorkerConfig  `mapstructure:"worker"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigins enables CORS on the /api routes for these origins.
	// Empty disables CORS.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// Source kinds understood by the application.
const (
	SourceKindHTTP = "http"
	SourceKindFile = "file"
)

// SourceConfig selects and configures the collaborator that supplies flash cards.
type SourceConfig struct {
	Kind string `mapstructure:"kind" validate:"required,oneof=http file"`
	// BaseURL is the root of the card API, required when Kind is "http".
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	// DeckPath is a YAML deck file, required when Kind is "file".
	DeckPath       string `mapstructure:"deck_path"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=300"`
}

// Response policies for overlapping fetches.
const (
	PolicyLatestIssued = "latest_issued"
	PolicyLastResolved = "last_resolved"
)

// BrowserConfig configures the card browser controller.
type BrowserConfig struct {
	Categories          []string `mapstructure:"categories"            validate:"required,min=1,dive,required"`
	TrackChosenCategory bool     `mapstructure:"track_chosen_category"`
	ResponsePolicy      string   `mapstructure:"response_policy"       validate:"required,oneof=latest_issued last_resolved"`
}

// WorkerConfig sizes the pool that executes card fetches.
type WorkerConfig struct {
	Count     int `mapstructure:"count"      validate:"required,gt=0,lte=64"`
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}

// validateSource enforces the settings each source kind depends on.
func (c SourceConfig) validateSource() error {
	switch c.Kind {
	case SourceKindHTTP:
		if c.BaseURL == "" {
			return errors.New("source.base_url is required when source.kind is http")
		}
	case SourceKindFile:
		if c.DeckPath == "" {
			return errors.New("source.deck_path is required when source.kind is file")
		}
	}
	return nil
}
