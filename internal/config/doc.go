// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides typed
// settings for the server, the card source, the browser controller and the
// fetch worker pool, keeping configuration details out of business logic.
package config
