// Package api exposes the card browser over HTTP. It renders the browser
// page, serves the current state as JSON, accepts requests to load all
// cards or one category, and pushes state changes to websocket clients.
// Handlers translate HTTP concerns into browser operations and never touch
// the card source directly.
package api
