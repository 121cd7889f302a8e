// Package deckfile implements store.CardSource over a YAML deck file that
// is read once at startup. It lets the browser run without a remote card
// API, for demos and local development.
package deckfile
