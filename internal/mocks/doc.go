// Package mocks provides function-field test doubles for the interfaces
// the browser depends on.
package mocks
