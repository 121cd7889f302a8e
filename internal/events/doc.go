// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose coupling
// between the browser controller and the views rendering its state. The controller
// emits an event whenever its state snapshot changes, without knowing which views
// are listening.
//
// The primary components are:
// - StateChangedEvent: Announces a new state snapshot
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
