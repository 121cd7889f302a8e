package browser

import "errors"

// Controller errors.
var (
	// ErrNilSource is returned when the controller is built without a card source.
	ErrNilSource = errors.New("card source cannot be nil")

	// ErrNilQueue is returned when the controller is built without a task queue.
	ErrNilQueue = errors.New("task queue cannot be nil")

	// ErrInvalidPolicy is returned for an unknown response policy.
	ErrInvalidPolicy = errors.New("invalid response policy")

	// ErrControllerClosed is returned by operations on a closed controller.
	ErrControllerClosed = errors.New("controller is closed")

	// ErrFetchPanicked wraps a panic raised by the card source.
	ErrFetchPanicked = errors.New("card fetch panicked")
)
