// Package task runs units of asynchronous work on a bounded queue drained by
// a fixed pool of worker goroutines. The browser uses it to execute card
// fetches off the caller's goroutine.
package task
