// Package store defines the contract of the card source the browser reads
// from, together with the errors its implementations report.
package store
