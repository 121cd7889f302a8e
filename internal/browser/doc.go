// Package browser implements the flash-card browser controller.
//
// The controller keeps an immutable State snapshot holding the card list, the
// fixed category list and, when highlighting is enabled, the chosen category.
// Views read snapshots through State or subscribe to change events; they never
// share mutable fields with the controller.
//
// Every change goes through Rules.Reduce, a pure function of the previous
// snapshot and an Action:
//
//   - RequestIssued assigns the next request sequence number and, with
//     highlighting on, records the chosen category immediately.
//   - FetchSucceeded replaces the card list verbatim.
//   - FetchFailed records the error and leaves the card list untouched.
//
// Fetches run as tasks on a worker pool, so two requests can be in flight at
// once. Under PolicyLatestIssued only the response to the most recently issued
// request is applied; PolicyLastResolved applies whichever response arrives
// last.
package browser
