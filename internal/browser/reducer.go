package browser

import (
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/redact"
)

// Action is a state transition request handled by Rules.Reduce.
type Action interface {
	// Name identifies the action in logs and change events.
	Name() string
}

// RequestIssued records that a fetch for Category is about to be dispatched.
// Category is domain.CategoryAll for an unfiltered fetch.
type RequestIssued struct {
	Category domain.Category
}

// Name implements Action.
func (RequestIssued) Name() string { return "request_issued" }

// FetchSucceeded carries the cards returned for request Seq.
type FetchSucceeded struct {
	Seq   uint64
	Cards []domain.FlashCard
}

// Name implements Action.
func (FetchSucceeded) Name() string { return "fetch_succeeded" }

// FetchFailed carries the error returned for request Seq.
type FetchFailed struct {
	Seq uint64
	Err error
}

// Name implements Action.
func (FetchFailed) Name() string { return "fetch_failed" }

// DispatchFailed records a request for Category that never reached the
// worker pool. No sequence number is consumed, so responses to earlier
// requests are still current.
type DispatchFailed struct {
	Category domain.Category
	Err      error
}

// Name implements Action.
func (DispatchFailed) Name() string { return "dispatch_failed" }

// Rules holds the settings the reducer depends on.
type Rules struct {
	TrackChosenCategory bool
	Policy              ResponsePolicy
}

// Reduce returns the snapshot that follows s after action a. It never
// modifies s. The boolean is false when a response was discarded as stale;
// the returned snapshot still reflects the resolved request in Pending.
func (r Rules) Reduce(s State, a Action) (State, bool) {
	next := s.Clone()
	next.Version++

	switch act := a.(type) {
	case RequestIssued:
		next.LastIssued++
		next.Pending++
		if r.TrackChosenCategory {
			next.ChosenCategory = act.Category
		}
		return next, true

	case FetchSucceeded:
		next.Pending = resolved(next.Pending)
		if r.isStale(s, act.Seq) {
			return next, false
		}
		next.FlashCards = domain.CloneCards(act.Cards)
		next.LastApplied = act.Seq
		next.LastError = ""
		return next, true

	case FetchFailed:
		next.Pending = resolved(next.Pending)
		if r.isStale(s, act.Seq) {
			return next, false
		}
		next.LastError = redact.Error(act.Err)
		return next, true

	case DispatchFailed:
		if r.TrackChosenCategory {
			next.ChosenCategory = act.Category
		}
		next.LastError = redact.Error(act.Err)
		return next, true

	default:
		// Unknown actions leave the snapshot untouched.
		return s, false
	}
}

func (r Rules) isStale(s State, seq uint64) bool {
	return r.Policy != PolicyLastResolved && seq != s.LastIssued
}

func resolved(pending int) int {
	if pending > 0 {
		return pending - 1
	}
	return 0
}
