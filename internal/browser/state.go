package browser

import (
	"fmt"

	"github.com/phrazzld/scry-browser/internal/domain"
)

// ResponsePolicy decides which of several overlapping fetch responses may
// update the card list.
type ResponsePolicy string

const (
	// PolicyLatestIssued applies a response only if it answers the most
	// recently issued request. Older responses are discarded.
	PolicyLatestIssued ResponsePolicy = "latest_issued"

	// PolicyLastResolved applies every response in arrival order, so the
	// last one to arrive wins regardless of when it was requested.
	PolicyLastResolved ResponsePolicy = "last_resolved"
)

// ParseResponsePolicy converts a configured policy name. An empty name
// selects PolicyLatestIssued.
func ParseResponsePolicy(name string) (ResponsePolicy, error) {
	switch ResponsePolicy(name) {
	case "", PolicyLatestIssued:
		return PolicyLatestIssued, nil
	case PolicyLastResolved:
		return PolicyLastResolved, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, name)
	}
}

// State is a snapshot of everything a view renders.
type State struct {
	// FlashCards is the list from the most recently applied successful fetch.
	FlashCards []domain.FlashCard `json:"flashCards"`

	// Categories is fixed at construction.
	Categories []domain.Category `json:"categories"`

	// ChosenCategory is the highlighted category, or domain.CategoryAll.
	// It stays empty when highlighting is disabled.
	ChosenCategory domain.Category `json:"chosenCategory,omitempty"`

	// Pending counts fetches that have been issued but not yet resolved.
	Pending int `json:"pending"`

	// LastIssued is the sequence number of the most recently issued request.
	LastIssued uint64 `json:"lastIssued"`

	// LastApplied is the sequence number of the request whose response
	// produced FlashCards; zero before the first success.
	LastApplied uint64 `json:"lastApplied"`

	// LastError is the redacted message of the most recent applied failure.
	// A later applied success clears it.
	LastError string `json:"lastError,omitempty"`

	// Version increases by one with every reduction.
	Version uint64 `json:"version"`
}

// Clone returns a deep copy of the snapshot.
func (s State) Clone() State {
	out := s
	out.FlashCards = domain.CloneCards(s.FlashCards)
	out.Categories = append(make([]domain.Category, 0, len(s.Categories)), s.Categories...)
	return out
}

// IsChosen reports whether c is the highlighted category.
func (s State) IsChosen(c domain.Category) bool {
	return s.ChosenCategory != "" && s.ChosenCategory == c
}

// initialState builds the snapshot a controller starts from.
func initialState(categories domain.CategorySet, trackChosen bool) State {
	s := State{
		FlashCards: []domain.FlashCard{},
		Categories: categories.Slice(),
	}
	if trackChosen {
		s.ChosenCategory = domain.CategoryAll
	}
	return s
}
