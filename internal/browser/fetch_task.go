package browser

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/store"
	"github.com/phrazzld/scry-browser/internal/task"
)

// TaskTypeFetchCards identifies card fetch tasks.
const TaskTypeFetchCards = "fetch_cards"

// completion receives the outcome of a fetch exactly once.
type completion func(seq uint64, cards []domain.FlashCard, err error)

// FetchTask loads one card list from the source and reports the outcome to
// the controller that issued it.
type FetchTask struct {
	id       uuid.UUID
	seq      uint64
	query    store.Query
	source   store.CardSource
	complete completion
}

var _ task.Task = (*FetchTask)(nil)

func newFetchTask(seq uint64, query store.Query, source store.CardSource, complete completion) *FetchTask {
	return &FetchTask{
		id:       uuid.New(),
		seq:      seq,
		query:    query,
		source:   source,
		complete: complete,
	}
}

// ID implements task.Task.
func (t *FetchTask) ID() uuid.UUID { return t.id }

// Type implements task.Task.
func (t *FetchTask) Type() string { return TaskTypeFetchCards }

// Seq returns the request sequence number the task answers.
func (t *FetchTask) Seq() uint64 { return t.seq }

// Query returns what the task asks the source for.
func (t *FetchTask) Query() store.Query { return t.query }

// Execute implements task.Task. The outcome is always delivered, including
// when the source panics.
func (t *FetchTask) Execute(ctx context.Context) (err error) {
	var cards []domain.FlashCard
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanicked, r)
			cards = nil
		}
		t.complete(t.seq, cards, err)
	}()

	cards, err = store.Fetch(ctx, t.source, t.query)
	return err
}
