package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/mocks"
	"github.com/phrazzld/scry-browser/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	seq   uint64
	cards []domain.FlashCard
	err   error
	calls int
}

func (o *outcome) record(seq uint64, cards []domain.FlashCard, err error) {
	o.seq, o.cards, o.err = seq, cards, err
	o.calls++
}

func TestFetchTask(t *testing.T) {
	t.Parallel()

	t.Run("routes All to AllCards", func(t *testing.T) {
		src := &mocks.MockCardSource{Cards: cards("A")}
		var got outcome
		ft := newFetchTask(4, store.AllCardsQuery(), src, got.record)

		require.NoError(t, ft.Execute(context.Background()))

		assert.Equal(t, TaskTypeFetchCards, ft.Type())
		assert.NotEqual(t, ft.ID(), newFetchTask(4, store.AllCardsQuery(), src, got.record).ID())
		assert.Equal(t, uint64(4), ft.Seq())
		assert.Equal(t, 1, got.calls)
		assert.Equal(t, uint64(4), got.seq)
		assert.Equal(t, cards("A"), got.cards)
		assert.Equal(t, 1, src.AllCardsCalls())
		assert.Empty(t, src.CategoryCalls())
	})

	t.Run("routes a category to CardsByCategory", func(t *testing.T) {
		src := &mocks.MockCardSource{}
		var got outcome
		ft := newFetchTask(2, store.CategoryQuery("Node"), src, got.record)

		require.NoError(t, ft.Execute(context.Background()))

		assert.Equal(t, store.CategoryQuery("Node"), ft.Query())
		assert.Equal(t, []domain.Category{"Node"}, src.CategoryCalls())
		assert.Equal(t, 0, src.AllCardsCalls())
	})

	t.Run("routes a filtered All to CardsByCategory", func(t *testing.T) {
		src := &mocks.MockCardSource{}
		var got outcome

		require.NoError(t, newFetchTask(3, store.CategoryQuery(domain.CategoryAll), src, got.record).
			Execute(context.Background()))

		assert.Equal(t, []domain.Category{domain.CategoryAll}, src.CategoryCalls())
		assert.Equal(t, 0, src.AllCardsCalls())
	})

	t.Run("delivers source errors", func(t *testing.T) {
		boom := errors.New("boom")
		src := &mocks.MockCardSource{DefaultError: boom}
		var got outcome

		err := newFetchTask(1, store.CategoryQuery("Node"), src, got.record).Execute(context.Background())

		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, got.err, boom)
		assert.Equal(t, 1, got.calls)
	})

	t.Run("converts a panic into a delivered error", func(t *testing.T) {
		src := &mocks.MockCardSource{
			CardsByCategoryFn: func(context.Context, domain.Category) ([]domain.FlashCard, error) {
				panic("nil map")
			},
		}
		var got outcome

		err := newFetchTask(9, store.CategoryQuery("Angular"), src, got.record).Execute(context.Background())

		assert.ErrorIs(t, err, ErrFetchPanicked)
		assert.ErrorIs(t, got.err, ErrFetchPanicked)
		assert.Contains(t, got.err.Error(), "nil map")
		assert.Nil(t, got.cards)
		assert.Equal(t, 1, got.calls)
	})
}
