package store

import (
	"context"

	"github.com/phrazzld/scry-browser/internal/domain"
)

// CardSource supplies flash cards to the browser.
// Version: 1.0
type CardSource interface {
	// AllCards returns every card in the order the source keeps them.
	AllCards(ctx context.Context) ([]domain.FlashCard, error)

	// CardsByCategory returns the cards of one category in source order.
	// The category is passed through unchanged; an unknown category
	// yields whatever the source answers, typically an empty list.
	CardsByCategory(ctx context.Context, category domain.Category) ([]domain.FlashCard, error)
}

// Query selects what a fetch asks the source for. Filtered queries go to
// CardsByCategory with Category as given, including "All". Unfiltered
// queries go to AllCards and carry domain.CategoryAll as their label.
type Query struct {
	Category domain.Category
	Filtered bool
}

// AllCardsQuery asks for every card.
func AllCardsQuery() Query {
	return Query{Category: domain.CategoryAll}
}

// CategoryQuery asks for the cards of category.
func CategoryQuery(category domain.Category) Query {
	return Query{Category: category, Filtered: true}
}

// Fetch runs q against src.
func Fetch(ctx context.Context, src CardSource, q Query) ([]domain.FlashCard, error) {
	if !q.Filtered {
		return src.AllCards(ctx)
	}
	return src.CardsByCategory(ctx, q.Category)
}
