package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/store"
)

// MockCardSource implements store.CardSource for testing
type MockCardSource struct {
	// Custom behavior functions
	AllCardsFn        func(ctx context.Context) ([]domain.FlashCard, error)
	CardsByCategoryFn func(ctx context.Context, category domain.Category) ([]domain.FlashCard, error)

	// Default return values
	Cards        []domain.FlashCard
	DefaultError error

	mu            sync.Mutex
	allCalls      int
	categoryCalls []domain.Category
}

var _ store.CardSource = (*MockCardSource)(nil)

// AllCards implements the CardSource.AllCards method
func (m *MockCardSource) AllCards(ctx context.Context) ([]domain.FlashCard, error) {
	m.mu.Lock()
	m.allCalls++
	m.mu.Unlock()

	if m.AllCardsFn != nil {
		return m.AllCardsFn(ctx)
	}
	return m.Cards, m.DefaultError
}

// CardsByCategory implements the CardSource.CardsByCategory method
func (m *MockCardSource) CardsByCategory(ctx context.Context, category domain.Category) ([]domain.FlashCard, error) {
	m.mu.Lock()
	m.categoryCalls = append(m.categoryCalls, category)
	m.mu.Unlock()

	if m.CardsByCategoryFn != nil {
		return m.CardsByCategoryFn(ctx, category)
	}
	return m.Cards, m.DefaultError
}

// AllCardsCalls returns how many times AllCards was called.
func (m *MockCardSource) AllCardsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allCalls
}

// CategoryCalls returns the categories passed to CardsByCategory, in call order.
func (m *MockCardSource) CategoryCalls() []domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Category(nil), m.categoryCalls...)
}
