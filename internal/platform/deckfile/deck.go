package deckfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/phrazzld/scry-browser/internal/store"
	"gopkg.in/yaml.v3"
)

// deckDocument is the on-disk layout of a deck file.
type deckDocument struct {
	Name  string     `yaml:"name"`
	Cards []deckCard `yaml:"cards" validate:"dive"`
}

type deckCard struct {
	ID       string       `yaml:"id"`
	Category string       `yaml:"category" validate:"required"`
	Question string       `yaml:"question" validate:"required"`
	Answers  []deckAnswer `yaml:"answers"  validate:"required,min=1,dive"`
}

type deckAnswer struct {
	Text    string `yaml:"text"    validate:"required"`
	Correct bool   `yaml:"correct"`
}

// Source serves the cards of one deck in file order.
type Source struct {
	name   string
	cards  []domain.FlashCard
	logger *slog.Logger
}

var _ store.CardSource = (*Source)(nil)

// Load reads and validates the deck at path.
// If logger is nil, a default logger will be used.
func Load(path string, logger *slog.Logger) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return Parse(bytes.NewReader(data), logger)
}

// Parse decodes a deck from r. Cards without an id get a random one.
func Parse(r io.Reader, logger *slog.Logger) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc deckDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidDeck, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidDeck, err)
	}

	cards := make([]domain.FlashCard, 0, len(doc.Cards))
	for i, dc := range doc.Cards {
		card := domain.FlashCard{
			ID:       dc.ID,
			Category: domain.Category(dc.Category),
			Question: dc.Question,
			Answers:  make([]domain.Answer, len(dc.Answers)),
		}
		for j, a := range dc.Answers {
			card.Answers[j] = domain.Answer{Text: a.Text, Correct: a.Correct}
		}
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("%w: card %d: %w", store.ErrInvalidDeck, i, err)
		}
		cards = append(cards, card)
	}

	logger = logger.With(slog.String("component", "deck_file"))
	logger.Info("deck loaded",
		slog.String("deck", doc.Name),
		slog.Int("card_count", len(cards)))

	return &Source{
		name:   doc.Name,
		cards:  cards,
		logger: logger,
	}, nil
}

// Name returns the deck name, which may be empty.
func (s *Source) Name() string {
	return s.name
}

// AllCards implements store.CardSource.AllCards.
func (s *Source) AllCards(ctx context.Context) ([]domain.FlashCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewSourceError("all_cards", "", err)
	}
	return domain.CloneCards(s.cards), nil
}

// CardsByCategory implements store.CardSource.CardsByCategory.
// Matching is exact; an unknown category yields an empty list.
func (s *Source) CardsByCategory(ctx context.Context, category domain.Category) ([]domain.FlashCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewSourceError("cards_by_category", category, err)
	}

	out := make([]domain.FlashCard, 0)
	for _, c := range s.cards {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return domain.CloneCards(out), nil
}
