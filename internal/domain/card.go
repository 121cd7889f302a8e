package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card has no question text.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardCategoryEmpty is returned when a card carries no category.
	ErrCardCategoryEmpty = errors.New("card category cannot be empty")

	// ErrCardAnswersEmpty is returned when a card has no answers.
	ErrCardAnswersEmpty = errors.New("card must have at least one answer")

	// ErrCardAnswerTextEmpty is returned when an answer has no text.
	ErrCardAnswerTextEmpty = errors.New("card answer text cannot be empty")
)

// Answer is one of the choices shown for a flash card.
type Answer struct {
	Text    string `json:"text"    yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// FlashCard is a single card as served by the card source. The browser
// renders it but never inspects its fields.
//
// Cards decoded from JSON keep their original encoding in Raw and marshal
// back to it unchanged, so fields the typed view does not know about survive
// the round trip. The typed fields are filled when the card is a JSON object
// of the usual shape and are used for deck files and page rendering.
type FlashCard struct {
	ID       string          `json:"_id,omitempty" yaml:"id,omitempty"`
	Category Category        `json:"category"      yaml:"category"`
	Question string          `json:"question"      yaml:"question"`
	Answers  []Answer        `json:"answers"       yaml:"answers"`
	Raw      json.RawMessage `json:"-"             yaml:"-"`
}

// flashCardFields has the typed fields of FlashCard without its JSON methods.
type flashCardFields struct {
	ID       string   `json:"_id,omitempty"`
	Category Category `json:"category"`
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

// UnmarshalJSON keeps a copy of data in Raw. Non-object cards are accepted
// as they are and leave the typed fields empty.
func (c *FlashCard) UnmarshalJSON(data []byte) error {
	raw := append(json.RawMessage(nil), data...)
	var fields flashCardFields
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(data, &fields); err != nil {
			// Unusual field types are still a valid card. Keep only Raw.
			fields = flashCardFields{}
		}
	}
	*c = FlashCard{
		ID:       fields.ID,
		Category: fields.Category,
		Question: fields.Question,
		Answers:  fields.Answers,
		Raw:      raw,
	}
	return nil
}

// MarshalJSON writes Raw when the card came from JSON, and the typed fields
// otherwise.
func (c FlashCard) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	return json.Marshal(flashCardFields{
		ID:       c.ID,
		Category: c.Category,
		Question: c.Question,
		Answers:  c.Answers,
	})
}

// Summary is the text the page shows for the card: the question when there
// is one, and the card's JSON otherwise.
func (c FlashCard) Summary() string {
	if c.Question != "" || len(c.Raw) == 0 {
		return c.Question
	}
	return string(c.Raw)
}

// Validate checks that the card is complete enough to display.
func (c *FlashCard) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(string(c.Category)) == "" {
		return ErrCardCategoryEmpty
	}

	if len(c.Answers) == 0 {
		return ErrCardAnswersEmpty
	}

	for _, a := range c.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return ErrCardAnswerTextEmpty
		}
	}

	return nil
}

// CloneCards returns a copy of cards that shares no backing arrays with the
// input. A nil input yields an empty, non-nil slice.
func CloneCards(cards []FlashCard) []FlashCard {
	out := make([]FlashCard, len(cards))
	for i, c := range cards {
		out[i] = c
		if c.Answers != nil {
			out[i].Answers = append([]Answer(nil), c.Answers...)
		}
		if c.Raw != nil {
			out[i].Raw = append(json.RawMessage(nil), c.Raw...)
		}
	}
	return out
}
