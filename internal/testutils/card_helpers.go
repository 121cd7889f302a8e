package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/scry-browser/internal/domain"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// CreateTestCard returns a valid card with one correct answer.
func CreateTestCard(id string, category domain.Category) domain.FlashCard {
	return domain.FlashCard{
		ID:       id,
		Category: category,
		Question: fmt.Sprintf("Question %s about %s?", id, category),
		Answers: []domain.Answer{
			{Text: "Right answer", Correct: true},
			{Text: "Wrong answer"},
		},
	}
}

// CreateTestCards returns one valid card per category, in order, with ids
// "card-0", "card-1", ...
func CreateTestCards(categories ...domain.Category) []domain.FlashCard {
	cards := make([]domain.FlashCard, len(categories))
	for i, c := range categories {
		cards[i] = CreateTestCard(fmt.Sprintf("card-%d", i), c)
	}
	return cards
}

// CreateDeckFile writes cards as a YAML deck into the test's temp directory
// and returns its path.
func CreateDeckFile(t *testing.T, name string, cards []domain.FlashCard) string {
	t.Helper()

	data, err := yaml.Marshal(struct {
		Name  string             `yaml:"name"`
		Cards []domain.FlashCard `yaml:"cards"`
	}{Name: name, Cards: cards})
	require.NoError(t, err, "Failed to marshal deck")

	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600), "Failed to write deck file")
	return path
}
