package exporters

import (
	"context"
	"fmt"

	"github.com/mrlokans/vokabel/internal/entities"
)

// LooseDeckTitle names the deck of cards that belong to no lesson.
const LooseDeckTitle = "Loose cards"

// Deck is the unit of export: one lesson with its flashcards, or the cards
// without a lesson when Lesson is nil.
type Deck struct {
	Lesson *entities.Lesson
	Title  string
	Cards  []entities.Flashcard
}

type DeckExporter interface {
	Export(decks []Deck) (ExportResult, error)
}

type ExportResult struct {
	DecksProcessed int `json:"decks_processed"`
	CardsProcessed int `json:"cards_processed"`
	DecksFailed    int `json:"decks_failed"`
}

// DeckReader provides the lessons and flashcards to export.
type DeckReader interface {
	ListLessons(ctx context.Context) ([]entities.Lesson, error)
	ListFlashcards(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error)
}

// CollectDecks loads everything from reader and groups it into decks.
func CollectDecks(ctx context.Context, reader DeckReader) ([]Deck, error) {
	lessons, err := reader.ListLessons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	cards, err := reader.ListFlashcards(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return BuildDecks(lessons, cards), nil
}

// BuildDecks groups cards by lesson, keeping the lesson order. Lessons without
// cards still get a deck; cards without a lesson come last.
func BuildDecks(lessons []entities.Lesson, cards []entities.Flashcard) []Deck {
	decks := make([]Deck, 0, len(lessons)+1)
	index := make(map[uint]int, len(lessons))
	for i := range lessons {
		index[lessons[i].ID] = len(decks)
		decks = append(decks, Deck{Lesson: &lessons[i], Title: lessons[i].Title})
	}

	var loose []entities.Flashcard
	for _, card := range cards {
		if card.LessonID != nil {
			if i, ok := index[*card.LessonID]; ok {
				decks[i].Cards = append(decks[i].Cards, card)
				continue
			}
		}
		loose = append(loose, card)
	}
	if len(loose) > 0 {
		decks = append(decks, Deck{Title: LooseDeckTitle, Cards: loose})
	}
	return decks
}
