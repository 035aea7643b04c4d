package services

import (
	"context"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/entities"
)

// LessonStore persists lessons and their term dictionaries.
type LessonStore interface {
	List(ctx context.Context) ([]entities.Lesson, error)
	GetByID(ctx context.Context, id uint) (*entities.Lesson, error)
	Save(ctx context.Context, lesson *entities.Lesson) error
	Delete(ctx context.Context, id uint) error
	SetTerm(ctx context.Context, id uint, term, meaning string) error
	RemoveTerm(ctx context.Context, id uint, term string) (bool, error)
}

// FlashcardStore persists flashcards and their contexts.
type FlashcardStore interface {
	List(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error)
	GetByID(ctx context.Context, id uint) (*entities.Flashcard, error)
	FindByTerm(ctx context.Context, termKey string, lessonID *uint) (*entities.Flashcard, error)
	FindAllByTerm(ctx context.Context, termKey string) ([]entities.Flashcard, error)
	Create(ctx context.Context, card *entities.Flashcard) error
	UpdateMeaning(ctx context.Context, card *entities.Flashcard, term, meaning string) error
	AppendContext(ctx context.Context, cardID uint, c annotation.Context) (bool, error)
	Delete(ctx context.Context, id uint) error
	DeleteByTerm(ctx context.Context, termKey string, lessonID *uint) (int64, error)
	ListWithoutContexts(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error)
}

// BackfillResult contains the outcome of a context backfill run.
type BackfillResult struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
	Missing int `json:"missing"` // term not found in lesson text
}
