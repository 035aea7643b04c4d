// Package flashcards provides database operations for flashcards and the
// example sentences attached to them.
//
// Flashcards are looked up by TermKey, the canonical form produced by
// annotation.Key, so "Haus" and "haus" address the same card within a lesson.
package flashcards

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/entities"
)

// Repository handles all flashcard database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new flashcard repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloadContexts(db *gorm.DB) *gorm.DB {
	return db.Preload("Contexts", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	})
}

// scopeLesson restricts a query to one lesson, or to cards without a lesson
// when lessonID is nil.
func scopeLesson(db *gorm.DB, lessonID *uint) *gorm.DB {
	if lessonID == nil {
		return db.Where("lesson_id IS NULL")
	}
	return db.Where("lesson_id = ?", *lessonID)
}

// List returns flashcards newest first. A non-nil lessonID limits the result
// to that lesson.
func (r *Repository) List(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error) {
	var cards []entities.Flashcard
	query := preloadContexts(r.db.WithContext(ctx))
	if lessonID != nil {
		query = query.Where("lesson_id = ?", *lessonID)
	}
	err := query.Order("created_at DESC, id DESC").Find(&cards).Error
	return cards, err
}

// GetByID retrieves a flashcard with its contexts.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Flashcard, error) {
	var card entities.Flashcard
	if err := preloadContexts(r.db.WithContext(ctx)).First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByTerm returns the card with termKey in the given lesson scope.
func (r *Repository) FindByTerm(ctx context.Context, termKey string, lessonID *uint) (*entities.Flashcard, error) {
	var card entities.Flashcard
	query := scopeLesson(preloadContexts(r.db.WithContext(ctx)), lessonID)
	if err := query.Where("term_key = ?", termKey).Order("id ASC").First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindAllByTerm returns the cards with termKey across every lesson.
func (r *Repository) FindAllByTerm(ctx context.Context, termKey string) ([]entities.Flashcard, error) {
	var cards []entities.Flashcard
	err := r.db.WithContext(ctx).Where("term_key = ?", termKey).Order("id ASC").Find(&cards).Error
	return cards, err
}

// Create inserts a card and any contexts it already carries, numbering their
// positions in slice order.
func (r *Repository) Create(ctx context.Context, card *entities.Flashcard) error {
	for i := range card.Contexts {
		card.Contexts[i].Position = i
	}
	return r.db.WithContext(ctx).Create(card).Error
}

// UpdateMeaning stores a new meaning and display spelling for the card.
func (r *Repository) UpdateMeaning(ctx context.Context, card *entities.Flashcard, term, meaning string) error {
	card.Term = term
	card.TermKey = annotation.Key(term)
	card.Meaning = meaning
	return r.db.WithContext(ctx).Model(card).
		Select("term", "term_key", "meaning", "updated_at").
		Updates(card).Error
}

// AppendContext adds c to the card unless an equal sentence is already
// stored. It reports whether a row was written.
func (r *Repository) AppendContext(ctx context.Context, cardID uint, c annotation.Context) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entities.FlashcardContext
		if err := tx.Where("flashcard_id = ?", cardID).Order("position ASC, id ASC").Find(&existing).Error; err != nil {
			return err
		}

		current := make([]annotation.Context, 0, len(existing))
		for _, e := range existing {
			current = append(current, e.Context())
		}
		if _, added = annotation.AppendContext(current, c); !added {
			return nil
		}

		row := entities.NewFlashcardContext(c, len(existing))
		row.FlashcardID = cardID
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to store context: %w", err)
		}
		return nil
	})
	return added, err
}

// Delete removes a card and its contexts.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flashcard_id = ?", id).Delete(&entities.FlashcardContext{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Flashcard{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteByTerm removes every card with termKey in the lesson scope and returns
// how many were deleted.
func (r *Repository) DeleteByTerm(ctx context.Context, termKey string, lessonID *uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := scopeLesson(tx.Model(&entities.Flashcard{}).Select("id"), lessonID).Where("term_key = ?", termKey)

		if err := tx.Where("flashcard_id IN (?)", ids).Delete(&entities.FlashcardContext{}).Error; err != nil {
			return err
		}
		result := scopeLesson(tx, lessonID).Where("term_key = ?", termKey).Delete(&entities.Flashcard{})
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// ListWithoutContexts returns lesson-bound cards that have no context yet. A
// non-nil lessonID limits the search to that lesson.
func (r *Repository) ListWithoutContexts(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error) {
	var cards []entities.Flashcard
	query := r.db.WithContext(ctx).
		Where("lesson_id IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM flashcard_contexts fc WHERE fc.flashcard_id = flashcards.id)")
	if lessonID != nil {
		query = query.Where("lesson_id = ?", *lessonID)
	}
	err := query.Order("id ASC").Find(&cards).Error
	return cards, err
}
