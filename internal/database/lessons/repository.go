// Package lessons provides database operations for lessons and their term
// dictionaries.
//
// # Usage
//
//	repo := lessons.NewRepository(db)
//	all, err := repo.List(ctx)
//	err = repo.SetTerm(ctx, lessonID, "Haustür", "front door")
package lessons

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/entities"
)

// Repository handles all lesson database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new lesson repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all lessons, newest first.
func (r *Repository) List(ctx context.Context) ([]entities.Lesson, error) {
	var lessons []entities.Lesson
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&lessons).Error
	return lessons, err
}

// GetByID retrieves a lesson. It returns gorm.ErrRecordNotFound when absent.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Lesson, error) {
	var lesson entities.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Save creates the lesson when it has no ID and updates it otherwise.
func (r *Repository) Save(ctx context.Context, lesson *entities.Lesson) error {
	db := r.db.WithContext(ctx).Omit("Flashcards")
	if lesson.ID == 0 {
		return db.Create(lesson).Error
	}
	return db.Save(lesson).Error
}

// Delete removes a lesson together with its flashcards and their contexts.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cardIDs := tx.Model(&entities.Flashcard{}).Select("id").Where("lesson_id = ?", id)

		if err := tx.Where("flashcard_id IN (?)", cardIDs).Delete(&entities.FlashcardContext{}).Error; err != nil {
			return fmt.Errorf("failed to delete contexts: %w", err)
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&entities.Flashcard{}).Error; err != nil {
			return fmt.Errorf("failed to delete flashcards: %w", err)
		}

		result := tx.Delete(&entities.Lesson{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetTerm adds or replaces one entry of the lesson dictionary.
func (r *Repository) SetTerm(ctx context.Context, id uint, term, meaning string) error {
	return r.updateDictionary(ctx, id, func(lesson *entities.Lesson) (bool, error) {
		dict, err := lesson.Dictionary()
		if err != nil {
			return false, err
		}
		if !dict.Set(term, meaning) {
			return false, nil
		}
		return true, lesson.SetDictionary(dict)
	})
}

// RemoveTerm deletes one entry of the lesson dictionary, matched
// case-insensitively. It reports whether the entry existed.
func (r *Repository) RemoveTerm(ctx context.Context, id uint, term string) (bool, error) {
	removed := false
	err := r.updateDictionary(ctx, id, func(lesson *entities.Lesson) (bool, error) {
		dict, err := lesson.Dictionary()
		if err != nil {
			return false, err
		}
		if removed = dict.Delete(term); !removed {
			return false, nil
		}
		return true, lesson.SetDictionary(dict)
	})
	return removed, err
}

func (r *Repository) updateDictionary(ctx context.Context, id uint, mutate func(*entities.Lesson) (bool, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson entities.Lesson
		if err := tx.First(&lesson, id).Error; err != nil {
			return err
		}
		changed, err := mutate(&lesson)
		if err != nil || !changed {
			return err
		}
		return tx.Model(&lesson).Update("dict", lesson.Dict).Error
	})
}
