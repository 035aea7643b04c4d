package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/entities"
)

// BackfillContexts attaches a context sentence to every lesson-bound card
// that has none, extracting it from the lesson text. Running it twice
// changes nothing the second time. A non-nil lessonID limits the run to one
// lesson.
func (s *StudyService) BackfillContexts(ctx context.Context, lessonID *uint) (BackfillResult, error) {
	var result BackfillResult

	cards, err := s.cards.ListWithoutContexts(ctx, lessonID)
	if err != nil {
		return result, fmt.Errorf("failed to list flashcards without contexts: %w", err)
	}

	lessons := make(map[uint]*entities.Lesson)
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++

		lesson, err := s.cachedLesson(ctx, lessons, *card.LessonID)
		if err != nil {
			return result, err
		}
		if lesson == nil {
			result.Missing++
			continue
		}

		c, ok := annotation.ExtractContext(lesson.Content, card.Term)
		if !ok {
			result.Missing++
			continue
		}
		added, err := s.cards.AppendContext(ctx, card.ID, c)
		if err != nil {
			return result, fmt.Errorf("failed to store context for flashcard %d: %w", card.ID, err)
		}
		if added {
			result.Updated++
		}
	}

	s.log.Info("Context backfill finished",
		"scanned", result.Scanned,
		"updated", result.Updated,
		"missing", result.Missing,
	)
	return result, nil
}

// cachedLesson loads each lesson once per run. A deleted lesson yields nil.
func (s *StudyService) cachedLesson(ctx context.Context, cache map[uint]*entities.Lesson, id uint) (*entities.Lesson, error) {
	if lesson, ok := cache[id]; ok {
		return lesson, nil
	}
	lesson, err := s.lessons.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %d: %w", id, err)
	}
	cache[id] = lesson
	return lesson, nil
}
