package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/annotation"
	"github.com/mrlokans/vokabel/internal/entities"
	"github.com/mrlokans/vokabel/internal/importers"
	"github.com/mrlokans/vokabel/internal/logger"
)

// LessonInput is the payload for creating or updating a lesson.
type LessonInput struct {
	ID        *uint
	Title     string
	Content   string
	Dict      map[string]string
	SourceURL string
}

// FlashcardInput is the payload for upserting a flashcard. Context, when set,
// is stored instead of a sentence extracted from the lesson.
type FlashcardInput struct {
	Term     string
	Meaning  string
	LessonID *uint
	Context  *annotation.Context
}

// FlashcardSelector picks the cards to delete: by ID, or by term. A term
// selector with AnyLesson set ignores LessonID and matches every lesson.
type FlashcardSelector struct {
	ID        *uint
	Term      string
	LessonID  *uint
	AnyLesson bool
}

// Review is a flashcard prepared for study, with its first context split
// around the term.
type Review struct {
	Card    *entities.Flashcard `json:"card"`
	Context *annotation.Context `json:"context"`
	Before  string              `json:"before"`
	Match   string              `json:"match"`
	After   string              `json:"after"`
}

// StudyService holds the lesson and flashcard workflows. It keeps lesson
// dictionaries and flashcards in sync and captures example sentences for
// new cards.
type StudyService struct {
	lessons LessonStore
	cards   FlashcardStore
	log     *logger.Logger
}

func NewStudyService(lessons LessonStore, cards FlashcardStore, log *logger.Logger) *StudyService {
	if log == nil {
		log = logger.Nop()
	}
	return &StudyService{lessons: lessons, cards: cards, log: log.Named("study")}
}

func (s *StudyService) ListLessons(ctx context.Context) ([]entities.Lesson, error) {
	return s.lessons.List(ctx)
}

func (s *StudyService) GetLesson(ctx context.Context, id uint) (*entities.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "lesson", id)
	}
	return lesson, nil
}

// SaveLesson updates the lesson named by in.ID when it exists and creates a
// new one otherwise. The stored dict is replaced by in.Dict.
func (s *StudyService) SaveLesson(ctx context.Context, in LessonInput) (*entities.Lesson, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, invalid("title/content required")
	}

	lesson := &entities.Lesson{}
	if in.ID != nil {
		existing, err := s.lessons.GetByID(ctx, *in.ID)
		switch {
		case err == nil:
			lesson = existing
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to load lesson %d: %w", *in.ID, err)
		}
	}

	lesson.Title = in.Title
	lesson.Content = in.Content
	if in.SourceURL != "" {
		lesson.SourceURL = in.SourceURL
	}
	if err := lesson.SetDictionary(annotation.FromMap(in.Dict)); err != nil {
		return nil, err
	}

	if err := s.lessons.Save(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to save lesson: %w", err)
	}
	return lesson, nil
}

// DeleteLesson removes a lesson with its flashcards. Deleting a missing
// lesson is a no-op.
func (s *StudyService) DeleteLesson(ctx context.Context, id uint) error {
	err := s.lessons.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("Lesson already gone", "lesson_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete lesson %d: %w", id, err)
	}
	s.log.Info("Deleted lesson", "lesson_id", id)
	return nil
}

// ImportLesson stores an imported draft as a new lesson with an empty
// dictionary.
func (s *StudyService) ImportLesson(ctx context.Context, draft importers.Draft) (*entities.Lesson, error) {
	return s.SaveLesson(ctx, LessonInput{
		Title:     draft.Title,
		Content:   draft.Content,
		SourceURL: draft.SourceURL,
	})
}

// AnnotateLesson marks the lesson text with its own dictionary.
func (s *StudyService) AnnotateLesson(ctx context.Context, id uint) (*entities.Lesson, []annotation.Paragraph, error) {
	lesson, err := s.GetLesson(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	dict, err := lesson.Dictionary()
	if err != nil {
		return nil, nil, err
	}
	return lesson, annotation.Annotate(lesson.Content, dict), nil
}

func (s *StudyService) ListFlashcards(ctx context.Context, lessonID *uint) ([]entities.Flashcard, error) {
	return s.cards.List(ctx, lessonID)
}

func (s *StudyService) GetFlashcard(ctx context.Context, id uint) (*entities.Flashcard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "flashcard", id)
	}
	return card, nil
}

// UpsertFlashcard creates the card for in.Term within the lesson scope, or
// updates its meaning when one exists (terms compare case-insensitively). The
// lesson dictionary gets the same entry, and a context sentence is attached
// unless an equal one is already stored.
func (s *StudyService) UpsertFlashcard(ctx context.Context, in FlashcardInput) (*entities.Flashcard, bool, error) {
	term := strings.TrimSpace(in.Term)
	meaning := strings.TrimSpace(in.Meaning)
	if term == "" || meaning == "" {
		return nil, false, invalid("term/meaning required")
	}

	var lesson *entities.Lesson
	if in.LessonID != nil {
		var err error
		if lesson, err = s.GetLesson(ctx, *in.LessonID); err != nil {
			return nil, false, err
		}
	}

	created := false
	card, err := s.cards.FindByTerm(ctx, annotation.Key(term), in.LessonID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		card = &entities.Flashcard{Term: term, Meaning: meaning, LessonID: in.LessonID}
		if err := s.cards.Create(ctx, card); err != nil {
			return nil, false, fmt.Errorf("failed to create flashcard: %w", err)
		}
		created = true
	case err != nil:
		return nil, false, fmt.Errorf("failed to look up flashcard %q: %w", term, err)
	default:
		if err := s.cards.UpdateMeaning(ctx, card, term, meaning); err != nil {
			return nil, false, fmt.Errorf("failed to update flashcard %d: %w", card.ID, err)
		}
	}

	if lesson != nil {
		if err := s.lessons.SetTerm(ctx, lesson.ID, term, meaning); err != nil {
			return nil, false, fmt.Errorf("failed to sync dict of lesson %d: %w", lesson.ID, err)
		}
	}

	if c, ok := s.contextFor(in, term, lesson); ok {
		if _, err := s.cards.AppendContext(ctx, card.ID, c); err != nil {
			return nil, false, fmt.Errorf("failed to store context for flashcard %d: %w", card.ID, err)
		}
	}

	card, err = s.GetFlashcard(ctx, card.ID)
	if err != nil {
		return nil, false, err
	}
	return card, created, nil
}

// contextFor picks the context to attach: the supplied one (with offsets
// relocated when they do not select the term), or one extracted from the
// lesson text.
func (s *StudyService) contextFor(in FlashcardInput, term string, lesson *entities.Lesson) (annotation.Context, bool) {
	if in.Context != nil && strings.TrimSpace(in.Context.Sentence) != "" {
		c := *in.Context
		c.Sentence = strings.TrimSpace(c.Sentence)
		if !coversTerm(c, term) {
			c.Start, c.End = annotation.NoOffset, annotation.NoOffset
			if start, end, ok := annotation.LocateTerm(c, term); ok {
				c.Start, c.End = start, end
			}
		}
		return c, true
	}
	if lesson == nil {
		return annotation.Context{}, false
	}
	c, ok := annotation.ExtractContext(lesson.Content, term)
	if !ok {
		s.log.Debug("Term not found in lesson text", "lesson_id", lesson.ID, "term", term)
	}
	return c, ok
}

// coversTerm reports whether the offsets of c select term inside the
// sentence, compared by canonical key.
func coversTerm(c annotation.Context, term string) bool {
	if !c.HasOffsets() {
		return false
	}
	runes := []rune(c.Sentence)
	return annotation.Key(string(runes[c.Start:c.End])) == annotation.Key(term)
}

// DeleteFlashcard removes the selected cards and their terms from the lesson
// dictionaries they belonged to. It returns the number of cards deleted;
// selecting nothing is not an error.
func (s *StudyService) DeleteFlashcard(ctx context.Context, sel FlashcardSelector) (int, error) {
	term := strings.TrimSpace(sel.Term)
	switch {
	case sel.ID != nil:
		card, err := s.cards.GetByID(ctx, *sel.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to load flashcard %d: %w", *sel.ID, err)
		}
		if err := s.deleteCard(ctx, card); err != nil {
			return 0, err
		}
		return 1, nil

	case term != "" && sel.AnyLesson:
		cards, err := s.cards.FindAllByTerm(ctx, annotation.Key(term))
		if err != nil {
			return 0, fmt.Errorf("failed to look up flashcards %q: %w", term, err)
		}
		for i := range cards {
			if err := s.deleteCard(ctx, &cards[i]); err != nil {
				return i, err
			}
		}
		return len(cards), nil

	case term != "":
		n, err := s.cards.DeleteByTerm(ctx, annotation.Key(term), sel.LessonID)
		if err != nil {
			return 0, fmt.Errorf("failed to delete flashcards %q: %w", term, err)
		}
		if sel.LessonID != nil {
			if err := s.removeTerm(ctx, *sel.LessonID, term); err != nil {
				return int(n), err
			}
		}
		return int(n), nil

	default:
		return 0, invalid("id or term required")
	}
}

func (s *StudyService) deleteCard(ctx context.Context, card *entities.Flashcard) error {
	if err := s.cards.Delete(ctx, card.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to delete flashcard %d: %w", card.ID, err)
	}
	if card.LessonID != nil {
		return s.removeTerm(ctx, *card.LessonID, card.Term)
	}
	return nil
}

func (s *StudyService) removeTerm(ctx context.Context, lessonID uint, term string) error {
	_, err := s.lessons.RemoveTerm(ctx, lessonID, term)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to remove %q from lesson %d: %w", term, lessonID, err)
	}
	return nil
}

// ReviewCard returns a card with its first context split around the term.
func (s *StudyService) ReviewCard(ctx context.Context, id uint) (*Review, error) {
	card, err := s.GetFlashcard(ctx, id)
	if err != nil {
		return nil, err
	}
	review := &Review{Card: card}
	if contexts := card.ContextList(); len(contexts) > 0 {
		c := contexts[0]
		review.Context = &c
		review.Before, review.Match, review.After = annotation.SplitHighlight(c, card.Term)
	}
	return review, nil
}
