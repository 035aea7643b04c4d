package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/annotation"
)

// Flashcard is a term/meaning pair, optionally tied to the lesson it was
// picked from. Identity within a lesson is TermKey, the case-folded term.
type Flashcard struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Term      string             `gorm:"size:512" json:"term"`
	TermKey   string             `gorm:"index;size:512" json:"-"`
	Meaning   string             `gorm:"type:text" json:"meaning"`
	LessonID  *uint              `gorm:"index" json:"lesson_id"`
	Contexts  []FlashcardContext `gorm:"foreignKey:FlashcardID;constraint:OnDelete:CASCADE" json:"contexts"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (f *Flashcard) BeforeSave(tx *gorm.DB) error {
	f.TermKey = annotation.Key(f.Term)
	return nil
}

// ContextList returns the contexts in the order they were captured.
func (f *Flashcard) ContextList() []annotation.Context {
	out := make([]annotation.Context, 0, len(f.Contexts))
	for _, c := range f.Contexts {
		out = append(out, c.Context())
	}
	return out
}

// FlashcardContext is one example sentence of a flashcard. Start and End are
// rune offsets of the term inside Sentence, or -1 when unknown.
type FlashcardContext struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	FlashcardID uint      `gorm:"index" json:"-"`
	Position    int       `json:"-"`
	Sentence    string    `gorm:"type:text" json:"sentence"`
	Start       int       `gorm:"not null" json:"start"`
	End         int       `gorm:"not null" json:"end"`
	CreatedAt   time.Time `json:"-"`
}

func NewFlashcardContext(c annotation.Context, position int) FlashcardContext {
	return FlashcardContext{
		Position: position,
		Sentence: c.Sentence,
		Start:    c.Start,
		End:      c.End,
	}
}

func (c FlashcardContext) Context() annotation.Context {
	return annotation.Context{Sentence: c.Sentence, Start: c.Start, End: c.End}
}
