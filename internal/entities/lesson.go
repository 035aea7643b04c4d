package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/vokabel/internal/annotation"
)

// Lesson is a piece of foreign-language text together with the terms the
// learner has looked up in it.
type Lesson struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:512" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Dict      datatypes.JSON `json:"dict"` // term -> meaning
	SourceURL string         `gorm:"size:2048" json:"source_url,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Flashcards []Flashcard `gorm:"foreignKey:LessonID" json:"-"`
}

// Dictionary decodes the stored dict column.
func (l *Lesson) Dictionary() (*annotation.Dictionary, error) {
	if len(l.Dict) == 0 {
		return &annotation.Dictionary{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal(l.Dict, &m); err != nil {
		return nil, fmt.Errorf("decode dict of lesson %d: %w", l.ID, err)
	}
	return annotation.FromMap(m), nil
}

// SetDictionary replaces the stored dict column with d.
func (l *Lesson) SetDictionary(d *annotation.Dictionary) error {
	raw, err := json.Marshal(d.ToMap())
	if err != nil {
		return fmt.Errorf("encode dict of lesson %d: %w", l.ID, err)
	}
	l.Dict = datatypes.JSON(raw)
	return nil
}

func (l *Lesson) BeforeSave(tx *gorm.DB) error {
	if len(l.Dict) == 0 {
		l.Dict = datatypes.JSON("{}")
	}
	return nil
}
