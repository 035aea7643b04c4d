package importers

import (
	"context"
	"strings"

	"github.com/mrlokans/vokabel/internal/entities"
)

// Draft is a lesson candidate produced by an import source.
type Draft struct {
	Title     string
	Content   string
	SourceURL string
}

// Source yields drafts from an external location.
//
// Implementations:
//   - URLSource (web.go) - articles fetched over HTTP and cleaned up with readability
//   - FileImporter (files.go) - text files matched by a glob pattern
type Source interface {
	Drafts(ctx context.Context) ([]Draft, error)
}

// LessonImporter persists a draft as a lesson.
type LessonImporter interface {
	ImportLesson(ctx context.Context, draft Draft) (*entities.Lesson, error)
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	LessonsCreated int      `json:"lessons_created"`
	LessonsSkipped int      `json:"lessons_skipped"`
	LessonIDs      []uint   `json:"lesson_ids"`
	Errors         []string `json:"errors,omitempty"`
}

// Pipeline handles the common import workflow:
// collect drafts → drop empty or duplicate ones → save.
type Pipeline struct {
	importer LessonImporter
}

// NewPipeline creates a new import pipeline with the given importer.
func NewPipeline(importer LessonImporter) *Pipeline {
	return &Pipeline{importer: importer}
}

// Import collects drafts from source and saves each as a lesson. A draft that
// fails to save is recorded in the result and does not stop the others.
func (p *Pipeline) Import(ctx context.Context, source Source) (ImportResult, error) {
	drafts, err := source.Drafts(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	return p.ImportDrafts(ctx, drafts)
}

// ImportDrafts saves already collected drafts.
func (p *Pipeline) ImportDrafts(ctx context.Context, drafts []Draft) (ImportResult, error) {
	var result ImportResult
	seen := make(map[string]bool)

	for _, d := range drafts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		d.Title = strings.TrimSpace(d.Title)
		d.Content = strings.TrimSpace(d.Content)
		if d.Title == "" || d.Content == "" || seen[d.Title+"\x00"+d.Content] {
			result.LessonsSkipped++
			continue
		}
		seen[d.Title+"\x00"+d.Content] = true

		lesson, err := p.importer.ImportLesson(ctx, d)
		if err != nil {
			result.Errors = append(result.Errors, d.Title+": "+err.Error())
			continue
		}
		result.LessonsCreated++
		result.LessonIDs = append(result.LessonIDs, lesson.ID)
	}
	return result, nil
}
