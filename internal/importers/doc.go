// Package importers turns external text into lessons.
//
// # Architecture
//
//	URL or files → Source → Draft → Pipeline → LessonImporter → lesson
//
// A Source collects drafts (title plus plain text). The Pipeline drops empty
// and duplicate drafts and hands the rest to a LessonImporter, normally
// services.StudyService.
//
// # Adding a New Source
//
//  1. Create a new file (e.g., epub.go)
//
//  2. Implement Source:
//
//     type EPUBSource struct{ Path string }
//
//     func (s EPUBSource) Drafts(ctx context.Context) ([]Draft, error) {
//     // one draft per chapter
//     }
//
//  3. Call Pipeline.Import from the CLI or an HTTP handler.
//
// # Existing Sources
//
//   - URLSource: web articles, cleaned up with go-readability
//   - FileImporter: text files matched by a doublestar pattern
package importers
