// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - LessonStore: lesson persistence and dictionary edits (internal/services/interfaces.go)
//   - FlashcardStore: flashcards and their contexts (internal/services/interfaces.go)
//
// ## Study Workflow Interfaces
//
//   - LessonImporter: saves drafts as lessons (internal/importers/pipeline.go)
//   - DeckReader: lessons and cards for export (internal/exporters/generic.go)
//   - ContextBackfiller: attaches missing context sentences (internal/tasks/backfill.go)
//
// ## Import and Export Interfaces
//
//   - Source: produces lesson drafts (internal/importers/pipeline.go)
//   - URLFetcher: fetches a single web page as a draft (internal/http/lessons.go)
//   - DeckExporter: writes decks to files or a stream (internal/exporters/generic.go)
//
// ## External Service Interfaces
//
//   - Client: word definitions (internal/dictionary/client.go)
//   - BackfillEnqueuer: schedules backfill jobs on the task queue (internal/http/flashcards.go)
//
// # Adding a New Import Source
//
//  1. Implement Source in internal/importers/
//
//     type EpubSource struct {
//         Path string
//     }
//
//     func (s EpubSource) Drafts(ctx context.Context) ([]importers.Draft, error) {
//         // One draft per chapter
//     }
//
//  2. Feed it to importers.NewPipeline(study).Import from a CLI command or
//     an HTTP handler.
//
// # Adding a New Dictionary Provider
//
//  1. Implement Client in internal/dictionary/
//
//     type WiktionaryClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *WiktionaryClient) Lookup(ctx context.Context, term string) (*LookupResult, error)
//     func (c *WiktionaryClient) Name() string
//
//     var _ Client = (*WiktionaryClient)(nil)
//
//  2. Select it in entrypoint.App.DictionaryClient.
//
// # Compile-Time Interface Checks
//
// Implementations carry compile-time checks so missing methods fail the build:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
