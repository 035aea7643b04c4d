package interfaces

// Compile-time interface implementation checks. They catch missing methods
// at build time instead of at wiring time in entrypoint.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/vokabel/internal/database/flashcards"
	"github.com/mrlokans/vokabel/internal/database/lessons"
	"github.com/mrlokans/vokabel/internal/dictionary"
	"github.com/mrlokans/vokabel/internal/exporters"
	"github.com/mrlokans/vokabel/internal/http"
	"github.com/mrlokans/vokabel/internal/importers"
	"github.com/mrlokans/vokabel/internal/services"
	"github.com/mrlokans/vokabel/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.LessonStore = (*lessons.Repository)(nil)
var _ services.FlashcardStore = (*flashcards.Repository)(nil)

// =============================================================================
// Study workflows
// =============================================================================

var _ importers.LessonImporter = (*services.StudyService)(nil)
var _ exporters.DeckReader = (*services.StudyService)(nil)
var _ tasks.ContextBackfiller = (*services.StudyService)(nil)

// =============================================================================
// Import / Export
// =============================================================================

var _ importers.Source = (*importers.FileImporter)(nil)
var _ importers.Source = importers.URLSource{}
var _ http.URLFetcher = (*importers.WebImporter)(nil)

var _ exporters.DeckExporter = (*exporters.MarkdownExporter)(nil)
var _ exporters.DeckExporter = (*exporters.YAMLExporter)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ dictionary.Client = (*dictionary.FreeDictionaryClient)(nil)

// =============================================================================
// Background work
// =============================================================================

var _ http.BackfillEnqueuer = (*tasks.Client)(nil)
