package http

import (
	"github.com/mrlokans/vokabel/internal/database"
	"github.com/mrlokans/vokabel/internal/dictionary"
	"github.com/mrlokans/vokabel/internal/logger"
	"github.com/mrlokans/vokabel/internal/services"
	"github.com/mrlokans/vokabel/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Study    *services.StudyService
	Database *database.Database
	Logger   *logger.Logger

	// Lesson import from web pages; nil disables POST /api/lessons/import
	Fetcher URLFetcher

	// Dictionary lookups; nil disables GET /api/dictionary/:term
	DictionaryClient dictionary.Client

	// Background tasks; nil runs backfills inline
	TaskClient *tasks.Client

	// Browser origins allowed to call the API
	CORSAllowOrigins []string

	// Application info
	Version string
}
