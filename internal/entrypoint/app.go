package entrypoint

import (
	"fmt"

	"github.com/mrlokans/vokabel/internal/config"
	"github.com/mrlokans/vokabel/internal/database"
	"github.com/mrlokans/vokabel/internal/database/flashcards"
	"github.com/mrlokans/vokabel/internal/database/lessons"
	"github.com/mrlokans/vokabel/internal/dictionary"
	"github.com/mrlokans/vokabel/internal/importers"
	"github.com/mrlokans/vokabel/internal/logger"
	"github.com/mrlokans/vokabel/internal/services"
)

// App holds the storage-backed components shared by the server and the
// command line tools.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *database.Database
	Study  *services.StudyService
}

// NewApp opens the database and builds the study service on top of it.
func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	study := services.NewStudyService(
		lessons.NewRepository(db.DB),
		flashcards.NewRepository(db.DB),
		log,
	)
	return &App{Config: cfg, Log: log, DB: db, Study: study}, nil
}

// WebImporter builds the lesson importer from the IMPORT_* settings.
func (a *App) WebImporter() *importers.WebImporter {
	return importers.NewWebImporter(a.Config.Import.Timeout, a.Config.Import.MaxBytes, a.Config.Import.UserAgent)
}

// DictionaryClient returns nil when lookups are disabled.
func (a *App) DictionaryClient() dictionary.Client {
	if !a.Config.Dictionary.Enabled {
		return nil
	}
	return dictionary.NewFreeDictionaryClient(a.Config.Dictionary.BaseURL, a.Config.Dictionary.Language)
}

func (a *App) Close() error {
	return a.DB.Close()
}
