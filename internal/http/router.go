package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log.Named("http")))
	if len(cfg.CORSAllowOrigins) > 0 {
		router.Use(CORS(cfg.CORSAllowOrigins))
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", healthController.Ping)

	api := router.Group("/api")
	api.GET("/stats", healthController.Stats)

	annotateController := NewAnnotateController()
	api.POST("/annotate", annotateController.Annotate)
	api.POST("/context", annotateController.Context)

	dictionaryController := NewDictionaryController(cfg.DictionaryClient)
	api.GET("/dictionary/:term", dictionaryController.Lookup)

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	if cfg.Study == nil {
		return router
	}

	lessonsController := NewLessonsController(cfg.Study, cfg.Fetcher)
	lessons := api.Group("/lessons")
	{
		lessons.GET("", lessonsController.List)
		lessons.POST("", lessonsController.Save)
		lessons.DELETE("", lessonsController.Delete)
		lessons.POST("/import", lessonsController.Import)
		lessons.GET("/:id", lessonsController.Get)
		lessons.DELETE("/:id", lessonsController.Delete)
		lessons.GET("/:id/annotated", lessonsController.Annotated)
	}

	// A nil *tasks.Client must not become a non-nil interface.
	var enqueuer BackfillEnqueuer
	if cfg.TaskClient != nil {
		enqueuer = cfg.TaskClient
	}
	flashcardsController := NewFlashcardsController(cfg.Study, enqueuer)
	flashcards := api.Group("/flashcards")
	{
		flashcards.GET("", flashcardsController.List)
		flashcards.POST("", flashcardsController.Upsert)
		flashcards.DELETE("", flashcardsController.Delete)
		flashcards.POST("/backfill", flashcardsController.Backfill)
		flashcards.GET("/:id", flashcardsController.Get)
		flashcards.DELETE("/:id", flashcardsController.Delete)
		flashcards.GET("/:id/review", flashcardsController.Review)
	}

	return router
}
