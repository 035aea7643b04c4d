package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/vokabel/internal/config"
	http_controllers "github.com/mrlokans/vokabel/internal/http"
	"github.com/mrlokans/vokabel/internal/logger"
	"github.com/mrlokans/vokabel/internal/scheduler"
	"github.com/mrlokans/vokabel/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then calls onShutdown
// and drains the server within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server", "signal", sig.String(), "timeout", timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops before the server so no new jobs start mid-drain.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run wires every component from cfg and serves until interrupted.
func Run(cfg *config.Config, version string) error {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting vokabel", "version", version)

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("Error closing database", "error", err)
		}
	}()

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.FromSettings(cfg.Tasks)
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Warn("Error closing task client", "error", err)
			}
		}()

		taskClient.Register(tasks.NewBackfillContextsQueue(app.Study, taskCfg, log))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	var backfillScheduler *scheduler.BackfillScheduler
	if cfg.Backfill.Enabled {
		backfillScheduler = scheduler.NewBackfillScheduler(app.Study, cfg.Backfill.Schedule, log)
		if err := backfillScheduler.Start(context.Background()); err != nil {
			return err
		}
	} else {
		log.Info("Backfill scheduler disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Study:            app.Study,
		Database:         app.DB,
		Logger:           log,
		Fetcher:          app.WebImporter(),
		DictionaryClient: app.DictionaryClient(),
		TaskClient:       taskClient,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		Version:          version,
	})

	onShutdown := func(ctx context.Context) {
		if backfillScheduler != nil {
			backfillScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, log, onShutdown)
}
