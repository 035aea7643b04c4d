package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/vokabel/internal/logger"
	"github.com/mrlokans/vokabel/internal/services"
)

const BackfillContextsQueue = "backfill_contexts"

// ContextBackfiller attaches missing context sentences to flashcards.
type ContextBackfiller interface {
	BackfillContexts(ctx context.Context, lessonID *uint) (services.BackfillResult, error)
}

// BackfillContextsTask fills in context sentences for flashcards that have
// none. A nil LessonID covers every lesson.
type BackfillContextsTask struct {
	LessonID *uint `json:"lesson_id,omitempty"`
}

// queueConfig is applied by NewBackfillContextsQueue; tasks of this type carry
// no settings of their own.
var queueConfig = DefaultConfig()

func (t BackfillContextsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        BackfillContextsQueue,
		MaxAttempts: queueConfig.MaxAttempts,
		Backoff:     queueConfig.Backoff,
		Timeout:     queueConfig.Timeout,
		Retention: &backlite.Retention{
			Duration:   queueConfig.Retention,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackfillContextsProcessor creates a processor for context backfill tasks.
// Returned errors are retried by the queue.
func BackfillContextsProcessor(backfiller ContextBackfiller, log *logger.Logger) backlite.QueueProcessor[BackfillContextsTask] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, task BackfillContextsTask) error {
		start := time.Now()
		result, err := backfiller.BackfillContexts(ctx, task.LessonID)
		if err != nil {
			return fmt.Errorf("backfill contexts: %w", err)
		}
		log.Info("Backfill task finished",
			"lesson_id", task.LessonID,
			"scanned", result.Scanned,
			"updated", result.Updated,
			"missing", result.Missing,
			"duration", time.Since(start).Round(time.Millisecond),
		)
		return nil
	}
}

// NewBackfillContextsQueue builds the backfill queue using cfg for retries,
// timeout and retention.
func NewBackfillContextsQueue(backfiller ContextBackfiller, cfg Config, log *logger.Logger) backlite.Queue {
	queueConfig = cfg
	return backlite.NewQueue(BackfillContextsProcessor(backfiller, log))
}
