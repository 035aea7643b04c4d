package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/vokabel/internal/logger"
	"github.com/mrlokans/vokabel/internal/tasks"
)

const runTimeout = 10 * time.Minute

// BackfillScheduler periodically attaches context sentences to flashcards
// that have none.
type BackfillScheduler struct {
	backfiller tasks.ContextBackfiller
	schedule   string
	log        *logger.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	runCtx     context.Context
	cancelFunc context.CancelFunc
}

// NewBackfillScheduler creates a new scheduler instance
func NewBackfillScheduler(backfiller tasks.ContextBackfiller, schedule string, log *logger.Logger) *BackfillScheduler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("scheduler")
	return &BackfillScheduler{
		backfiller: backfiller,
		schedule:   schedule,
		log:        log,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cron.PrintfLogger(log)),
		),
		runCtx: context.Background(),
	}
}

// Start registers the backfill job and starts the cron loop. Cancelling ctx
// stops the scheduler.
func (s *BackfillScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runBackfill)
	if err != nil {
		return fmt.Errorf("failed to schedule backfill job: %w", err)
	}
	s.entryID = entryID

	s.runCtx, s.cancelFunc = context.WithCancel(ctx)
	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	s.log.Info("Backfill scheduler started",
		"schedule", s.schedule,
		"description", CronDescription(s.schedule),
		"next_run", next,
	)

	runCtx := s.runCtx
	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *BackfillScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// Stop accepting new jobs; a running backfill sees the cancelled context
	// between cards.
	cancel()
	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)

	s.log.Info("Backfill scheduler stopped")
}

// RunNow triggers an immediate backfill in the background.
func (s *BackfillScheduler) RunNow() {
	go s.runBackfill()
}

// IsRunning returns whether the scheduler is active
func (s *BackfillScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a backfill is currently in progress
func (s *BackfillScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next backfill will occur
func (s *BackfillScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *BackfillScheduler) runBackfill() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		s.log.Info("Backfill skipped, already running")
		return
	}
	s.isSyncing = true
	parent := s.runCtx
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(parent, runTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.backfiller.BackfillContexts(ctx, nil)
	if err != nil {
		s.log.Error("Scheduled backfill failed", "error", err)
		return
	}
	s.log.Info("Scheduled backfill finished",
		"scanned", result.Scanned,
		"updated", result.Updated,
		"missing", result.Missing,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}
