package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/vokabel/internal/services"
)

type fakeBackfiller struct {
	calls chan *uint
	err   error
}

func (f *fakeBackfiller) BackfillContexts(ctx context.Context, lessonID *uint) (services.BackfillResult, error) {
	f.calls <- lessonID
	return services.BackfillResult{Scanned: 1, Updated: 1}, f.err
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("30 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 5, 1, 4, 0, 0, 0, time.UTC)

	next, err := NextRunTime("30 3 * * *", from)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 30, 0, 0, time.UTC), next)
}

func TestCronDescription(t *testing.T) {
	assert.Equal(t, "Daily at 03:30", CronDescription("30 3 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * 1", CronDescription("5 4 * * 1"))
}

func TestBackfillScheduler_StartStop(t *testing.T) {
	s := NewBackfillScheduler(&fakeBackfiller{calls: make(chan *uint, 1)}, "30 3 * * *", nil)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.GetNextRunTime())
	assert.True(t, s.GetNextRunTime().After(time.Now()))

	// second start is a no-op
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	s.Stop()
}

func TestBackfillScheduler_InvalidSchedule(t *testing.T) {
	s := NewBackfillScheduler(&fakeBackfiller{}, "not a schedule", nil)

	err := s.Start(context.Background())

	assert.ErrorContains(t, err, "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestBackfillScheduler_StopsWhenContextCancelled(t *testing.T) {
	s := NewBackfillScheduler(&fakeBackfiller{}, "30 3 * * *", nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestBackfillScheduler_RunNow(t *testing.T) {
	backfiller := &fakeBackfiller{calls: make(chan *uint, 1), err: errors.New("boom")}
	s := NewBackfillScheduler(backfiller, "30 3 * * *", nil)

	s.RunNow()

	select {
	case lessonID := <-backfiller.calls:
		assert.Nil(t, lessonID, "scheduled runs cover every lesson")
	case <-time.After(2 * time.Second):
		t.Fatal("backfill was not triggered")
	}
	assert.Eventually(t, func() bool { return !s.IsSyncing() }, 2*time.Second, 10*time.Millisecond)
}
