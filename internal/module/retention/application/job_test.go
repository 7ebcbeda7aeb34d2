package application_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/application"
	"github.com/jinford/log-indexer/internal/module/retention/domain"
	testutil "github.com/jinford/log-indexer/internal/module/retention/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type jobFixture struct {
	finder      *testutil.MockLaunchFinder
	logs        *testutil.MockLogDeleter
	attachments *testutil.MockAttachmentCleaner
	locker      *testutil.MockLocker
	job         *application.Job
}

func newJobFixture(launchIDs []int64) *jobFixture {
	f := &jobFixture{
		finder: &testutil.MockLaunchFinder{
			ListIDsStartedBeforeFunc: func(context.Context, int64, time.Time) ([]int64, error) {
				return launchIDs, nil
			},
		},
		logs: &testutil.MockLogDeleter{
			DeleteByPeriodAndLaunchIDsFunc: func(context.Context, time.Time, []int64) (int64, error) {
				return 10, nil
			},
		},
		attachments: &testutil.MockAttachmentCleaner{
			RemoveOutdatedLaunchesAttachmentsFunc: func(ctx context.Context, launchIDs []int64, cutoff time.Time, counters *domain.Counters) error {
				counters.Attachments.Add(2)
				counters.Thumbnails.Add(1)
				return nil
			},
		},
		locker: &testutil.MockLocker{},
	}
	cleaner := application.NewLogCleaner(f.logs, f.attachments, application.WithLogCleanerLogger(testLogger()))
	f.job = application.NewJob(f.finder, cleaner, f.locker,
		application.WithWorkers(2),
		application.WithClock(func() time.Time { return fixedNow }),
		application.WithJobLogger(testLogger()),
	)
	return f
}

func TestJob_Run(t *testing.T) {
	f := newJobFixture([]int64{1, 2, 3})

	result, err := f.job.Run(context.Background(), 5, 90*24*time.Hour)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, int64(5), result.ProjectID)
	assert.Equal(t, fixedNow.Add(-90*24*time.Hour), result.Cutoff)
	assert.Equal(t, 3, result.Launches)
	assert.Equal(t, int64(30), result.Logs)
	assert.Equal(t, int64(6), result.Attachments)
	assert.Equal(t, int64(3), result.Thumbnails)

	calls := f.attachments.LaunchCalls()
	require.Len(t, calls, 3)
	var ids []int64
	for _, c := range calls {
		require.Len(t, c.IDs, 1)
		ids = append(ids, c.IDs[0])
		// 全ローンチで同じカウンターを共有する
		assert.Same(t, calls[0].Counters, c.Counters)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.Equal(t, []string{"retention:project:5"}, f.locker.Released())
}

func TestJob_Run_RespectsWorkerLimit(t *testing.T) {
	f := newJobFixture([]int64{1, 2, 3, 4, 5, 6})

	var mu sync.Mutex
	running, peak := 0, 0
	f.logs.DeleteByPeriodAndLaunchIDsFunc = func(context.Context, time.Time, []int64) (int64, error) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return 1, nil
	}

	result, err := f.job.Run(context.Background(), 5, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.Logs)
	assert.LessOrEqual(t, peak, 2)
}

func TestJob_Run_SkipsWhenLocked(t *testing.T) {
	f := newJobFixture([]int64{1})
	f.locker.TryLockFunc = func(context.Context, string) (domain.Unlock, bool, error) {
		return nil, false, nil
	}

	result, err := f.job.Run(context.Background(), 5, time.Hour)
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, f.attachments.LaunchCalls())
}

func TestJob_Run_LockError(t *testing.T) {
	f := newJobFixture([]int64{1})
	f.locker.TryLockFunc = func(context.Context, string) (domain.Unlock, bool, error) {
		return nil, false, errors.New("pool closed")
	}

	_, err := f.job.Run(context.Background(), 5, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool closed")
}

func TestJob_Run_PropagatesCleanupError(t *testing.T) {
	f := newJobFixture([]int64{1, 2})
	f.logs.DeleteByPeriodAndLaunchIDsFunc = func(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error) {
		if launchIDs[0] == 2 {
			return 0, errors.New("deadlock detected")
		}
		return 4, nil
	}

	result, err := f.job.Run(context.Background(), 5, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock detected")
	require.NotNil(t, result)
	assert.Equal(t, []string{"retention:project:5"}, f.locker.Released())
}

func TestJob_Run_RejectsNonPositivePeriod(t *testing.T) {
	f := newJobFixture(nil)

	_, err := f.job.Run(context.Background(), 5, 0)
	require.Error(t, err)
}

func TestJob_Run_NoLaunches(t *testing.T) {
	f := newJobFixture(nil)

	result, err := f.job.Run(context.Background(), 5, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, result.Launches)
	assert.Zero(t, result.Logs)
}

func TestJob_Run_FailedLaunchDoesNotStrandSiblingBinaries(t *testing.T) {
	store := testutil.NewInMemoryBinaryStore("b1", "b2")
	repo := &testutil.MockAttachmentRepository{
		DeleteOutdatedByLaunchIDsFunc: func(ctx context.Context, launchIDs []int64, cutoff time.Time) ([]*domain.Attachment, error) {
			// ローンチ1の失敗でグループのcontextがキャンセルされてから行が返る
			<-ctx.Done()
			return []*domain.Attachment{{ID: 1, FileID: "b1"}, {ID: 2, FileID: "b2"}}, nil
		},
	}
	logs := &testutil.MockLogDeleter{
		DeleteByPeriodAndLaunchIDsFunc: func(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error) {
			if launchIDs[0] == 1 {
				return 0, errors.New("db error on launch 1")
			}
			return 3, nil
		},
	}
	finder := &testutil.MockLaunchFinder{
		ListIDsStartedBeforeFunc: func(context.Context, int64, time.Time) ([]int64, error) {
			return []int64{1, 2}, nil
		},
	}
	cleaner := application.NewLogCleaner(logs,
		application.NewAttachmentCleaner(repo, store, testLogger()),
		application.WithLogCleanerLogger(testLogger()),
	)
	job := application.NewJob(finder, cleaner, &testutil.MockLocker{},
		application.WithWorkers(2),
		application.WithClock(func() time.Time { return fixedNow }),
		application.WithJobLogger(testLogger()),
	)

	result, err := job.Run(context.Background(), 5, time.Hour)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error on launch 1")
	assert.False(t, store.Has("b1"))
	assert.False(t, store.Has("b2"))
	assert.Equal(t, int64(2), result.Attachments)
}
