package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers はローンチを並列にクリーンアップする既定のワーカー数です
const DefaultWorkers = 4

// Job はプロジェクト単位の保持期間クリーンアップを実行します
type Job struct {
	launches domain.LaunchFinder
	cleaner  *LogCleaner
	locker   domain.Locker
	workers  int
	now      func() time.Time
	logger   *slog.Logger
}

// JobOption はJobのオプションです
type JobOption func(*Job)

// WithWorkers は並列ワーカー数を設定します
func WithWorkers(n int) JobOption {
	return func(j *Job) {
		if n > 0 {
			j.workers = n
		}
	}
}

// WithClock は現在時刻の取得関数を設定します
func WithClock(now func() time.Time) JobOption {
	return func(j *Job) {
		if now != nil {
			j.now = now
		}
	}
}

// WithJobLogger はロガーを設定します
func WithJobLogger(logger *slog.Logger) JobOption {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// NewJob は新しいJobを作成します
func NewJob(launches domain.LaunchFinder, cleaner *LogCleaner, locker domain.Locker, opts ...JobOption) *Job {
	j := &Job{
		launches: launches,
		cleaner:  cleaner,
		locker:   locker,
		workers:  DefaultWorkers,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run はプロジェクトのkeepLogsより古いログと添付ファイルを削除します
// 他のレプリカが同じプロジェクトを処理中の場合はSkippedを立てて即座に返ります
func (j *Job) Run(ctx context.Context, projectID int64, keepLogs time.Duration) (*domain.Result, error) {
	if keepLogs <= 0 {
		return nil, fmt.Errorf("keep logs period must be positive: %s", keepLogs)
	}

	cutoff := j.now().UTC().Add(-keepLogs)
	result := &domain.Result{ProjectID: projectID, Cutoff: cutoff}

	unlock, acquired, err := j.locker.TryLock(ctx, lockKey(projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire retention lock: %w", err)
	}
	if !acquired {
		j.logger.Info("Retention already running on another replica, skipping", "projectID", projectID)
		result.Skipped = true
		return result, nil
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			j.logger.Warn("Failed to release retention lock", "projectID", projectID, "error", err)
		}
	}()

	launchIDs, err := j.launches.ListIDsStartedBefore(ctx, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches of project %d: %w", projectID, err)
	}
	result.Launches = len(launchIDs)

	var (
		counters domain.Counters
		logs     atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)
	for _, launchID := range launchIDs {
		g.Go(func() error {
			n, err := j.cleaner.RemoveOutdatedLogs(gctx, launchID, cutoff, &counters)
			logs.Add(n)
			return err
		})
	}
	err = g.Wait()

	result.Logs = logs.Load()
	result.Attachments, result.Thumbnails = counters.Snapshot()

	if err != nil {
		j.logger.Error("Retention failed",
			"projectID", projectID,
			"logs", result.Logs,
			"error", err,
		)
		return result, err
	}

	j.logger.Info("Retention completed",
		"projectID", projectID,
		"cutoff", cutoff,
		"launches", result.Launches,
		"logs", result.Logs,
		"attachments", result.Attachments,
		"thumbnails", result.Thumbnails,
	)
	return result, nil
}

func lockKey(projectID int64) string {
	return fmt.Sprintf("retention:project:%d", projectID)
}
