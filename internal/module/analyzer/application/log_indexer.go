package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/jinford/log-indexer/internal/platform/async"
)

// LogIndexer はプロジェクト単位のログインデックス化を統括します
type LogIndexer struct {
	builder  *RequestBuilder
	launches domain.LaunchReader
	items    domain.TestItemReader
	client   domain.IndexerClient
	status   domain.StatusCache
	executor *async.Executor
	logger   *slog.Logger
}

// LogIndexerOption はLogIndexer構築時のオプション
type LogIndexerOption func(*LogIndexer)

// WithLogIndexerLogger はロガーを差し替える
func WithLogIndexerLogger(logger *slog.Logger) LogIndexerOption {
	return func(s *LogIndexer) {
		s.logger = logger
	}
}

// NewLogIndexer は新しいLogIndexerを作成します
func NewLogIndexer(
	launches domain.LaunchReader,
	items domain.TestItemReader,
	logs domain.LogReader,
	client domain.IndexerClient,
	status domain.StatusCache,
	executor *async.Executor,
	opts ...LogIndexerOption,
) *LogIndexer {
	s := &LogIndexer{
		builder:  NewRequestBuilder(launches, items, logs),
		launches: launches,
		items:    items,
		client:   client,
		status:   status,
		executor: executor,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// IndexLaunches は指定ローンチのログを非同期でインデックス化します
// Futureはアナライザーが報告したインデックス件数を返します
func (s *LogIndexer) IndexLaunches(ctx context.Context, projectID int64, launchIDs []int64, cfg domain.AnalyzerConfig) *async.Future[int64] {
	return async.Submit(ctx, s.executor, func(ctx context.Context) (int64, error) {
		return s.runIndexing(ctx, projectID, func(ctx context.Context) (int64, error) {
			launches, err := s.builder.PrepareLaunches(ctx, launchIDs, cfg)
			if err != nil {
				return 0, err
			}
			return s.submit(ctx, launches)
		})
	})
}

// IndexItems は1つのローンチ内の指定テストアイテムのログを非同期でインデックス化します
// 対象テストアイテムが残らない場合はアナライザーを呼び出さず0を返します
func (s *LogIndexer) IndexItems(ctx context.Context, projectID, launchID int64, itemIDs []int64, cfg domain.AnalyzerConfig) *async.Future[int64] {
	return async.Submit(ctx, s.executor, func(ctx context.Context) (int64, error) {
		return s.runIndexing(ctx, projectID, func(ctx context.Context) (int64, error) {
			launch, err := s.launches.GetByID(ctx, launchID)
			if err != nil {
				return 0, err
			}
			if !domain.LaunchCanBeIndexed(launch) {
				return 0, nil
			}

			items, err := s.items.ListByIDs(ctx, itemIDs)
			if err != nil {
				return 0, fmt.Errorf("failed to list test items: %w", err)
			}

			rqItems, err := s.builder.PrepareItemsForIndexing(ctx, items, cfg.NumberOfLogLines)
			if err != nil {
				return 0, err
			}
			if len(rqItems) == 0 {
				return 0, nil
			}

			return s.submit(ctx, []domain.IndexLaunch{
				createIndexLaunch(projectID, launch.ID, launch.Name, cfg, rqItems),
			})
		})
	})
}

// DeleteIndex はプロジェクトのインデックス全体を同期的に削除します
func (s *LogIndexer) DeleteIndex(ctx context.Context, projectID int64) error {
	if err := s.client.DeleteIndex(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete index of project %d: %w", projectID, err)
	}
	s.logger.InfoContext(ctx, "Index deleted", "projectID", projectID)
	return nil
}

// CleanIndex はインデックスから指定ログのドキュメントを非同期で削除します
// 失敗はログに記録されるのみで呼び出し元へは返りません
func (s *LogIndexer) CleanIndex(ctx context.Context, indexID int64, logIDs []int64) {
	s.executor.Go(ctx, "clean index", func(ctx context.Context) error {
		if err := s.client.CleanIndex(ctx, indexID, logIDs); err != nil {
			return fmt.Errorf("failed to clean index %d: %w", indexID, err)
		}
		s.logger.DebugContext(ctx, "Index cleaned", "indexID", indexID, "logs", len(logIDs))
		return nil
	})
}

// IsIndexing はプロジェクトのインデックス化が実行中かどうかを返します
func (s *LogIndexer) IsIndexing(ctx context.Context, projectID int64) (bool, error) {
	return s.status.IsIndexing(ctx, projectID)
}

// runIndexing は実行中ステータスの設定と解除でfnを囲みます
// 解除はfnの成否に関わらず必ず行われます
func (s *LogIndexer) runIndexing(ctx context.Context, projectID int64, fn func(ctx context.Context) (int64, error)) (count int64, err error) {
	runID := uuid.New()
	logger := s.logger.With("projectID", projectID, "runID", runID)
	startTime := time.Now()

	release := s.acquireStatus(ctx, logger, projectID)
	defer release()

	logger.InfoContext(ctx, "Starting log indexing")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during indexing: %v", r)
		}
		if err != nil {
			logger.ErrorContext(ctx, "Log indexing failed", "error", err)
			count = 0
			err = &domain.IndexingError{ProjectID: projectID, Err: err}
		}
	}()

	count, err = fn(ctx)
	if err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "Log indexing completed",
		"indexed", count,
		"duration", time.Since(startTime),
	)
	return count, nil
}

// acquireStatus はプロジェクトを実行中としてマークし、解除関数を返します
// ステータスは参考情報のため、保存に失敗してもインデックス化は継続します
func (s *LogIndexer) acquireStatus(ctx context.Context, logger *slog.Logger, projectID int64) func() {
	if err := s.status.IndexingStarted(ctx, projectID); err != nil {
		logger.WarnContext(ctx, "Failed to mark indexing started", "error", err)
		return func() {}
	}
	return func() {
		if err := s.status.IndexingFinished(ctx, projectID); err != nil {
			logger.WarnContext(ctx, "Failed to mark indexing finished", "error", err)
		}
	}
}

// submit はリクエストをアナライザーへ送信します
func (s *LogIndexer) submit(ctx context.Context, launches []domain.IndexLaunch) (int64, error) {
	if len(launches) == 0 {
		return 0, nil
	}
	count, err := s.client.Index(ctx, launches)
	if err != nil {
		return 0, fmt.Errorf("failed to send index request: %w", err)
	}
	return count, nil
}
