package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	redigo "github.com/gomodule/redigo/redis"

	"github.com/jinford/log-indexer/internal/module/analyzer/adapter/configfile"
	"github.com/jinford/log-indexer/internal/module/analyzer/adapter/indexer"
	analyzerpg "github.com/jinford/log-indexer/internal/module/analyzer/adapter/pg"
	"github.com/jinford/log-indexer/internal/module/analyzer/adapter/redis"
	analyzerapp "github.com/jinford/log-indexer/internal/module/analyzer/application"
	analyzerdomain "github.com/jinford/log-indexer/internal/module/analyzer/domain"
	retentionpg "github.com/jinford/log-indexer/internal/module/retention/adapter/pg"
	"github.com/jinford/log-indexer/internal/module/retention/adapter/storage"
	retentionapp "github.com/jinford/log-indexer/internal/module/retention/application"
	retentiondomain "github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/async"
	"github.com/jinford/log-indexer/internal/platform/config"
	"github.com/jinford/log-indexer/internal/platform/database"
	"github.com/jinford/log-indexer/internal/platform/lock"
)

// Container はアプリケーションの依存関係を保持する。
type Container struct {
	LogIndexer      *analyzerapp.LogIndexer
	AnalyzerConfigs *configfile.Configs
	LogCleaner      *retentionapp.LogCleaner

	retentionJob       *retentionapp.Job
	retentionScheduler *retentionapp.Scheduler
	retentionErr       error

	executor  *async.Executor
	logger    *slog.Logger
	database  *database.DB
	redisPool *redigo.Pool
}

type containerOptions struct {
	logger        *slog.Logger
	indexerClient analyzerdomain.IndexerClient
	statusCache   analyzerdomain.StatusCache
	binaryStore   retentiondomain.BinaryStore
}

// ContainerOption は Container 構築時のオプション
type ContainerOption func(*containerOptions)

// WithContainerLogger はロガーを差し替える
func WithContainerLogger(logger *slog.Logger) ContainerOption {
	return func(opts *containerOptions) {
		opts.logger = logger
	}
}

// WithContainerIndexerClient はアナライザークライアントを差し替える
func WithContainerIndexerClient(client analyzerdomain.IndexerClient) ContainerOption {
	return func(opts *containerOptions) {
		opts.indexerClient = client
	}
}

// WithContainerStatusCache はステータスキャッシュを差し替える
func WithContainerStatusCache(cache analyzerdomain.StatusCache) ContainerOption {
	return func(opts *containerOptions) {
		opts.statusCache = cache
	}
}

// WithContainerBinaryStore は添付ファイルのバイナリストアを差し替える
func WithContainerBinaryStore(store retentiondomain.BinaryStore) ContainerOption {
	return func(opts *containerOptions) {
		opts.binaryStore = store
	}
}

// New は設定からコンテナを生成する。
func New(ctx context.Context, cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: int32(cfg.Database.MaxConns),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c, err := NewWithDB(cfg, db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// NewWithDB は既存の DB を受け取りコンテナを生成する。
func NewWithDB(cfg *config.Config, db *database.DB, opts ...ContainerOption) (*Container, error) {
	options := containerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger

	c := &Container{
		logger:   logger,
		database: db,
		executor: async.NewExecutor(async.WithLogger(logger)),
	}

	analyzerConfigs, err := configfile.LoadFromPath(cfg.AnalyzerConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer config: %w", err)
	}
	c.AnalyzerConfigs = analyzerConfigs

	// Indexer client (HTTP)
	client := options.indexerClient
	if client == nil {
		client, err = indexer.New(cfg.Indexer.BaseURL, cfg.Indexer.Token,
			indexer.WithTimeout(cfg.Indexer.Timeout),
			indexer.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create indexer client: %w", err)
		}
	}

	// Status cache (Redis or in-process)
	status := options.statusCache
	if status == nil {
		if cfg.Redis.Enabled() {
			c.redisPool = redis.NewPool(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			status = redis.NewStatusCache(c.redisPool, cfg.Redis.StatusTTL)
		} else {
			status = analyzerapp.NewStatusCache()
		}
	}

	// Repositories (PostgreSQL)
	c.LogIndexer = analyzerapp.NewLogIndexer(
		analyzerpg.NewLaunchRepository(db.Pool),
		analyzerpg.NewTestItemRepository(db.Pool),
		analyzerpg.NewLogRepository(db.Pool),
		client,
		status,
		c.executor,
		analyzerapp.WithLogIndexerLogger(logger),
	)

	// Retention
	store := options.binaryStore
	if store == nil {
		fsStore, err := storage.NewFileSystemStore(cfg.Retention.StorageRoot)
		if err != nil {
			// インデックス系のコマンドはバイナリストア無しで動作できる
			logger.Warn("Binary storage unavailable, retention disabled", "root", cfg.Retention.StorageRoot, "error", err)
			c.retentionErr = err
		} else {
			store = fsStore
		}
	}
	if store != nil {
		attachments := retentionapp.NewAttachmentCleaner(retentionpg.NewAttachmentRepository(db.Pool), store, logger)
		c.LogCleaner = retentionapp.NewLogCleaner(
			retentionpg.NewLogRepository(db.Pool),
			attachments,
			retentionapp.WithLogCleanerLogger(logger),
		)
		c.retentionJob = retentionapp.NewJob(
			retentionpg.NewLaunchFinder(db.Pool),
			c.LogCleaner,
			lock.NewLocker(db.Pool),
			retentionapp.WithWorkers(cfg.Retention.Workers),
			retentionapp.WithJobLogger(logger),
		)
		c.retentionScheduler = retentionapp.NewScheduler(
			retentionapp.SchedulerConfig{
				CronSchedule: cfg.Retention.Schedule,
				KeepLogs:     cfg.Retention.KeepLogs,
			},
			c.retentionJob,
			retentionpg.NewProjectRepository(db.Pool),
			logger,
		)
	}

	return c, nil
}

// RetentionJob は保持期間クリーンアップジョブを返す。
// バイナリストアが利用できない場合はエラーを返す。
func (c *Container) RetentionJob() (*retentionapp.Job, error) {
	if c.retentionJob == nil {
		return nil, fmt.Errorf("retention is not available: %w", c.retentionErr)
	}
	return c.retentionJob, nil
}

// RetentionScheduler は保持期間クリーンアップの定期実行スケジューラーを返す。
func (c *Container) RetentionScheduler() (*retentionapp.Scheduler, error) {
	if c.retentionScheduler == nil {
		return nil, fmt.Errorf("retention is not available: %w", c.retentionErr)
	}
	return c.retentionScheduler, nil
}

// Close は実行中の非同期タスクを待ってから内部リソースを解放する。
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.executor != nil {
		errs = append(errs, c.executor.Shutdown(ctx))
	}
	if c.redisPool != nil {
		errs = append(errs, c.redisPool.Close())
	}
	if c.database != nil {
		c.database.Close()
	}
	return errors.Join(errs...)
}

// Logger はロガーを返す。
func (c *Container) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
