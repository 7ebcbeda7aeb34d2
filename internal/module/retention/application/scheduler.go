package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule は保持期間クリーンアップの既定スケジュールです（毎日3:00）
const DefaultSchedule = "0 3 * * *"

// SchedulerConfig はスケジューラーの設定です
type SchedulerConfig struct {
	CronSchedule string        // Cron形式のスケジュール
	KeepLogs     time.Duration // ログ保持期間
}

// Scheduler は全プロジェクトの保持期間クリーンアップを定期実行します
type Scheduler struct {
	config   SchedulerConfig
	job      *Job
	projects domain.ProjectLister
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewScheduler は新しいSchedulerを作成します
func NewScheduler(config SchedulerConfig, job *Job, projects domain.ProjectLister, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if config.CronSchedule == "" {
		config.CronSchedule = DefaultSchedule
	}
	return &Scheduler{
		config:   config,
		job:      job,
		projects: projects,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start はスケジューラーを起動します
// ctxはスケジュール実行される各クリーンアップに引き継がれます
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.config.CronSchedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Scheduled retention failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register retention schedule: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Retention scheduler started", "schedule", s.config.CronSchedule, "keepLogs", s.config.KeepLogs)
	return nil
}

// Stop はスケジューラーを停止し、実行中のクリーンアップの完了を待ちます
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Retention scheduler stopped")
}

// RunOnce は全プロジェクトのクリーンアップを1回実行します（手動実行可能）
// 1プロジェクトの失敗で他のプロジェクトは中断しません
func (s *Scheduler) RunOnce(ctx context.Context) error {
	projectIDs, err := s.projects.ListProjectIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	var failed int
	for _, projectID := range projectIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.job.Run(ctx, projectID, s.config.KeepLogs); err != nil {
			failed++
			s.logger.Error("Project retention failed", "projectID", projectID, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("retention failed for %d of %d projects", failed, len(projectIDs))
	}
	return nil
}
