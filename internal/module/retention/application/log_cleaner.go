package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
)

// LogCleaner は保持期間を過ぎたログと添付ファイルを削除します
type LogCleaner struct {
	logs        domain.LogDeleter
	attachments domain.AttachmentCleaner
	logger      *slog.Logger
}

// LogCleanerOption はLogCleanerのオプションです
type LogCleanerOption func(*LogCleaner)

// WithLogCleanerLogger はロガーを設定します
func WithLogCleanerLogger(logger *slog.Logger) LogCleanerOption {
	return func(c *LogCleaner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewLogCleaner は新しいLogCleanerを作成します
func NewLogCleaner(logs domain.LogDeleter, attachments domain.AttachmentCleaner, opts ...LogCleanerOption) *LogCleaner {
	c := &LogCleaner{
		logs:        logs,
		attachments: attachments,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RemoveOutdatedLogs はローンチのcutoffより前のログを削除し、
// 続けて同じローンチの期限切れ添付ファイルを削除します
// 削除したログ件数を返します。添付ファイルの削除数はcountersへ加算されます
func (c *LogCleaner) RemoveOutdatedLogs(ctx context.Context, launchID int64, cutoff time.Time, counters *domain.Counters) (int64, error) {
	launchIDs := []int64{launchID}

	deleted, err := c.logs.DeleteByPeriodAndLaunchIDs(ctx, cutoff, launchIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete outdated logs of launch %d: %w", launchID, err)
	}

	if err := c.attachments.RemoveOutdatedLaunchesAttachments(ctx, launchIDs, cutoff, counters); err != nil {
		return deleted, fmt.Errorf("failed to remove outdated attachments of launch %d: %w", launchID, err)
	}

	c.logger.Debug("Outdated logs removed",
		"launchID", launchID,
		"cutoff", cutoff,
		"logs", deleted,
	)
	return deleted, nil
}

// RemoveOutdatedItemLogs はテストアイテム単位でRemoveOutdatedLogsと同じ削除を行います
func (c *LogCleaner) RemoveOutdatedItemLogs(ctx context.Context, itemIDs []int64, cutoff time.Time, counters *domain.Counters) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	deleted, err := c.logs.DeleteByPeriodAndTestItemIDs(ctx, cutoff, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete outdated logs of test items: %w", err)
	}

	if err := c.attachments.RemoveOutdatedItemsAttachments(ctx, itemIDs, cutoff, counters); err != nil {
		return deleted, fmt.Errorf("failed to remove outdated attachments of test items: %w", err)
	}

	c.logger.Debug("Outdated test item logs removed",
		"items", len(itemIDs),
		"cutoff", cutoff,
		"logs", deleted,
	)
	return deleted, nil
}
