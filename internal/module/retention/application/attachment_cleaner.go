package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
)

// AttachmentCleaner は期限切れの添付ファイル行を削除し、バイナリストアから本体とサムネイルを削除します
type AttachmentCleaner struct {
	repo   domain.AttachmentRepository
	store  domain.BinaryStore
	logger *slog.Logger
}

var _ domain.AttachmentCleaner = (*AttachmentCleaner)(nil)

// NewAttachmentCleaner は新しいAttachmentCleanerを作成します
func NewAttachmentCleaner(repo domain.AttachmentRepository, store domain.BinaryStore, logger *slog.Logger) *AttachmentCleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttachmentCleaner{repo: repo, store: store, logger: logger}
}

// RemoveOutdatedLaunchesAttachments はローンチに属する期限切れ添付ファイルを削除します
func (c *AttachmentCleaner) RemoveOutdatedLaunchesAttachments(ctx context.Context, launchIDs []int64, cutoff time.Time, counters *domain.Counters) error {
	if len(launchIDs) == 0 {
		return nil
	}
	attachments, err := c.repo.DeleteOutdatedByLaunchIDs(ctx, launchIDs, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return c.removeBinaries(ctx, attachments, counters)
}

// RemoveOutdatedItemsAttachments はテストアイテムに属する期限切れ添付ファイルを削除します
func (c *AttachmentCleaner) RemoveOutdatedItemsAttachments(ctx context.Context, itemIDs []int64, cutoff time.Time, counters *domain.Counters) error {
	if len(itemIDs) == 0 {
		return nil
	}
	attachments, err := c.repo.DeleteOutdatedByItemIDs(ctx, itemIDs, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return c.removeBinaries(ctx, attachments, counters)
}

// removeBinaries は行削除済みの添付ファイルについて本体を削除します
// 行は既に無いため、呼び出し元のキャンセルや途中の失敗があっても全件の削除を試みます
// 存在しないバイナリは記録だけしてスキップします
func (c *AttachmentCleaner) removeBinaries(ctx context.Context, attachments []*domain.Attachment, counters *domain.Counters) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, a := range attachments {
		removed, err := c.removeBinary(ctx, a.FileID)
		if err != nil {
			errs = append(errs, err)
		} else if removed {
			counters.Attachments.Add(1)
		}
		if a.ThumbnailID == nil || *a.ThumbnailID == "" {
			continue
		}
		removed, err = c.removeBinary(ctx, *a.ThumbnailID)
		if err != nil {
			errs = append(errs, err)
		} else if removed {
			counters.Thumbnails.Add(1)
		}
	}
	if len(errs) > 0 {
		c.logger.Error("Failed to remove some binaries", "failed", len(errs), "attachments", len(attachments))
	}
	return errors.Join(errs...)
}

func (c *AttachmentCleaner) removeBinary(ctx context.Context, id string) (bool, error) {
	err := c.store.Delete(ctx, id)
	if errors.Is(err, domain.ErrBinaryNotFound) {
		c.logger.Warn("Binary already removed", "binaryID", id)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete binary %s: %w", id, err)
	}
	return true, nil
}
