package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

const deleteAttachmentsByLaunchIDs = `
DELETE FROM attachment
WHERE launch_id = ANY($1)
  AND creation_date < $2
RETURNING id, file_id, thumbnail_id, content_type, project_id, creation_date
`

const deleteAttachmentsByItemIDs = `
DELETE FROM attachment
WHERE item_id = ANY($1)
  AND creation_date < $2
RETURNING id, file_id, thumbnail_id, content_type, project_id, creation_date
`

// AttachmentRepository は添付ファイル行の永続化アダプターです
type AttachmentRepository struct {
	db database.DBTX
}

// NewAttachmentRepository は新しい添付ファイルリポジトリを作成します
func NewAttachmentRepository(db database.DBTX) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

var _ domain.AttachmentRepository = (*AttachmentRepository)(nil)

// DeleteOutdatedByLaunchIDs はローンチに属する期限切れ添付ファイル行を削除します
func (r *AttachmentRepository) DeleteOutdatedByLaunchIDs(ctx context.Context, launchIDs []int64, cutoff time.Time) ([]*domain.Attachment, error) {
	return r.deleteOutdated(ctx, deleteAttachmentsByLaunchIDs, launchIDs, cutoff)
}

// DeleteOutdatedByItemIDs はテストアイテムに属する期限切れ添付ファイル行を削除します
func (r *AttachmentRepository) DeleteOutdatedByItemIDs(ctx context.Context, itemIDs []int64, cutoff time.Time) ([]*domain.Attachment, error) {
	return r.deleteOutdated(ctx, deleteAttachmentsByItemIDs, itemIDs, cutoff)
}

func (r *AttachmentRepository) deleteOutdated(ctx context.Context, query string, ids []int64, cutoff time.Time) ([]*domain.Attachment, error) {
	if len(ids) == 0 {
		return []*domain.Attachment{}, nil
	}

	rows, err := r.db.Query(ctx, query, ids, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to delete attachments: %w", err)
	}

	attachments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Attachment, error) {
		var (
			a         domain.Attachment
			thumbnail pgtype.Text
		)
		if err := row.Scan(&a.ID, &a.FileID, &thumbnail, &a.ContentType, &a.ProjectID, &a.CreationDate); err != nil {
			return nil, err
		}
		if thumbnail.Valid {
			a.ThumbnailID = &thumbnail.String
		}
		return &a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan deleted attachments: %w", err)
	}
	return attachments, nil
}
