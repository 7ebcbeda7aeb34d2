package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

const listLogsByItemIDsAndLevelGTE = `
SELECT l.id, l.item_id, l.launch_id, l.log_level, l.log_message, l.log_time,
       a.id, a.file_id, a.thumbnail_id, a.content_type
FROM log l
LEFT JOIN attachment a ON a.id = l.attachment_id
WHERE l.item_id = ANY($1)
  AND l.log_level >= $2
ORDER BY l.item_id, l.log_time, l.id
`

// LogRepository はログの永続化アダプターです
type LogRepository struct {
	db database.DBTX
}

// NewLogRepository は新しいログリポジトリを作成します
func NewLogRepository(db database.DBTX) *LogRepository {
	return &LogRepository{db: db}
}

var _ domain.LogReader = (*LogRepository)(nil)

// ListByTestItemIDsAndLevelGTE はテストアイテムに属し、レベルが指定値以上のログを取得します
// レベルがNULLのログは含まれません
func (r *LogRepository) ListByTestItemIDsAndLevelGTE(ctx context.Context, itemIDs []int64, level domain.LogLevel) ([]*domain.Log, error) {
	if len(itemIDs) == 0 {
		return []*domain.Log{}, nil
	}

	rows, err := r.db.Query(ctx, listLogsByItemIDsAndLevelGTE, itemIDs, int32(level))
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	logs, err := pgx.CollectRows(rows, scanLog)
	if err != nil {
		return nil, fmt.Errorf("failed to scan logs: %w", err)
	}
	return logs, nil
}

func scanLog(row pgx.CollectableRow) (*domain.Log, error) {
	var (
		log          domain.Log
		itemID       pgtype.Int8
		launchID     pgtype.Int8
		level        pgtype.Int4
		attachmentID pgtype.Int8
		fileID       pgtype.Text
		thumbnailID  pgtype.Text
		contentType  pgtype.Text
	)
	if err := row.Scan(
		&log.ID,
		&itemID,
		&launchID,
		&level,
		&log.Message,
		&log.LogTime,
		&attachmentID,
		&fileID,
		&thumbnailID,
		&contentType,
	); err != nil {
		return nil, err
	}

	log.TestItemID = itemID.Int64
	log.LaunchID = PgtypeToInt64Ptr(launchID)
	log.Level = PgtypeToLogLevel(level)
	if attachmentID.Valid {
		log.Attachment = &domain.Attachment{
			ID:          attachmentID.Int64,
			FileID:      fileID.String,
			ThumbnailID: PgtextToStringPtr(thumbnailID),
			ContentType: contentType.String,
		}
	}
	return &log, nil
}
