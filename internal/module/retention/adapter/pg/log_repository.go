package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

// ローンチ直下のログとテストアイテム配下のログの双方が対象
const deleteLogsByPeriodAndLaunchIDs = `
DELETE FROM log
WHERE log_time < $1
  AND (launch_id = ANY($2)
       OR item_id IN (SELECT item_id FROM test_item WHERE launch_id = ANY($2)))
`

const deleteLogsByPeriodAndTestItemIDs = `
DELETE FROM log
WHERE log_time < $1
  AND item_id = ANY($2)
`

// LogRepository はログ削除の永続化アダプターです
type LogRepository struct {
	db database.DBTX
}

// NewLogRepository は新しいログリポジトリを作成します
func NewLogRepository(db database.DBTX) *LogRepository {
	return &LogRepository{db: db}
}

var _ domain.LogDeleter = (*LogRepository)(nil)

// DeleteByPeriodAndLaunchIDs はローンチに属し、cutoffより前に記録されたログを削除します
func (r *LogRepository) DeleteByPeriodAndLaunchIDs(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error) {
	if len(launchIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, deleteLogsByPeriodAndLaunchIDs, cutoff, launchIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete logs by launch: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByPeriodAndTestItemIDs はテストアイテムに属し、cutoffより前に記録されたログを削除します
func (r *LogRepository) DeleteByPeriodAndTestItemIDs(ctx context.Context, cutoff time.Time, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, deleteLogsByPeriodAndTestItemIDs, cutoff, itemIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete logs by test item: %w", err)
	}
	return tag.RowsAffected(), nil
}
