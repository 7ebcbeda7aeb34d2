package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

const listLaunchIDsStartedBefore = `
SELECT id
FROM launch
WHERE project_id = $1
  AND start_time < $2
  AND status <> 'IN_PROGRESS'
ORDER BY id
`

// LaunchFinder はクリーンアップ対象ローンチの検索アダプターです
type LaunchFinder struct {
	db database.DBTX
}

// NewLaunchFinder は新しいLaunchFinderを作成します
func NewLaunchFinder(db database.DBTX) *LaunchFinder {
	return &LaunchFinder{db: db}
}

var _ domain.LaunchFinder = (*LaunchFinder)(nil)

// ListIDsStartedBefore はプロジェクト内でcutoffより前に開始した完了済みローンチのIDを返します
func (f *LaunchFinder) ListIDsStartedBefore(ctx context.Context, projectID int64, cutoff time.Time) ([]int64, error) {
	rows, err := f.db.Query(ctx, listLaunchIDsStartedBefore, projectID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan launch ids: %w", err)
	}
	return ids, nil
}
