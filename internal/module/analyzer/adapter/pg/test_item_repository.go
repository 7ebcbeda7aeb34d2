package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/jinford/log-indexer/internal/platform/database"
)

const selectTestItem = `
SELECT ti.item_id, ti.launch_id, ti.name, ti.unique_id, ti.has_stats,
       it.locator, it.issue_group, i.auto_analyzed, i.ignore_analyzer
FROM test_item ti
LEFT JOIN issue i ON i.issue_id = ti.item_id
LEFT JOIN issue_type it ON it.id = i.issue_type
`

const listTestItemsByIDs = selectTestItem + `
WHERE ti.item_id = ANY($1)
ORDER BY array_position($1::bigint[], ti.item_id)
`

const listTestItemsNotInIssueByLaunch = selectTestItem + `
WHERE ti.launch_id = $1
  AND i.issue_id IS NOT NULL
  AND it.locator <> $2
ORDER BY ti.item_id
`

// TestItemRepository はテストアイテムの永続化アダプターです
type TestItemRepository struct {
	db database.DBTX
}

// NewTestItemRepository は新しいテストアイテムリポジトリを作成します
func NewTestItemRepository(db database.DBTX) *TestItemRepository {
	return &TestItemRepository{db: db}
}

var _ domain.TestItemReader = (*TestItemRepository)(nil)

// ListByIDs は指定IDのテストアイテムをidsの順序で取得します
func (r *TestItemRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.TestItem, error) {
	if len(ids) == 0 {
		return []*domain.TestItem{}, nil
	}

	rows, err := r.db.Query(ctx, listTestItemsByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list test items: %w", err)
	}
	return collectTestItems(rows)
}

// ListNotInIssueByLaunch はローンチ内で指定ロケーター以外の不具合分類を持つテストアイテムを取得します
func (r *TestItemRepository) ListNotInIssueByLaunch(ctx context.Context, launchID int64, issueLocator string) ([]*domain.TestItem, error) {
	rows, err := r.db.Query(ctx, listTestItemsNotInIssueByLaunch, launchID, issueLocator)
	if err != nil {
		return nil, fmt.Errorf("failed to list test items by launch: %w", err)
	}
	return collectTestItems(rows)
}

func collectTestItems(rows pgx.Rows) ([]*domain.TestItem, error) {
	items, err := pgx.CollectRows(rows, scanTestItem)
	if err != nil {
		return nil, fmt.Errorf("failed to scan test items: %w", err)
	}
	return items, nil
}

func scanTestItem(row pgx.CollectableRow) (*domain.TestItem, error) {
	var (
		item           domain.TestItem
		uniqueID       pgtype.Text
		locator        pgtype.Text
		group          pgtype.Text
		autoAnalyzed   pgtype.Bool
		ignoreAnalyzer pgtype.Bool
	)
	if err := row.Scan(
		&item.ID,
		&item.LaunchID,
		&item.Name,
		&uniqueID,
		&item.HasStats,
		&locator,
		&group,
		&autoAnalyzed,
		&ignoreAnalyzer,
	); err != nil {
		return nil, err
	}

	item.UniqueID = PgtextToString(uniqueID)
	// issueテーブルに行が無いテストアイテムは分類なし
	if locator.Valid {
		item.Issue = &domain.Issue{
			IssueTypeLocator: locator.String,
			Group:            domain.IssueGroup(group.String),
			AutoAnalyzed:     autoAnalyzed.Bool,
			IgnoreAnalyzer:   ignoreAnalyzer.Bool,
		}
	}
	return &item, nil
}
