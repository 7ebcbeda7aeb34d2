package domain

import (
	"context"
)

// === Launch Repository Port ===

// LaunchReader はローンチの読み取り操作を定義します
type LaunchReader interface {
	// GetByID はIDでローンチを取得します
	// 存在しない場合はNotFoundErrorを返します
	GetByID(ctx context.Context, id int64) (*Launch, error)
}

// === TestItem Repository Port ===

// TestItemReader はテストアイテムの読み取り操作を定義します
type TestItemReader interface {
	// ListByIDs は指定IDのテストアイテムをidsの順序で取得します
	// 存在しないIDは結果に含まれません
	ListByIDs(ctx context.Context, ids []int64) ([]*TestItem, error)
	// ListNotInIssueByLaunch はローンチ内で指定ロケーターの不具合分類を持たないテストアイテムを取得します
	ListNotInIssueByLaunch(ctx context.Context, launchID int64, issueLocator string) ([]*TestItem, error)
}

// === Log Repository Port ===

// LogReader はログの読み取り操作を定義します
type LogReader interface {
	// ListByTestItemIDsAndLevelGTE はテストアイテムに属し、レベルが指定値以上のログを取得します
	ListByTestItemIDsAndLevelGTE(ctx context.Context, itemIDs []int64, level LogLevel) ([]*Log, error)
}
