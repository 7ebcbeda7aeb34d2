package testing

import (
	"time"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// TestLaunch はインデックス対象となる完了済みローンチを生成します
func TestLaunch(id, projectID int64, name string) *domain.Launch {
	end := time.Now()
	return &domain.Launch{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Number:    1,
		Mode:      domain.LaunchModeDefault,
		Status:    domain.LaunchStatusFailed,
		StartTime: end.Add(-time.Minute),
		EndTime:   &end,
	}
}

// TestItem は指定した不具合グループを持つテストアイテムを生成します
func TestItem(id, launchID int64, group domain.IssueGroup, locator string) *domain.TestItem {
	return &domain.TestItem{
		ID:       id,
		LaunchID: launchID,
		Name:     "test",
		UniqueID: "auto:test",
		HasStats: true,
		Issue: &domain.Issue{
			IssueTypeLocator: locator,
			Group:            group,
		},
	}
}

// ProductBugItem はインデックス対象となるテストアイテムを生成します
func ProductBugItem(id, launchID int64) *domain.TestItem {
	return TestItem(id, launchID, domain.IssueGroupProductBug, "pb001")
}

// TestLog は指定レベルのログを生成します
func TestLog(id, itemID int64, level domain.LogLevel, message string) *domain.Log {
	return &domain.Log{
		ID:         id,
		TestItemID: itemID,
		Level:      &level,
		Message:    message,
		LogTime:    time.Now(),
	}
}
