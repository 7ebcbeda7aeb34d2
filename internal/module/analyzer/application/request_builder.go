package application

import (
	"context"
	"fmt"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// RequestBuilder はインデックス対象のローンチ・テストアイテム・ログを選別し、
// アナライザーへ送るリクエスト構造を組み立てます
type RequestBuilder struct {
	launchRepo domain.LaunchReader
	itemRepo   domain.TestItemReader
	logRepo    domain.LogReader
}

// NewRequestBuilder は新しいRequestBuilderを作成します
func NewRequestBuilder(launchRepo domain.LaunchReader, itemRepo domain.TestItemReader, logRepo domain.LogReader) *RequestBuilder {
	return &RequestBuilder{
		launchRepo: launchRepo,
		itemRepo:   itemRepo,
		logRepo:    logRepo,
	}
}

// PrepareLaunches はローンチIDごとにインデックスリクエストを組み立てます
// 対象外のローンチや、対象テストアイテムが残らないローンチは結果に含めません
func (b *RequestBuilder) PrepareLaunches(ctx context.Context, launchIDs []int64, cfg domain.AnalyzerConfig) ([]domain.IndexLaunch, error) {
	prepared := make([]domain.IndexLaunch, 0, len(launchIDs))

	for _, launchID := range launchIDs {
		launch, err := b.launchRepo.GetByID(ctx, launchID)
		if err != nil {
			return nil, err
		}
		if !domain.LaunchCanBeIndexed(launch) {
			continue
		}

		items, err := b.itemRepo.ListNotInIssueByLaunch(ctx, launch.ID, domain.ToInvestigateLocator)
		if err != nil {
			return nil, fmt.Errorf("failed to list test items of launch %d: %w", launch.ID, err)
		}

		rqItems, err := b.PrepareItemsForIndexing(ctx, items, cfg.NumberOfLogLines)
		if err != nil {
			return nil, err
		}
		if len(rqItems) == 0 {
			continue
		}

		prepared = append(prepared, createIndexLaunch(launch.ProjectID, launch.ID, launch.Name, cfg, rqItems))
	}

	return prepared, nil
}

// PrepareItemsForIndexing は対象テストアイテムにERROR以上のログを紐付けます
// ログが1件も無いテストアイテムは結果に含めません。入力の順序は保持されます
func (b *RequestBuilder) PrepareItemsForIndexing(ctx context.Context, items []*domain.TestItem, numberOfLogLines int) ([]domain.IndexTestItem, error) {
	prepared := make([]domain.IndexTestItem, 0, len(items))

	for _, item := range items {
		if !domain.ItemCanBeIndexed(item) {
			continue
		}

		logs, err := b.logRepo.ListByTestItemIDsAndLevelGTE(ctx, []int64{item.ID}, domain.LogLevelError)
		if err != nil {
			return nil, fmt.Errorf("failed to list logs of test item %d: %w", item.ID, err)
		}

		rqItem := domain.NewIndexTestItem(item, logs, numberOfLogLines)
		if len(rqItem.Logs) == 0 {
			continue
		}
		prepared = append(prepared, rqItem)
	}

	return prepared, nil
}

// createIndexLaunch は検証済みの要素からIndexLaunchを組み立てます
func createIndexLaunch(projectID, launchID int64, name string, cfg domain.AnalyzerConfig, items []domain.IndexTestItem) domain.IndexLaunch {
	return domain.IndexLaunch{
		LaunchID:       launchID,
		LaunchName:     name,
		ProjectID:      projectID,
		AnalyzerConfig: cfg,
		TestItems:      items,
	}
}
