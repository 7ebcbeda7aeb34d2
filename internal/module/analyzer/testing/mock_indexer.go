package testing

import (
	"context"
	"sync"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// MockIndexerClient はテスト用のモックIndexerClientです
// 呼び出しを記録し、並行呼び出しにも安全です
type MockIndexerClient struct {
	IndexFunc       func(ctx context.Context, launches []domain.IndexLaunch) (int64, error)
	DeleteIndexFunc func(ctx context.Context, projectID int64) error
	CleanIndexFunc  func(ctx context.Context, indexID int64, logIDs []int64) error

	mu          sync.Mutex
	indexCalls  [][]domain.IndexLaunch
	deleteCalls []int64
	cleanCalls  []CleanIndexCall
}

// CleanIndexCall はCleanIndexの呼び出し記録です
type CleanIndexCall struct {
	IndexID int64
	LogIDs  []int64
}

func (m *MockIndexerClient) Index(ctx context.Context, launches []domain.IndexLaunch) (int64, error) {
	m.mu.Lock()
	m.indexCalls = append(m.indexCalls, launches)
	m.mu.Unlock()

	if m.IndexFunc != nil {
		return m.IndexFunc(ctx, launches)
	}
	return CountLogs(launches), nil
}

func (m *MockIndexerClient) DeleteIndex(ctx context.Context, projectID int64) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, projectID)
	m.mu.Unlock()

	if m.DeleteIndexFunc != nil {
		return m.DeleteIndexFunc(ctx, projectID)
	}
	return nil
}

func (m *MockIndexerClient) CleanIndex(ctx context.Context, indexID int64, logIDs []int64) error {
	m.mu.Lock()
	m.cleanCalls = append(m.cleanCalls, CleanIndexCall{IndexID: indexID, LogIDs: logIDs})
	m.mu.Unlock()

	if m.CleanIndexFunc != nil {
		return m.CleanIndexFunc(ctx, indexID, logIDs)
	}
	return nil
}

// IndexCalls はIndexの呼び出し記録を返します
func (m *MockIndexerClient) IndexCalls() [][]domain.IndexLaunch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]domain.IndexLaunch(nil), m.indexCalls...)
}

// DeleteCalls はDeleteIndexの呼び出し記録を返します
func (m *MockIndexerClient) DeleteCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.deleteCalls...)
}

// CleanCalls はCleanIndexの呼び出し記録を返します
func (m *MockIndexerClient) CleanCalls() []CleanIndexCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CleanIndexCall(nil), m.cleanCalls...)
}

// CountLogs はリクエストに含まれるログ件数を数えます
func CountLogs(launches []domain.IndexLaunch) int64 {
	var n int64
	for _, l := range launches {
		for _, item := range l.TestItems {
			n += int64(len(item.Logs))
		}
	}
	return n
}

// MockStatusCache はテスト用のモックStatusCacheです
type MockStatusCache struct {
	IndexingStartedFunc  func(ctx context.Context, projectID int64) error
	IndexingFinishedFunc func(ctx context.Context, projectID int64) error
	IsIndexingFunc       func(ctx context.Context, projectID int64) (bool, error)
}

func (m *MockStatusCache) IndexingStarted(ctx context.Context, projectID int64) error {
	if m.IndexingStartedFunc != nil {
		return m.IndexingStartedFunc(ctx, projectID)
	}
	return nil
}

func (m *MockStatusCache) IndexingFinished(ctx context.Context, projectID int64) error {
	if m.IndexingFinishedFunc != nil {
		return m.IndexingFinishedFunc(ctx, projectID)
	}
	return nil
}

func (m *MockStatusCache) IsIndexing(ctx context.Context, projectID int64) (bool, error) {
	if m.IsIndexingFunc != nil {
		return m.IsIndexingFunc(ctx, projectID)
	}
	return false, nil
}
