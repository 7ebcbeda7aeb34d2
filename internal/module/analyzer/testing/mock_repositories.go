package testing

import (
	"context"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// MockLaunchReader はテスト用のモックLaunchReaderです
type MockLaunchReader struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Launch, error)
}

func (m *MockLaunchReader) GetByID(ctx context.Context, id int64) (*domain.Launch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.NewNotFoundError(domain.EntityLaunch, id)
}

// MockTestItemReader はテスト用のモックTestItemReaderです
type MockTestItemReader struct {
	ListByIDsFunc              func(ctx context.Context, ids []int64) ([]*domain.TestItem, error)
	ListNotInIssueByLaunchFunc func(ctx context.Context, launchID int64, issueLocator string) ([]*domain.TestItem, error)
}

func (m *MockTestItemReader) ListByIDs(ctx context.Context, ids []int64) ([]*domain.TestItem, error) {
	if m.ListByIDsFunc != nil {
		return m.ListByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockTestItemReader) ListNotInIssueByLaunch(ctx context.Context, launchID int64, issueLocator string) ([]*domain.TestItem, error) {
	if m.ListNotInIssueByLaunchFunc != nil {
		return m.ListNotInIssueByLaunchFunc(ctx, launchID, issueLocator)
	}
	return nil, nil
}

// MockLogReader はテスト用のモックLogReaderです
type MockLogReader struct {
	ListByTestItemIDsAndLevelGTEFunc func(ctx context.Context, itemIDs []int64, level domain.LogLevel) ([]*domain.Log, error)
}

func (m *MockLogReader) ListByTestItemIDsAndLevelGTE(ctx context.Context, itemIDs []int64, level domain.LogLevel) ([]*domain.Log, error) {
	if m.ListByTestItemIDsAndLevelGTEFunc != nil {
		return m.ListByTestItemIDsAndLevelGTEFunc(ctx, itemIDs, level)
	}
	return nil, nil
}

// InMemoryStore はローンチ・テストアイテム・ログをメモリ上に保持するテスト用ストアです
// LaunchReader、TestItemReader、LogReaderを実装します
type InMemoryStore struct {
	Launches map[int64]*domain.Launch
	Items    []*domain.TestItem
	Logs     []*domain.Log
}

// NewInMemoryStore は空のInMemoryStoreを作成します
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{Launches: make(map[int64]*domain.Launch)}
}

func (s *InMemoryStore) GetByID(_ context.Context, id int64) (*domain.Launch, error) {
	launch, ok := s.Launches[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.EntityLaunch, id)
	}
	return launch, nil
}

func (s *InMemoryStore) ListByIDs(_ context.Context, ids []int64) ([]*domain.TestItem, error) {
	byID := make(map[int64]*domain.TestItem, len(s.Items))
	for _, item := range s.Items {
		byID[item.ID] = item
	}
	result := make([]*domain.TestItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (s *InMemoryStore) ListNotInIssueByLaunch(_ context.Context, launchID int64, issueLocator string) ([]*domain.TestItem, error) {
	result := make([]*domain.TestItem, 0)
	for _, item := range s.Items {
		if item.LaunchID != launchID {
			continue
		}
		// 不具合分類の無いテストアイテムは対象外
		if item.Issue == nil || item.Issue.IssueTypeLocator == issueLocator {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *InMemoryStore) ListByTestItemIDsAndLevelGTE(_ context.Context, itemIDs []int64, level domain.LogLevel) ([]*domain.Log, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	result := make([]*domain.Log, 0)
	for _, l := range s.Logs {
		if wanted[l.TestItemID] && l.Level != nil && *l.Level >= level {
			result = append(result, l)
		}
	}
	return result, nil
}
