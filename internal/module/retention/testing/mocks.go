package testing

import (
	"context"
	"sync"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
)

// MockLogDeleter はテスト用のモックLogDeleterです
type MockLogDeleter struct {
	DeleteByPeriodAndLaunchIDsFunc   func(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error)
	DeleteByPeriodAndTestItemIDsFunc func(ctx context.Context, cutoff time.Time, itemIDs []int64) (int64, error)
}

func (m *MockLogDeleter) DeleteByPeriodAndLaunchIDs(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error) {
	if m.DeleteByPeriodAndLaunchIDsFunc != nil {
		return m.DeleteByPeriodAndLaunchIDsFunc(ctx, cutoff, launchIDs)
	}
	return 0, nil
}

func (m *MockLogDeleter) DeleteByPeriodAndTestItemIDs(ctx context.Context, cutoff time.Time, itemIDs []int64) (int64, error) {
	if m.DeleteByPeriodAndTestItemIDsFunc != nil {
		return m.DeleteByPeriodAndTestItemIDsFunc(ctx, cutoff, itemIDs)
	}
	return 0, nil
}

// CleanerCall はAttachmentCleanerの呼び出し記録です
type CleanerCall struct {
	IDs      []int64
	Cutoff   time.Time
	Counters *domain.Counters
}

// MockAttachmentCleaner はテスト用のモックAttachmentCleanerです
// 呼び出しを記録し、並行呼び出しにも安全です
type MockAttachmentCleaner struct {
	RemoveOutdatedLaunchesAttachmentsFunc func(ctx context.Context, launchIDs []int64, cutoff time.Time, counters *domain.Counters) error
	RemoveOutdatedItemsAttachmentsFunc    func(ctx context.Context, itemIDs []int64, cutoff time.Time, counters *domain.Counters) error

	mu          sync.Mutex
	launchCalls []CleanerCall
	itemCalls   []CleanerCall
}

func (m *MockAttachmentCleaner) RemoveOutdatedLaunchesAttachments(ctx context.Context, launchIDs []int64, cutoff time.Time, counters *domain.Counters) error {
	m.mu.Lock()
	m.launchCalls = append(m.launchCalls, CleanerCall{IDs: launchIDs, Cutoff: cutoff, Counters: counters})
	m.mu.Unlock()

	if m.RemoveOutdatedLaunchesAttachmentsFunc != nil {
		return m.RemoveOutdatedLaunchesAttachmentsFunc(ctx, launchIDs, cutoff, counters)
	}
	return nil
}

func (m *MockAttachmentCleaner) RemoveOutdatedItemsAttachments(ctx context.Context, itemIDs []int64, cutoff time.Time, counters *domain.Counters) error {
	m.mu.Lock()
	m.itemCalls = append(m.itemCalls, CleanerCall{IDs: itemIDs, Cutoff: cutoff, Counters: counters})
	m.mu.Unlock()

	if m.RemoveOutdatedItemsAttachmentsFunc != nil {
		return m.RemoveOutdatedItemsAttachmentsFunc(ctx, itemIDs, cutoff, counters)
	}
	return nil
}

// LaunchCalls はローンチ単位の呼び出し記録を返します
func (m *MockAttachmentCleaner) LaunchCalls() []CleanerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CleanerCall(nil), m.launchCalls...)
}

// ItemCalls はテストアイテム単位の呼び出し記録を返します
func (m *MockAttachmentCleaner) ItemCalls() []CleanerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CleanerCall(nil), m.itemCalls...)
}

// MockAttachmentRepository はテスト用のモックAttachmentRepositoryです
type MockAttachmentRepository struct {
	DeleteOutdatedByLaunchIDsFunc func(ctx context.Context, launchIDs []int64, cutoff time.Time) ([]*domain.Attachment, error)
	DeleteOutdatedByItemIDsFunc   func(ctx context.Context, itemIDs []int64, cutoff time.Time) ([]*domain.Attachment, error)
}

func (m *MockAttachmentRepository) DeleteOutdatedByLaunchIDs(ctx context.Context, launchIDs []int64, cutoff time.Time) ([]*domain.Attachment, error) {
	if m.DeleteOutdatedByLaunchIDsFunc != nil {
		return m.DeleteOutdatedByLaunchIDsFunc(ctx, launchIDs, cutoff)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) DeleteOutdatedByItemIDs(ctx context.Context, itemIDs []int64, cutoff time.Time) ([]*domain.Attachment, error) {
	if m.DeleteOutdatedByItemIDsFunc != nil {
		return m.DeleteOutdatedByItemIDsFunc(ctx, itemIDs, cutoff)
	}
	return nil, nil
}

// InMemoryBinaryStore はテスト用のメモリ上のBinaryStoreです
type InMemoryBinaryStore struct {
	mu      sync.Mutex
	objects map[string]struct{}
	// DeleteErr が設定されている場合、Delete は常にこのエラーを返します
	DeleteErr error
	// FailOnce に登録されたIDの初回のDeleteは、そのエラーを返します
	FailOnce map[string]error
}

// NewInMemoryBinaryStore は指定IDのオブジェクトを保持するストアを作成します
func NewInMemoryBinaryStore(ids ...string) *InMemoryBinaryStore {
	s := &InMemoryBinaryStore{objects: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.objects[id] = struct{}{}
	}
	return s
}

func (s *InMemoryBinaryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailOnce[id]; ok {
		delete(s.FailOnce, id)
		return err
	}
	if _, ok := s.objects[id]; !ok {
		return domain.ErrBinaryNotFound
	}
	delete(s.objects, id)
	return nil
}

// Has はオブジェクトが残っているかどうかを返します
func (s *InMemoryBinaryStore) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[id]
	return ok
}

// MockLaunchFinder はテスト用のモックLaunchFinderです
type MockLaunchFinder struct {
	ListIDsStartedBeforeFunc func(ctx context.Context, projectID int64, cutoff time.Time) ([]int64, error)
}

func (m *MockLaunchFinder) ListIDsStartedBefore(ctx context.Context, projectID int64, cutoff time.Time) ([]int64, error) {
	if m.ListIDsStartedBeforeFunc != nil {
		return m.ListIDsStartedBeforeFunc(ctx, projectID, cutoff)
	}
	return nil, nil
}

// MockLocker はテスト用のモックLockerです
// 既定ではキーごとにプロセス内で排他します
type MockLocker struct {
	TryLockFunc func(ctx context.Context, key string) (domain.Unlock, bool, error)

	mu       sync.Mutex
	held     map[string]bool
	released []string
}

func (m *MockLocker) TryLock(ctx context.Context, key string) (domain.Unlock, bool, error) {
	if m.TryLockFunc != nil {
		return m.TryLockFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held == nil {
		m.held = map[string]bool{}
	}
	if m.held[key] {
		return nil, false, nil
	}
	m.held[key] = true

	return func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.held, key)
		m.released = append(m.released, key)
		return nil
	}, true, nil
}

// Released は解放されたロックのキーを返します
func (m *MockLocker) Released() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.released...)
}

// MockProjectLister はテスト用のモックProjectListerです
type MockProjectLister struct {
	ListProjectIDsFunc func(ctx context.Context) ([]int64, error)
}

func (m *MockProjectLister) ListProjectIDs(ctx context.Context) ([]int64, error) {
	if m.ListProjectIDsFunc != nil {
		return m.ListProjectIDsFunc(ctx)
	}
	return nil, nil
}
