package application

import (
	"context"
	"sync"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// StatusCache はプロセス内でプロジェクトごとの実行中インデックス数を保持します
//
// 同一プロジェクトで並行実行された場合でも、最後の実行が終わるまで実行中と判定されます。
type StatusCache struct {
	mu      sync.Mutex
	running map[int64]int
}

var _ domain.StatusCache = (*StatusCache)(nil)

// NewStatusCache は新しいStatusCacheを作成します
func NewStatusCache() *StatusCache {
	return &StatusCache{running: make(map[int64]int)}
}

// IndexingStarted はプロジェクトの実行中カウントを増やします
func (c *StatusCache) IndexingStarted(_ context.Context, projectID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running[projectID]++
	return nil
}

// IndexingFinished はプロジェクトの実行中カウントを減らします
func (c *StatusCache) IndexingFinished(_ context.Context, projectID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running[projectID] <= 1 {
		delete(c.running, projectID)
		return nil
	}
	c.running[projectID]--
	return nil
}

// IsIndexing はプロジェクトが実行中かどうかを返します
func (c *StatusCache) IsIndexing(_ context.Context, projectID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running[projectID] > 0, nil
}
