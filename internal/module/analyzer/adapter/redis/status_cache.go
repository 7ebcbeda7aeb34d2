package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// DefaultTTL は実行中ステータスの既定の有効期限です
// 異常終了したレプリカがステータスを残し続けないための上限です
const DefaultTTL = 2 * time.Hour

const keyPrefix = "analyzer:indexing:"

var startScript = redis.NewScript(1, `
local n = redis.call("INCR", KEYS[1])
redis.call("EXPIRE", KEYS[1], ARGV[1])
return n
`)

var finishScript = redis.NewScript(1, `
local n = redis.call("DECR", KEYS[1])
if n <= 0 then
	redis.call("DEL", KEYS[1])
	return 0
end
return n
`)

// StatusCache はRedis上でプロジェクトごとの実行中インデックス数を保持します
// 複数レプリカ間でステータスを共有する場合に使用します
type StatusCache struct {
	pool *redis.Pool
	ttl  time.Duration
}

var _ domain.StatusCache = (*StatusCache)(nil)

// NewStatusCache は新しいStatusCacheを作成します
// ttlが0以下の場合はDefaultTTLを使用します
func NewStatusCache(pool *redis.Pool, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StatusCache{pool: pool, ttl: ttl}
}

// NewPool はアドレスからRedis接続プールを作成します
func NewPool(addr, password string, db int) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 5 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr,
				redis.DialPassword(password),
				redis.DialDatabase(db),
				redis.DialConnectTimeout(5*time.Second),
			)
		},
	}
}

// IndexingStarted はプロジェクトの実行中カウントを増やします
func (c *StatusCache) IndexingStarted(ctx context.Context, projectID int64) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	if _, err := startScript.Do(conn, key(projectID), int64(c.ttl/time.Second)); err != nil {
		return fmt.Errorf("failed to mark indexing started: %w", err)
	}
	return nil
}

// IndexingFinished はプロジェクトの実行中カウントを減らします
func (c *StatusCache) IndexingFinished(ctx context.Context, projectID int64) error {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	if _, err := finishScript.Do(conn, key(projectID)); err != nil {
		return fmt.Errorf("failed to mark indexing finished: %w", err)
	}
	return nil
}

// IsIndexing はプロジェクトが実行中かどうかを返します
func (c *StatusCache) IsIndexing(ctx context.Context, projectID int64) (bool, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get redis connection: %w", err)
	}
	defer conn.Close()

	n, err := redis.Int64(conn.Do("GET", key(projectID)))
	if errors.Is(err, redis.ErrNil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get indexing status: %w", err)
	}
	return n > 0, nil
}

func key(projectID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, projectID)
}
