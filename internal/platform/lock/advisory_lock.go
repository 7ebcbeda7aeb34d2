package lock

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Locker はPostgreSQLアドバイザリロックでレプリカ間の排他を行います
type Locker struct {
	pool *pgxpool.Pool
}

// NewLocker は接続プールからLockerを生成します
func NewLocker(pool *pgxpool.Pool) *Locker {
	return &Locker{pool: pool}
}

// GenerateLockID は文字列からロックIDを生成します
func GenerateLockID(parts ...string) int64 {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
	}
	hash := h.Sum(nil)

	// ハッシュの最初の8バイトをint64として使用
	var id int64
	for i := range 8 {
		id = (id << 8) | int64(hash[i])
	}

	return id
}

// TryLock は待たずにアドバイザリロックの取得を試みます
// トランザクションスコープのロック（pg_try_advisory_xact_lock）を使用し、
// 返されたunlockでトランザクションを終了した時点で解放されます
func (l *Locker) TryLock(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	lockID := GenerateLockID(key)

	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin lock transaction: %w", err)
	}

	var acquired bool
	if err := tx.QueryRow(ctx, "SELECT pg_try_advisory_xact_lock($1)", lockID).Scan(&acquired); err != nil {
		_ = tx.Rollback(ctx)
		return nil, false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	if !acquired {
		if err := tx.Rollback(ctx); err != nil {
			return nil, false, fmt.Errorf("failed to end lock transaction: %w", err)
		}
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to release advisory lock: %w", err)
		}
		return nil
	}
	return unlock, true, nil
}
