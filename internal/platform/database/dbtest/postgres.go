// Package dbtest は統合テスト用のPostgreSQLコンテナを提供します
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jinford/log-indexer/internal/platform/database"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	postgresImage    = "postgres"
	postgresTag      = "16-alpine"
	postgresUser     = "postgres"
	postgresPassword = "secret"
	postgresDB       = "log_indexer"
)

// NewPostgres はPostgreSQLコンテナを起動し、スキーマ適用済みの接続プールを返します
// コンテナとプールはテスト終了時に破棄されます
func NewPostgres(t testing.TB) *pgxpool.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("failed to connect to docker: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: postgresImage,
		Tag:        postgresTag,
		Env: []string{
			"POSTGRES_USER=" + postgresUser,
			"POSTGRES_PASSWORD=" + postgresPassword,
			"POSTGRES_DB=" + postgresDB,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge postgres container: %v", err)
		}
	})
	_ = resource.Expire(300)

	params := database.ConnectionParams{
		Host:     "localhost",
		Port:     0,
		User:     postgresUser,
		Password: postgresPassword,
		DBName:   postgresDB,
		SSLMode:  "disable",
	}
	if _, err := fmt.Sscanf(resource.GetPort("5432/tcp"), "%d", &params.Port); err != nil {
		t.Fatalf("failed to parse postgres port: %v", err)
	}

	ctx := context.Background()
	var db *database.DB
	if err := pool.Retry(func() error {
		var err error
		db, err = database.New(ctx, params)
		return err
	}); err != nil {
		t.Fatalf("postgres did not become ready: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Pool.Exec(ctx, database.Schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db.Pool
}
