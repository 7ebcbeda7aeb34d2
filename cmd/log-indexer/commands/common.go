package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinford/log-indexer/internal/platform/config"
	"github.com/jinford/log-indexer/internal/platform/container"
	"github.com/jinford/log-indexer/internal/platform/logger"
)

// shutdownTimeout は非同期タスクの完了を待つ上限です
const shutdownTimeout = 30 * time.Second

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	Container *container.Container
}

// NewAppContext は設定ファイルを読み込み、DBに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	cont, err := container.New(ctx, cfg, container.WithContainerLogger(appLogger))
	if err != nil {
		return nil, fmt.Errorf("コンテナの初期化に失敗: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Container: cont,
	}, nil
}

// Close は非同期タスクの完了を待ち、AppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := ac.Container.Close(ctx); err != nil {
		ac.Logger().Warn("Shutdown did not complete cleanly", "error", err)
	}
}

// Logger はAppContextのロガーを返す
func (ac *AppContext) Logger() *slog.Logger {
	if ac.Container != nil {
		return ac.Container.Logger()
	}
	return slog.Default()
}
