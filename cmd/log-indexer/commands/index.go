package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/manifoldco/promptui"
	"github.com/urfave/cli/v3"
)

// IndexLaunchesAction はローンチのログをインデックス化するコマンドのアクション
func IndexLaunchesAction(ctx context.Context, cmd *cli.Command) error {
	projectID := cmd.Int64("project")
	launchIDs := cmd.Int64Slice("launch")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	cfg := analyzerConfig(cmd, appCtx, projectID)
	count, err := appCtx.Container.LogIndexer.IndexLaunches(ctx, projectID, launchIDs, cfg).Await(ctx)
	if err != nil {
		return fmt.Errorf("インデックス化に失敗: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%d 件のログをインデックス化しました (project=%d, launches=%d)\n", count, projectID, len(launchIDs))
	return nil
}

// IndexItemsAction は指定テストアイテムのログをインデックス化するコマンドのアクション
func IndexItemsAction(ctx context.Context, cmd *cli.Command) error {
	projectID := cmd.Int64("project")
	launchID := cmd.Int64("launch")
	itemIDs := cmd.Int64Slice("item")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	cfg := analyzerConfig(cmd, appCtx, projectID)
	count, err := appCtx.Container.LogIndexer.IndexItems(ctx, projectID, launchID, itemIDs, cfg).Await(ctx)
	if err != nil {
		if domain.IsNotFound(err) {
			return fmt.Errorf("対象が見つかりません: %w", err)
		}
		return fmt.Errorf("インデックス化に失敗: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%d 件のログをインデックス化しました (project=%d, launch=%d, items=%d)\n", count, projectID, launchID, len(itemIDs))
	return nil
}

// IndexDeleteAction はプロジェクトのインデックスを削除するコマンドのアクション
func IndexDeleteAction(ctx context.Context, cmd *cli.Command) error {
	projectID := cmd.Int64("project")

	if !cmd.Bool("yes") {
		ok, err := confirm(fmt.Sprintf("プロジェクト %d のインデックスをすべて削除しますか", projectID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "中止しました")
			return nil
		}
	}

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if err := appCtx.Container.LogIndexer.DeleteIndex(ctx, projectID); err != nil {
		return fmt.Errorf("インデックスの削除に失敗: %w", err)
	}

	fmt.Fprintf(os.Stdout, "プロジェクト %d のインデックスを削除しました\n", projectID)
	return nil
}

// IndexCleanAction はインデックスから指定ログを削除するコマンドのアクション
// 削除はバックグラウンドで実行され、結果はログにのみ出力されます
func IndexCleanAction(ctx context.Context, cmd *cli.Command) error {
	indexID := cmd.Int64("project")
	logIDs := cmd.Int64Slice("log")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	// Closeで送信済みの削除タスクの完了を待つ
	defer appCtx.Close()

	appCtx.Container.LogIndexer.CleanIndex(ctx, indexID, logIDs)

	fmt.Fprintf(os.Stdout, "%d 件のログの削除を受け付けました (project=%d)\n", len(logIDs), indexID)
	return nil
}

// IndexStatusAction はプロジェクトのインデックス実行状況を表示するコマンドのアクション
func IndexStatusAction(ctx context.Context, cmd *cli.Command) error {
	projectIDs := cmd.Int64Slice("project")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if writeLocalStatusWarning(os.Stderr, appCtx.Config.Redis) {
		appCtx.Logger().Warn("Redis is not configured, indexing status is process-local")
	}

	statuses := make([]indexingStatus, 0, len(projectIDs))
	for _, projectID := range projectIDs {
		running, err := appCtx.Container.LogIndexer.IsIndexing(ctx, projectID)
		if err != nil {
			return fmt.Errorf("ステータスの取得に失敗: %w", err)
		}
		statuses = append(statuses, indexingStatus{
			ProjectID: projectID,
			Running:   running,
			Config:    appCtx.Container.AnalyzerConfigs.For(projectID),
		})
	}

	renderIndexingStatusTable(os.Stdout, statuses)
	return nil
}

// analyzerConfig はプロジェクトのアナライザー設定にフラグの上書きを適用します
func analyzerConfig(cmd *cli.Command, appCtx *AppContext, projectID int64) domain.AnalyzerConfig {
	cfg := appCtx.Container.AnalyzerConfigs.For(projectID)
	if cmd.IsSet("log-lines") {
		cfg.NumberOfLogLines = cmd.Int("log-lines")
	}
	return cfg
}

// confirm は y/N の確認プロンプトを表示します
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
