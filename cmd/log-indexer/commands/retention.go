package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/urfave/cli/v3"
)

// RetentionRunAction はプロジェクトの保持期間クリーンアップを実行するコマンドのアクション
func RetentionRunAction(ctx context.Context, cmd *cli.Command) error {
	projectID := cmd.Int64("project")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	job, err := appCtx.Container.RetentionJob()
	if err != nil {
		return err
	}

	result, err := job.Run(ctx, projectID, keepLogs(cmd, appCtx))
	if result != nil {
		renderRetentionResultTable(os.Stdout, result)
	}
	if err != nil {
		return fmt.Errorf("クリーンアップに失敗: %w", err)
	}
	if result.Skipped {
		fmt.Fprintln(os.Stdout, "他のプロセスがクリーンアップ中のためスキップしました")
	}
	return nil
}

// RetentionLaunchAction は1ローンチ分の古いログを削除するコマンドのアクション
func RetentionLaunchAction(ctx context.Context, cmd *cli.Command) error {
	launchID := cmd.Int64("launch")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if appCtx.Container.LogCleaner == nil {
		if _, err := appCtx.Container.RetentionJob(); err != nil {
			return err
		}
	}

	cutoff := time.Now().UTC().Add(-keepLogs(cmd, appCtx))
	var counters domain.Counters
	logs, err := appCtx.Container.LogCleaner.RemoveOutdatedLogs(ctx, launchID, cutoff, &counters)

	attachments, thumbnails := counters.Snapshot()
	renderRetentionResultTable(os.Stdout, &domain.Result{
		Cutoff:      cutoff,
		Launches:    1,
		Logs:        logs,
		Attachments: attachments,
		Thumbnails:  thumbnails,
	})
	if err != nil {
		return fmt.Errorf("クリーンアップに失敗: %w", err)
	}
	return nil
}

// RetentionItemsAction はテストアイテム単位で古いログを削除するコマンドのアクション
func RetentionItemsAction(ctx context.Context, cmd *cli.Command) error {
	itemIDs := cmd.Int64Slice("item")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	if appCtx.Container.LogCleaner == nil {
		if _, err := appCtx.Container.RetentionJob(); err != nil {
			return err
		}
	}

	cutoff := time.Now().UTC().Add(-keepLogs(cmd, appCtx))
	var counters domain.Counters
	logs, err := appCtx.Container.LogCleaner.RemoveOutdatedItemLogs(ctx, itemIDs, cutoff, &counters)

	attachments, thumbnails := counters.Snapshot()
	renderRetentionResultTable(os.Stdout, &domain.Result{
		Cutoff:      cutoff,
		Logs:        logs,
		Attachments: attachments,
		Thumbnails:  thumbnails,
	})
	if err != nil {
		return fmt.Errorf("クリーンアップに失敗: %w", err)
	}
	return nil
}

// RetentionScheduleAction はクリーンアップを定期実行するコマンドのアクション
// シグナルを受け取るまでブロックします
func RetentionScheduleAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	scheduler, err := appCtx.Container.RetentionScheduler()
	if err != nil {
		return err
	}

	if cmd.Bool("now") {
		if err := scheduler.RunOnce(ctx); err != nil {
			appCtx.Logger().Error("Initial retention run failed", "error", err)
		}
	}

	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	scheduler.Stop()
	return nil
}

// keepLogs はフラグまたは設定からログ保持期間を決定します
func keepLogs(cmd *cli.Command, appCtx *AppContext) time.Duration {
	if cmd.IsSet("keep-days") {
		return time.Duration(cmd.Int("keep-days")) * 24 * time.Hour
	}
	return appCtx.Config.Retention.KeepLogs
}
