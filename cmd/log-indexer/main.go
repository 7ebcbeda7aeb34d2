package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jinford/log-indexer/cmd/log-indexer/commands"
	"github.com/urfave/cli/v3"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}
}

func projectFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "project",
		Usage:    "プロジェクトID",
		Required: true,
	}
}

func logLinesFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "log-lines",
		Usage: "送信するログメッセージの行数（-1 で全行、省略時はアナライザー設定）",
	}
}

func keepDaysFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "keep-days",
		Usage: "ログ保持日数（省略時は RETENTION_KEEP_LOGS_DAYS）",
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 構造化ログの設定（設定読み込み後に置き換わる）
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "log-indexer",
		Usage: "テストログのアナライザー向けインデックス化およびログ保持期間クリーンアップ",
		Commands: []*cli.Command{
			{
				Name:  "index",
				Usage: "インデックス管理コマンド",
				Commands: []*cli.Command{
					{
						Name:  "launches",
						Usage: "ローンチ単位でERROR以上のログをインデックス化",
						Flags: []cli.Flag{
							envFlag(),
							projectFlag(),
							&cli.Int64SliceFlag{
								Name:     "launch",
								Usage:    "ローンチID（複数指定可）",
								Required: true,
							},
							logLinesFlag(),
						},
						Action: commands.IndexLaunchesAction,
					},
					{
						Name:  "items",
						Usage: "指定テストアイテムのログをインデックス化",
						Flags: []cli.Flag{
							envFlag(),
							projectFlag(),
							&cli.Int64Flag{
								Name:     "launch",
								Usage:    "ローンチID",
								Required: true,
							},
							&cli.Int64SliceFlag{
								Name:     "item",
								Usage:    "テストアイテムID（複数指定可）",
								Required: true,
							},
							logLinesFlag(),
						},
						Action: commands.IndexItemsAction,
					},
					{
						Name:  "delete",
						Usage: "プロジェクトのインデックスを削除",
						Flags: []cli.Flag{
							envFlag(),
							projectFlag(),
							&cli.BoolFlag{
								Name:  "yes",
								Usage: "確認プロンプトを省略",
							},
						},
						Action: commands.IndexDeleteAction,
					},
					{
						Name:  "clean",
						Usage: "インデックスから指定ログを削除",
						Flags: []cli.Flag{
							envFlag(),
							projectFlag(),
							&cli.Int64SliceFlag{
								Name:     "log",
								Usage:    "ログID（複数指定可）",
								Required: true,
							},
						},
						Action: commands.IndexCleanAction,
					},
					{
						Name:  "status",
						Usage: "インデックス実行状況を表示",
						Flags: []cli.Flag{
							envFlag(),
							&cli.Int64SliceFlag{
								Name:     "project",
								Usage:    "プロジェクトID（複数指定可）",
								Required: true,
							},
						},
						Action: commands.IndexStatusAction,
					},
				},
			},
			{
				Name:  "retention",
				Usage: "ログ保持期間クリーンアップコマンド",
				Commands: []*cli.Command{
					{
						Name:  "run",
						Usage: "プロジェクトの古いログと添付ファイルを削除",
						Flags: []cli.Flag{
							envFlag(),
							projectFlag(),
							keepDaysFlag(),
						},
						Action: commands.RetentionRunAction,
					},
					{
						Name:  "launch",
						Usage: "ローンチ単位で古いログと添付ファイルを削除",
						Flags: []cli.Flag{
							envFlag(),
							&cli.Int64Flag{
								Name:     "launch",
								Usage:    "ローンチID",
								Required: true,
							},
							keepDaysFlag(),
						},
						Action: commands.RetentionLaunchAction,
					},
					{
						Name:  "items",
						Usage: "テストアイテム単位で古いログと添付ファイルを削除",
						Flags: []cli.Flag{
							envFlag(),
							&cli.Int64SliceFlag{
								Name:     "item",
								Usage:    "テストアイテムID（複数指定可）",
								Required: true,
							},
							keepDaysFlag(),
						},
						Action: commands.RetentionItemsAction,
					},
					{
						Name:  "schedule",
						Usage: "全プロジェクトのクリーンアップを定期実行（RETENTION_SCHEDULE）",
						Flags: []cli.Flag{
							envFlag(),
							&cli.BoolFlag{
								Name:  "now",
								Usage: "起動直後に1回実行",
							},
						},
						Action: commands.RetentionScheduleAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
