package domain

import (
	"context"
)

// IndexerClient は外部アナライザーのインデックスAPIを表すポートです
type IndexerClient interface {
	// Index はローンチ群をインデックス化し、インデックスされたドキュメント数を返します
	Index(ctx context.Context, launches []IndexLaunch) (int64, error)
	// DeleteIndex はプロジェクトのインデックス全体を削除します
	DeleteIndex(ctx context.Context, projectID int64) error
	// CleanIndex はインデックスから指定ログのドキュメントを削除します
	CleanIndex(ctx context.Context, indexID int64, logIDs []int64) error
}

// StatusCache はプロジェクト単位のインデックス実行状態を保持します
//
// 状態は参考情報であり、同一プロジェクトの並行実行を排他しません。
// IndexingStartedとIndexingFinishedは必ず対で呼び出されます。
type StatusCache interface {
	IndexingStarted(ctx context.Context, projectID int64) error
	IndexingFinished(ctx context.Context, projectID int64) error
	IsIndexing(ctx context.Context, projectID int64) (bool, error)
}
