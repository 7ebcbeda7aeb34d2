package domain

import (
	"context"
	"time"
)

// LogDeleter はログの期限切れ削除を定義します
type LogDeleter interface {
	// DeleteByPeriodAndLaunchIDs はローンチに属し、cutoffより前に記録されたログを削除し、削除件数を返します
	DeleteByPeriodAndLaunchIDs(ctx context.Context, cutoff time.Time, launchIDs []int64) (int64, error)
	// DeleteByPeriodAndTestItemIDs はテストアイテムに属し、cutoffより前に記録されたログを削除し、削除件数を返します
	DeleteByPeriodAndTestItemIDs(ctx context.Context, cutoff time.Time, itemIDs []int64) (int64, error)
}

// AttachmentCleaner は期限切れ添付ファイルのバイナリ削除を定義します
// 削除したオブジェクト数はcountersへ加算されます
type AttachmentCleaner interface {
	RemoveOutdatedLaunchesAttachments(ctx context.Context, launchIDs []int64, cutoff time.Time, counters *Counters) error
	RemoveOutdatedItemsAttachments(ctx context.Context, itemIDs []int64, cutoff time.Time, counters *Counters) error
}

// AttachmentRepository は添付ファイル行の削除を定義します
type AttachmentRepository interface {
	// DeleteOutdatedByLaunchIDs はcutoffより前に作成された添付ファイル行を削除し、削除した行を返します
	DeleteOutdatedByLaunchIDs(ctx context.Context, launchIDs []int64, cutoff time.Time) ([]*Attachment, error)
	// DeleteOutdatedByItemIDs はcutoffより前に作成された添付ファイル行を削除し、削除した行を返します
	DeleteOutdatedByItemIDs(ctx context.Context, itemIDs []int64, cutoff time.Time) ([]*Attachment, error)
}

// BinaryStore は添付ファイル本体の保存先です
type BinaryStore interface {
	// Delete はオブジェクトを削除します。存在しない場合はErrBinaryNotFoundを返します
	Delete(ctx context.Context, id string) error
}

// LaunchFinder はクリーンアップ対象となり得るローンチを検索します
type LaunchFinder interface {
	// ListIDsStartedBefore はプロジェクト内でcutoffより前に開始し、完了済みのローンチIDを返します
	ListIDsStartedBefore(ctx context.Context, projectID int64, cutoff time.Time) ([]int64, error)
}

// Unlock はLockerで取得したロックを解放します
type Unlock = func(ctx context.Context) error

// Locker はレプリカ間で排他するためのロックを定義します
type Locker interface {
	// TryLock は待たずにロック取得を試みます。取得できなかった場合はfalseを返します
	TryLock(ctx context.Context, key string) (Unlock, bool, error)
}

// ProjectLister はクリーンアップ対象のプロジェクトを列挙します
type ProjectLister interface {
	ListProjectIDs(ctx context.Context) ([]int64, error)
}
