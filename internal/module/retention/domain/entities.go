package domain

import (
	"errors"
	"time"
)

// ErrBinaryNotFound はバイナリストアに対象オブジェクトが存在しないことを表します
var ErrBinaryNotFound = errors.New("binary not found")

// Attachment は削除対象となった添付ファイルの行です
type Attachment struct {
	ID           int64
	FileID       string
	ThumbnailID  *string
	ContentType  string
	ProjectID    int64
	CreationDate time.Time
}

// Result は1プロジェクト分のクリーンアップ結果です
type Result struct {
	ProjectID   int64
	Cutoff      time.Time
	Launches    int
	Logs        int64
	Attachments int64
	Thumbnails  int64
	// Skipped は他のレプリカがクリーンアップ中のため何もしなかったことを表します
	Skipped bool
}
