package domain

import "sync/atomic"

// Counters は削除した添付ファイルとサムネイルの累計です
// 複数ローンチの並列クリーンアップから共有されます
type Counters struct {
	Attachments atomic.Int64
	Thumbnails  atomic.Int64
}

// Snapshot はカウンターの現在値を返します
func (c *Counters) Snapshot() (attachments, thumbnails int64) {
	return c.Attachments.Load(), c.Thumbnails.Load()
}
