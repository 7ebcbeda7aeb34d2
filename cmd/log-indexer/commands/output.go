package commands

import (
	"fmt"
	"io"
	"strconv"

	analyzerdomain "github.com/jinford/log-indexer/internal/module/analyzer/domain"
	retentiondomain "github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/jinford/log-indexer/internal/platform/config"
	"github.com/olekukonko/tablewriter"
)

// indexingStatus はプロジェクトごとのインデックス状況です
type indexingStatus struct {
	ProjectID int64
	Running   bool
	Config    analyzerdomain.AnalyzerConfig
}

// writeLocalStatusWarning はRedis未設定時に、表示されるステータスがこのプロセス内のものに限られることを警告します
// 警告を出力した場合はtrueを返します
func writeLocalStatusWarning(w io.Writer, redis config.RedisConfig) bool {
	if redis.Enabled() {
		return false
	}
	fmt.Fprintln(w, "警告: REDIS_ADDR が未設定のため、他プロセスで実行中のインデックス化は表示されません")
	return true
}

// renderIndexingStatusTable はインデックス状況をテーブル形式で表示します
func renderIndexingStatusTable(w io.Writer, statuses []indexingStatus) {
	table := tablewriter.NewWriter(w)
	table.Header("Project", "Indexing", "Mode", "Log Lines", "Min Should Match")

	for _, s := range statuses {
		logLines := "all"
		if s.Config.NumberOfLogLines != analyzerdomain.AllLogLines {
			logLines = strconv.Itoa(s.Config.NumberOfLogLines)
		}
		table.Append(
			strconv.FormatInt(s.ProjectID, 10),
			strconv.FormatBool(s.Running),
			string(s.Config.AnalyzerMode),
			logLines,
			fmt.Sprintf("%d%%", s.Config.MinShouldMatch),
		)
	}

	table.Render()
}

// renderRetentionResultTable はクリーンアップ結果をテーブル形式で表示します
func renderRetentionResultTable(w io.Writer, r *retentiondomain.Result) {
	table := tablewriter.NewWriter(w)
	table.Header("項目", "値")

	if r.ProjectID != 0 {
		table.Append("Project", strconv.FormatInt(r.ProjectID, 10))
	}
	table.Append("Cutoff", r.Cutoff.Format("2006-01-02 15:04:05"))
	table.Append("Launches", strconv.Itoa(r.Launches))
	table.Append("Logs", strconv.FormatInt(r.Logs, 10))
	table.Append("Attachments", strconv.FormatInt(r.Attachments, 10))
	table.Append("Thumbnails", strconv.FormatInt(r.Thumbnails, 10))

	table.Render()
}
