package domain

import "strings"

// AnalyzerMode は類似ログ検索の範囲を表します
type AnalyzerMode string

const (
	AnalyzerModeAllLaunches    AnalyzerMode = "ALL"
	AnalyzerModeLaunchName     AnalyzerMode = "LAUNCH_NAME"
	AnalyzerModeCurrentLaunch  AnalyzerMode = "CURRENT_LAUNCH"
	AnalyzerModePreviousLaunch AnalyzerMode = "PREVIOUS_LAUNCH"
)

// AllLogLines はログ全行を送信することを表します
const AllLogLines = -1

// AnalyzerConfig はプロジェクト単位のアナライザー設定です
type AnalyzerConfig struct {
	MinShouldMatch      int          `json:"minShouldMatch" yaml:"min_should_match"`
	MinDocFreq          int          `json:"minDocFreq" yaml:"min_doc_freq"`
	MinTermFreq         int          `json:"minTermFreq" yaml:"min_term_freq"`
	NumberOfLogLines    int          `json:"numberOfLogLines" yaml:"number_of_log_lines"`
	AutoAnalyzerEnabled bool         `json:"isAutoAnalyzerEnabled" yaml:"auto_analyzer_enabled"`
	AnalyzerMode        AnalyzerMode `json:"analyzerMode" yaml:"analyzer_mode"`
	IndexingRunning     bool         `json:"indexingRunning" yaml:"-"`
}

// DefaultAnalyzerConfig はアナライザーの既定設定を返します
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MinShouldMatch:      80,
		MinDocFreq:          7,
		MinTermFreq:         1,
		NumberOfLogLines:    AllLogLines,
		AutoAnalyzerEnabled: true,
		AnalyzerMode:        AnalyzerModeAllLaunches,
	}
}

// IndexLog はインデックスリクエストに含めるログです
type IndexLog struct {
	LogID    int64    `json:"logId"`
	LogLevel LogLevel `json:"logLevel"`
	Message  string   `json:"message"`
}

// IndexTestItem はインデックスリクエストに含めるテストアイテムです
type IndexTestItem struct {
	TestItemID   int64      `json:"testItemId"`
	IssueType    string     `json:"issueType"`
	UniqueID     string     `json:"uniqueId"`
	AutoAnalyzed bool       `json:"isAutoAnalyzed"`
	Logs         []IndexLog `json:"logs"`
}

// IndexLaunch はアナライザーへ送信するインデックスリクエストのルートです
type IndexLaunch struct {
	LaunchID       int64           `json:"launchId"`
	LaunchName     string          `json:"launchName"`
	ProjectID      int64           `json:"project"`
	AnalyzerConfig AnalyzerConfig  `json:"analyzerConfig"`
	TestItems      []IndexTestItem `json:"testItems"`
}

// NewIndexTestItem はテストアイテムとログからIndexTestItemを組み立てます
// numberOfLogLinesが正の場合はメッセージを先頭から指定行数に切り詰めます
func NewIndexTestItem(item *TestItem, logs []*Log, numberOfLogLines int) IndexTestItem {
	rq := IndexTestItem{
		TestItemID: item.ID,
		UniqueID:   item.UniqueID,
		Logs:       make([]IndexLog, 0, len(logs)),
	}
	if item.Issue != nil {
		rq.IssueType = item.Issue.IssueTypeLocator
		rq.AutoAnalyzed = item.Issue.AutoAnalyzed
	}
	for _, l := range logs {
		if !LogIsSuitable(l) {
			continue
		}
		rq.Logs = append(rq.Logs, IndexLog{
			LogID:    l.ID,
			LogLevel: *l.Level,
			Message:  TrimLogLines(l.Message, numberOfLogLines),
		})
	}
	return rq
}

// TrimLogLines はメッセージを先頭からn行に切り詰めます
// nが0以下の場合はそのまま返します
func TrimLogLines(message string, n int) string {
	if n <= 0 {
		return message
	}
	lines := strings.SplitN(message, "\n", n+1)
	if len(lines) <= n {
		return message
	}
	return strings.Join(lines[:n], "\n")
}
