package domain

import (
	"time"
)

// === Launch集約 ===

// LaunchMode はローンチの実行モードを表します
type LaunchMode string

const (
	LaunchModeDefault LaunchMode = "DEFAULT"
	LaunchModeDebug   LaunchMode = "DEBUG"
)

// LaunchStatus はローンチの実行ステータスを表します
type LaunchStatus string

const (
	LaunchStatusInProgress  LaunchStatus = "IN_PROGRESS"
	LaunchStatusPassed      LaunchStatus = "PASSED"
	LaunchStatusFailed      LaunchStatus = "FAILED"
	LaunchStatusStopped     LaunchStatus = "STOPPED"
	LaunchStatusSkipped     LaunchStatus = "SKIPPED"
	LaunchStatusInterrupted LaunchStatus = "INTERRUPTED"
	LaunchStatusCancelled   LaunchStatus = "CANCELLED"
)

// IsTerminal は実行が完了したステータスかどうかを返します
func (s LaunchStatus) IsTerminal() bool {
	return s != "" && s != LaunchStatusInProgress
}

// Launch はテストスイートの1回の実行を表します
type Launch struct {
	ID        int64        `json:"id"`
	ProjectID int64        `json:"projectId"`
	Name      string       `json:"name"`
	Number    int64        `json:"number"`
	Mode      LaunchMode   `json:"mode"`
	Status    LaunchStatus `json:"status"`
	StartTime time.Time    `json:"startTime"`
	EndTime   *time.Time   `json:"endTime,omitempty"`
}

// === TestItem集約 ===

// IssueGroup は不具合種別のグループを表します
type IssueGroup string

const (
	IssueGroupProductBug    IssueGroup = "PRODUCT_BUG"
	IssueGroupAutomationBug IssueGroup = "AUTOMATION_BUG"
	IssueGroupSystemIssue   IssueGroup = "SYSTEM_ISSUE"
	IssueGroupNoDefect      IssueGroup = "NO_DEFECT"
	IssueGroupToInvestigate IssueGroup = "TO_INVESTIGATE"
)

// ToInvestigateLocator は未調査グループの既定ロケーターです
const ToInvestigateLocator = "ti001"

// Issue はテストアイテムに付与された不具合分類です
type Issue struct {
	IssueTypeLocator string     `json:"issueType"`
	Group            IssueGroup `json:"issueGroup"`
	AutoAnalyzed     bool       `json:"autoAnalyzed"`
	IgnoreAnalyzer   bool       `json:"ignoreAnalyzer"`
}

// TestItem はローンチ内の1つのテスト(またはスイートノード)を表します
type TestItem struct {
	ID       int64  `json:"id"`
	LaunchID int64  `json:"launchId"`
	Name     string `json:"name"`
	UniqueID string `json:"uniqueId"`
	HasStats bool   `json:"hasStats"`
	Issue    *Issue `json:"issue,omitempty"`
}

// === Log ===

// LogLevel はログの重要度を整数スケールで表します
type LogLevel int32

const (
	LogLevelTrace   LogLevel = 5000
	LogLevelDebug   LogLevel = 10000
	LogLevelInfo    LogLevel = 20000
	LogLevelWarn    LogLevel = 30000
	LogLevelError   LogLevel = 40000
	LogLevelFatal   LogLevel = 50000
	LogLevelUnknown LogLevel = 60000
)

// String はログレベル名を返します
func (l LogLevel) String() string {
	switch {
	case l >= LogLevelUnknown:
		return "UNKNOWN"
	case l >= LogLevelFatal:
		return "FATAL"
	case l >= LogLevelError:
		return "ERROR"
	case l >= LogLevelWarn:
		return "WARN"
	case l >= LogLevelInfo:
		return "INFO"
	case l >= LogLevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}

// Attachment はログに添付されたバイナリを表します
type Attachment struct {
	ID          int64   `json:"id"`
	FileID      string  `json:"fileId"`
	ThumbnailID *string `json:"thumbnailId,omitempty"`
	ContentType string  `json:"contentType"`
}

// Log はテストアイテム実行中に出力されたメッセージです
type Log struct {
	ID         int64       `json:"id"`
	TestItemID int64       `json:"testItemId"`
	LaunchID   *int64      `json:"launchId,omitempty"`
	Level      *LogLevel   `json:"level,omitempty"`
	Message    string      `json:"message"`
	LogTime    time.Time   `json:"logTime"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
