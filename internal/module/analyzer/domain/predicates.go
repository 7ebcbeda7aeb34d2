package domain

// LaunchCanBeIndexed はローンチがインデックス対象かどうかを判定します
// デバッグモードや実行中のローンチは対象外です
func LaunchCanBeIndexed(launch *Launch) bool {
	return launch != nil &&
		launch.Mode == LaunchModeDefault &&
		launch.Status.IsTerminal()
}

// ItemCanBeIndexed はテストアイテムがインデックス対象かどうかを判定します
// 不具合分類が無いもの、アナライザー除外指定のもの、未調査のものは対象外です
func ItemCanBeIndexed(item *TestItem) bool {
	if item == nil || item.Issue == nil {
		return false
	}
	if item.Issue.IgnoreAnalyzer {
		return false
	}
	return item.Issue.Group != IssueGroupToInvestigate &&
		item.Issue.IssueTypeLocator != ToInvestigateLocator
}

// LogIsSuitable はログのレベルがERROR以上かどうかを判定します
func LogIsSuitable(log *Log) bool {
	return log != nil && log.Level != nil && *log.Level >= LogLevelError
}
