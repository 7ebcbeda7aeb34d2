package domain_test

import (
	"testing"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/stretchr/testify/assert"
)

func level(l domain.LogLevel) *domain.LogLevel {
	return &l
}

func TestLogIsSuitable(t *testing.T) {
	tests := []struct {
		name     string
		log      *domain.Log
		expected bool
	}{
		{"nil log", nil, false},
		{"nil level", &domain.Log{ID: 1}, false},
		{"trace", &domain.Log{Level: level(domain.LogLevelTrace)}, false},
		{"debug", &domain.Log{Level: level(domain.LogLevelDebug)}, false},
		{"info", &domain.Log{Level: level(domain.LogLevelInfo)}, false},
		{"warn", &domain.Log{Level: level(domain.LogLevelWarn)}, false},
		{"just below error", &domain.Log{Level: level(domain.LogLevelError - 1)}, false},
		{"error", &domain.Log{Level: level(domain.LogLevelError)}, true},
		{"fatal", &domain.Log{Level: level(domain.LogLevelFatal)}, true},
		{"unknown", &domain.Log{Level: level(domain.LogLevelUnknown)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.LogIsSuitable(tt.log))
		})
	}
}

func TestLaunchCanBeIndexed(t *testing.T) {
	tests := []struct {
		name     string
		launch   *domain.Launch
		expected bool
	}{
		{"nil launch", nil, false},
		{"finished default launch", &domain.Launch{Mode: domain.LaunchModeDefault, Status: domain.LaunchStatusFailed}, true},
		{"passed default launch", &domain.Launch{Mode: domain.LaunchModeDefault, Status: domain.LaunchStatusPassed}, true},
		{"in progress", &domain.Launch{Mode: domain.LaunchModeDefault, Status: domain.LaunchStatusInProgress}, false},
		{"debug mode", &domain.Launch{Mode: domain.LaunchModeDebug, Status: domain.LaunchStatusFailed}, false},
		{"missing status", &domain.Launch{Mode: domain.LaunchModeDefault}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.LaunchCanBeIndexed(tt.launch))
		})
	}
}

func TestItemCanBeIndexed(t *testing.T) {
	tests := []struct {
		name     string
		item     *domain.TestItem
		expected bool
	}{
		{"nil item", nil, false},
		{"no issue", &domain.TestItem{ID: 1}, false},
		{
			"product bug",
			&domain.TestItem{Issue: &domain.Issue{IssueTypeLocator: "pb001", Group: domain.IssueGroupProductBug}},
			true,
		},
		{
			"ignored by analyzer",
			&domain.TestItem{Issue: &domain.Issue{IssueTypeLocator: "pb001", Group: domain.IssueGroupProductBug, IgnoreAnalyzer: true}},
			false,
		},
		{
			"to investigate group",
			&domain.TestItem{Issue: &domain.Issue{IssueTypeLocator: "ti_custom", Group: domain.IssueGroupToInvestigate}},
			false,
		},
		{
			"to investigate locator",
			&domain.TestItem{Issue: &domain.Issue{IssueTypeLocator: domain.ToInvestigateLocator}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ItemCanBeIndexed(tt.item))
		})
	}
}
