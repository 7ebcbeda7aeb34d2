package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPath_EmptyPathReturnsDefaults(t *testing.T) {
	cfgs, err := LoadFromPath("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAnalyzerConfig(), cfgs.For(1))
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	data := []byte(`
default:
  number_of_log_lines: 3
  analyzer_mode: LAUNCH_NAME
projects:
  42:
    min_should_match: 95
    auto_analyzer_enabled: false
`)
	cfgs, err := Load(data)
	require.NoError(t, err)

	base := cfgs.For(1)
	assert.Equal(t, 3, base.NumberOfLogLines)
	assert.Equal(t, domain.AnalyzerModeLaunchName, base.AnalyzerMode)
	assert.Equal(t, 80, base.MinShouldMatch)
	assert.True(t, base.AutoAnalyzerEnabled)

	project := cfgs.For(42)
	assert.Equal(t, 95, project.MinShouldMatch)
	assert.False(t, project.AutoAnalyzerEnabled)
	// プロジェクト設定は default セクションを継承する
	assert.Equal(t, 3, project.NumberOfLogLines)
	assert.Equal(t, 7, project.MinDocFreq)
}

func TestLoad_EmptyDocument(t *testing.T) {
	cfgs, err := Load([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAnalyzerConfig(), cfgs.For(7))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "syntax", data: "default: [", want: "parse analyzer config yaml"},
		{name: "mode", data: "default:\n  analyzer_mode: SOMETIMES\n", want: "unknown analyzer_mode"},
		{name: "project range", data: "projects:\n  5:\n    min_should_match: 120\n", want: "project 5"},
		{name: "log lines", data: "default:\n  number_of_log_lines: -2\n", want: "number_of_log_lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromPath_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default:\n  min_doc_freq: 2\n"), 0o600))

	cfgs, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfgs.For(1).MinDocFreq)

	_, err = LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
