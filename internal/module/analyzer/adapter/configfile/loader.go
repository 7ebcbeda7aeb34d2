// Package configfile はYAMLファイルからアナライザー設定を読み込みます
package configfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"gopkg.in/yaml.v3"
)

// File はアナライザー設定ファイルの構造です
//
//	default:
//	  number_of_log_lines: 3
//	projects:
//	  42:
//	    min_should_match: 95
type File struct {
	Default  yaml.Node           `yaml:"default"`
	Projects map[int64]yaml.Node `yaml:"projects"`
}

// Configs はプロジェクトごとに解決済みのアナライザー設定を保持します
type Configs struct {
	base     domain.AnalyzerConfig
	projects map[int64]domain.AnalyzerConfig
}

// Defaults はファイル無しで既定値のみを返すConfigsを作成します
func Defaults() *Configs {
	return &Configs{
		base:     domain.DefaultAnalyzerConfig(),
		projects: map[int64]domain.AnalyzerConfig{},
	}
}

// LoadFromPath は設定ファイルを読み込みます
// pathが空の場合は既定値を返します
func LoadFromPath(path string) (*Configs, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analyzer config: %w", err)
	}
	return Load(data)
}

// Load はYAMLバイト列から設定を読み込みます
// ファイルに記載の無い項目は既定値で補われます
func Load(data []byte) (*Configs, error) {
	cfgs := Defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfgs, nil
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse analyzer config yaml: %w", err)
	}

	if !f.Default.IsZero() {
		if err := f.Default.Decode(&cfgs.base); err != nil {
			return nil, fmt.Errorf("parse default analyzer config: %w", err)
		}
	}
	if err := Validate(cfgs.base); err != nil {
		return nil, fmt.Errorf("invalid default analyzer config: %w", err)
	}

	for projectID, node := range f.Projects {
		cfg := cfgs.base
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse analyzer config of project %d: %w", projectID, err)
		}
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid analyzer config of project %d: %w", projectID, err)
		}
		cfgs.projects[projectID] = cfg
	}

	return cfgs, nil
}

// For はプロジェクトのアナライザー設定を返します
// プロジェクト固有の設定が無い場合は既定の設定を返します
func (c *Configs) For(projectID int64) domain.AnalyzerConfig {
	if cfg, ok := c.projects[projectID]; ok {
		return cfg
	}
	return c.base
}

// Validate はアナライザー設定の値域を検証します
func Validate(cfg domain.AnalyzerConfig) error {
	var errs []error
	if cfg.MinShouldMatch < 0 || cfg.MinShouldMatch > 100 {
		errs = append(errs, fmt.Errorf("min_should_match must be between 0 and 100: %d", cfg.MinShouldMatch))
	}
	if cfg.MinDocFreq < 0 {
		errs = append(errs, fmt.Errorf("min_doc_freq must not be negative: %d", cfg.MinDocFreq))
	}
	if cfg.MinTermFreq < 0 {
		errs = append(errs, fmt.Errorf("min_term_freq must not be negative: %d", cfg.MinTermFreq))
	}
	if cfg.NumberOfLogLines < domain.AllLogLines {
		errs = append(errs, fmt.Errorf("number_of_log_lines must be -1 or greater: %d", cfg.NumberOfLogLines))
	}
	switch cfg.AnalyzerMode {
	case domain.AnalyzerModeAllLaunches, domain.AnalyzerModeLaunchName,
		domain.AnalyzerModeCurrentLaunch, domain.AnalyzerModePreviousLaunch:
	default:
		errs = append(errs, fmt.Errorf("unknown analyzer_mode: %q", cfg.AnalyzerMode))
	}
	return errors.Join(errs...)
}
