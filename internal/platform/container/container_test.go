package container

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	analyzertesting "github.com/jinford/log-indexer/internal/module/analyzer/testing"
	retentiontesting "github.com/jinford/log-indexer/internal/module/retention/testing"
	"github.com/jinford/log-indexer/internal/platform/config"
	"github.com/jinford/log-indexer/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Indexer:   config.IndexerConfig{BaseURL: "http://analyzer:5001"},
		Retention: config.RetentionConfig{Workers: 2, StorageRoot: t.TempDir()},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewWithDB(t *testing.T) {
	c, err := NewWithDB(testConfig(t), &database.DB{}, WithContainerLogger(testLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	assert.NotNil(t, c.LogIndexer)
	assert.NotNil(t, c.LogCleaner)
	assert.NotNil(t, c.AnalyzerConfigs)

	job, err := c.RetentionJob()
	require.NoError(t, err)
	assert.NotNil(t, job)

	scheduler, err := c.RetentionScheduler()
	require.NoError(t, err)
	assert.NotNil(t, scheduler)
}

func TestNewWithDB_WithoutBinaryStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Retention.StorageRoot = filepath.Join(t.TempDir(), "missing")

	c, err := NewWithDB(cfg, &database.DB{}, WithContainerLogger(testLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	assert.NotNil(t, c.LogIndexer)
	_, err = c.RetentionJob()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention is not available")
}

func TestNewWithDB_Overrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.Indexer.BaseURL = ""
	cfg.Retention.StorageRoot = ""

	status := &analyzertesting.MockStatusCache{}
	c, err := NewWithDB(cfg, &database.DB{},
		WithContainerLogger(testLogger()),
		WithContainerIndexerClient(&analyzertesting.MockIndexerClient{}),
		WithContainerStatusCache(status),
		WithContainerBinaryStore(retentiontesting.NewInMemoryBinaryStore()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	_, err = c.RetentionJob()
	require.NoError(t, err)
}

func TestNewWithDB_InvalidAnalyzerConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.AnalyzerConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewWithDB(cfg, &database.DB{}, WithContainerLogger(testLogger()))
	require.Error(t, err)
}

func TestNewWithDB_InvalidIndexerURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Indexer.BaseURL = ""

	_, err := NewWithDB(cfg, &database.DB{}, WithContainerLogger(testLogger()))
	require.Error(t, err)
}
