package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定
	Database DatabaseConfig

	// 実行中ステータスの共有先（未設定時はプロセス内で保持）
	Redis RedisConfig

	// アナライザー（インデックス）サービス設定
	Indexer IndexerConfig

	// ログ保持期間設定
	Retention RetentionConfig

	// アナライザー設定ファイル
	AnalyzerConfigFile string

	// ログ出力設定
	Log LogConfig
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

// RedisConfig はRedis接続設定
type RedisConfig struct {
	Addr      string // 空の場合はRedisを使用しない
	Password  string
	DB        int
	StatusTTL time.Duration
}

// Enabled はRedisを使用するかどうかを返します
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// IndexerConfig はアナライザーAPI設定
type IndexerConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// RetentionConfig はログ保持期間クリーンアップ設定
type RetentionConfig struct {
	KeepLogs    time.Duration
	Workers     int
	StorageRoot string // 添付ファイル本体の保存ディレクトリ
	Schedule    string // Cron形式の定期実行スケジュール
}

// LogConfig はログ出力設定
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "rpuser"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "reportportal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 0),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			StatusTTL: getEnvAsDuration("ANALYZER_STATUS_TTL", 2*time.Hour),
		},
		Indexer: IndexerConfig{
			BaseURL: getEnv("ANALYZER_URL", "http://localhost:5001"),
			Token:   getEnv("ANALYZER_TOKEN", ""),
			Timeout: getEnvAsDuration("ANALYZER_TIMEOUT", 5*time.Minute),
		},
		Retention: RetentionConfig{
			KeepLogs:    time.Duration(getEnvAsInt("RETENTION_KEEP_LOGS_DAYS", 90)) * 24 * time.Hour,
			Workers:     getEnvAsInt("RETENTION_WORKERS", 4),
			StorageRoot: getEnv("BINARY_STORAGE_ROOT", "/data/storage"),
			Schedule:    getEnv("RETENTION_SCHEDULE", "0 3 * * *"),
		},
		AnalyzerConfigFile: getEnv("ANALYZER_CONFIG_FILE", ""),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は環境変数を time.Duration として取得します（例: "30s", "2h"）
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
