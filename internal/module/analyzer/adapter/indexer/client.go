package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
)

// Client はアナライザーのインデックスAPIを呼び出すHTTPクライアントです
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.IndexerClient = (*Client)(nil)

// Option はClient構築時のオプション
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New は新しいClientを作成します
// tokenが空でない場合はBearerトークンとして送信します
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("indexer: baseURL is required")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := &http.Client{}
	if cfg.httpClient != nil {
		// 呼び出し元のクライアントは変更しない
		hc := *cfg.httpClient
		httpClient = &hc
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient は既定のHTTPクライアントを差し替える
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger はロガーを差し替える
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout はHTTPクライアントのタイムアウトを設定する
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d < 0 {
			return fmt.Errorf("indexer: negative timeout %s", d)
		}
		cfg.timeout = d
		return nil
	}
}

// Index はローンチ群をインデックス化し、作成されたドキュメント数を返します
func (c *Client) Index(ctx context.Context, launches []domain.IndexLaunch) (int64, error) {
	if len(launches) == 0 {
		return 0, nil
	}

	var rs BatchIndexRS
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/_index", "index logs", launches, &rs); err != nil {
		return 0, err
	}
	if rs.Errors {
		c.logger.WarnContext(ctx, "Analyzer reported indexing errors",
			"created", rs.Created(),
			"failed", rs.Failed(),
		)
	}
	return rs.Created(), nil
}

// DeleteIndex はプロジェクトのインデックス全体を削除します
func (c *Client) DeleteIndex(ctx context.Context, projectID int64) error {
	u := fmt.Sprintf("%s/_index/%d", c.baseURL, projectID)
	return c.doJSON(ctx, http.MethodDelete, u, "delete index", nil, nil)
}

// CleanIndex はインデックスから指定ログのドキュメントを削除します
func (c *Client) CleanIndex(ctx context.Context, indexID int64, logIDs []int64) error {
	if len(logIDs) == 0 {
		return nil
	}
	rq := CleanIndexRQ{Project: indexID, IDs: logIDs}
	return c.doJSON(ctx, http.MethodPost, c.baseURL+"/_index/clean", "clean index", rq, nil)
}

// doJSON はHTTPリクエストを実行し、JSONレスポンスをdstへデコードします
// エラーステータスの場合は*APIErrorを返します
func (c *Client) doJSON(ctx context.Context, method, url, operation string, payload any, dst any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Analyzer request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Analyzer response", "operation", operation, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		var errRS ErrorRS
		if json.Unmarshal(respBody, &errRS) == nil && errRS.Message != "" {
			return newAPIError(operation, resp.StatusCode, errRS.Message)
		}
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}
