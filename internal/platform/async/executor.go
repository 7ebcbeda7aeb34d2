package async

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Executor は非同期タスクをgoroutineで実行します
//
// 同時実行数に上限はありません。投入済みタスクは呼び出し元のcontextがキャンセルされても
// 最後まで実行され、Shutdownで完了を待つことができます。
type Executor struct {
	wg     sync.WaitGroup
	logger *slog.Logger
}

// Option はExecutor構築時のオプション
type Option func(*Executor)

// WithLogger はロガーを差し替える
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor は新しいExecutorを作成します
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Go はfire-and-forgetでタスクを実行します
// タスクのエラーはログに記録され、呼び出し元へは返りません
func (e *Executor) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	taskCtx := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := run(taskCtx, fn); err != nil {
			e.logger.ErrorContext(taskCtx, "Async task failed", "task", name, "error", err)
		}
	}()
}

// Submit はタスクを実行し、結果を受け取るFutureを返します
func Submit[T any](ctx context.Context, e *Executor, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	taskCtx := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		var value T
		err := run(taskCtx, func(ctx context.Context) error {
			var err error
			value, err = fn(ctx)
			return err
		})
		f.complete(value, err)
	}()
	return f
}

// Shutdown は実行中のタスクが全て完了するまで待ちます
func (e *Executor) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to wait for async tasks: %w", ctx.Err())
	}
}

// run はタスクのpanicをエラーに変換して実行します
func run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx)
}
