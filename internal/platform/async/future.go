package async

import (
	"context"
)

// Future は非同期タスクの結果を表します
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed は既に結果が確定したFutureを返します
func Completed[T any](value T, err error) *Future[T] {
	f := newFuture[T]()
	f.complete(value, err)
	return f
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done は結果確定時にcloseされるチャネルを返します
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await は結果が確定するまで待ちます
// ctxがキャンセルされた場合は待機のみを中断し、タスク自体は継続します
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
