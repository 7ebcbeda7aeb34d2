package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_ReturnsValue(t *testing.T) {
	ctx := context.Background()
	e := NewExecutor()

	f := Submit(ctx, e, func(ctx context.Context) (int64, error) {
		return 42, nil
	})

	v, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestSubmit_ReturnsError(t *testing.T) {
	ctx := context.Background()
	e := NewExecutor()
	expectedErr := errors.New("failed")

	f := Submit(ctx, e, func(ctx context.Context) (string, error) {
		return "", expectedErr
	})

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, expectedErr)
}

func TestSubmit_RecoversPanic(t *testing.T) {
	ctx := context.Background()
	e := NewExecutor()

	f := Submit(ctx, e, func(ctx context.Context) (int, error) {
		panic("boom")
	})

	_, err := f.Await(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task panicked: boom")
}

func TestSubmit_TaskContextIsNotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	e := NewExecutor()
	cancel()

	f := Submit(ctx, e, func(ctx context.Context) (error, error) {
		return ctx.Err(), nil
	})

	taskErr, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.NoError(t, taskErr)
}

func TestGo_WaitsOnShutdown(t *testing.T) {
	ctx := context.Background()
	e := NewExecutor()

	var done atomic.Int32
	for range 10 {
		e.Go(ctx, "test", func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
			return errors.New("ignored")
		})
	}

	require.NoError(t, e.Shutdown(ctx))
	assert.Equal(t, int32(10), done.Load())
}

func TestShutdown_Timeout(t *testing.T) {
	e := NewExecutor()
	unblock := make(chan struct{})
	defer close(unblock)

	e.Go(context.Background(), "blocked", func(ctx context.Context) error {
		<-unblock
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := e.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCompleted(t *testing.T) {
	f := Completed(int64(3), nil)

	select {
	case <-f.Done():
	default:
		t.Fatal("completed future must be done")
	}
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}
