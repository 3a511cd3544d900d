package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub/pkg/shutdown"
)

func TestWaitContext_RunsHooksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- shutdown.WaitContext(ctx, time.Second, hook, hook) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitContext did not return")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitContext_HookContextNotCancelledByParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shutdown.WaitContext(ctx, time.Second, func(hookCtx context.Context) error {
		return hookCtx.Err()
	})
	require.NoError(t, err)
}

func TestWaitContext_CollectsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errBoom := errors.New("boom")
	err := shutdown.WaitContext(ctx, time.Second,
		func(context.Context) error { return errBoom },
		func(context.Context) error { return nil },
	)
	require.ErrorIs(t, err, errBoom)
}

func TestWaitContext_RespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := shutdown.WaitContext(ctx, 200*time.Millisecond, func(hookCtx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	})

	require.ErrorIs(t, err, shutdown.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitContext_RunsHooksConcurrently(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := func(context.Context) error {
		time.Sleep(300 * time.Millisecond)
		return nil
	}

	start := time.Now()
	require.NoError(t, shutdown.WaitContext(ctx, 2*time.Second, slow, slow, slow))
	assert.Less(t, time.Since(start), 800*time.Millisecond)
}

func TestWait_Signal(t *testing.T) {
	var called atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(time.Second, func(context.Context) error {
			called.Store(true)
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)
	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after SIGTERM")
	}
	assert.True(t, called.Load())
}
