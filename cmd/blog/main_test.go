package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	t.Run("listen failure cancels context", func(t *testing.T) {
		errInUse := errors.New("address already in use")

		serveCtx := serve(context.Background(), func() error { return errInUse })

		select {
		case <-serveCtx.Done():
		case <-time.After(time.Second):
			t.Fatal("context was not canceled after listen failed")
		}
		cause := context.Cause(serveCtx)
		require.ErrorIs(t, cause, errListenHTTP)
		require.ErrorIs(t, cause, errInUse)
	})

	t.Run("clean stop keeps context alive", func(t *testing.T) {
		serveCtx := serve(context.Background(), func() error { return nil })

		time.Sleep(20 * time.Millisecond)
		assert.NoError(t, serveCtx.Err())
	})

	t.Run("parent cancellation is not a listen failure", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		serveCtx := serve(ctx, func() error {
			<-release
			return nil
		})
		cancel()

		<-serveCtx.Done()
		assert.NotErrorIs(t, context.Cause(serveCtx), errListenHTTP)
	})
}
