package grpc_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcAdapter "bloghub/internal/blog/adapters/grpc"
	"bloghub/internal/blog/config"
)

type fakeStore struct {
	down atomic.Bool
}

func (f *fakeStore) Ping(context.Context) error {
	if f.down.Load() {
		return errors.New("store is down")
	}
	return nil
}

func startServer(t *testing.T) (*grpcAdapter.Server, healthpb.HealthClient) {
	t.Helper()
	ctx := context.Background()

	server := grpcAdapter.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	require.NoError(t, server.Start(ctx))
	require.NotEmpty(t, server.Addr())

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return server, healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_HealthFollowsStore(t *testing.T) {
	ctx := context.Background()
	server, client := startServer(t)
	store := &fakeStore{}

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ""))

	server.CheckStore(ctx, store)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, grpcAdapter.ServiceName))

	store.down.Store(true)
	server.CheckStore(ctx, store)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ""))

	store.down.Store(false)
	server.CheckStore(ctx, store)
	server.Stop(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := client.Check(checkCtx, &healthpb.HealthCheckRequest{})
	assert.Error(t, err, "server must be stopped")
}

func TestServer_WatchStore(t *testing.T) {
	server, client := startServer(t)
	defer server.Stop(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		server.WatchStore(ctx, &fakeStore{}, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WatchStore did not return after cancel")
	}
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	first, _ := startServer(t)
	defer first.Stop(context.Background())

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := grpcAdapter.New(&config.GRPCConfig{Host: "127.0.0.1", Port: port})
	err = second.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), grpcAdapter.ErrServerStart)
}
