package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/laplace/internal/config"
	"github.com/aretw0/laplace/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer written by the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewRuntime_Memory(t *testing.T) {
	rt, err := NewRuntime(config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	_, err = rt.Explorer.StartSession(ctx, "s1", "sine")
	require.NoError(t, err)
	_, err = rt.Explorer.SessionFrame(ctx, "s1")
	require.NoError(t, err)

	families, err := rt.Registry.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["laplace_samples_total"])
	assert.True(t, names["laplace_signal_selections_total"])
	assert.True(t, names["laplace_store_operation_duration_seconds"])
}

func TestNewRuntime_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Store.Backend = config.BackendRedis
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Store.Redis.Lock = true

	rt, err := NewRuntime(cfg, logging.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	_, err = rt.Explorer.StartSession(ctx, "s1", "cosine")
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Store.Redis.Prefix+"s1"))

	ids, err := rt.Explorer.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestNewRuntime_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "etcd"
	_, err := NewRuntime(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer

	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, &out, ln, cfg, logging.NewNop())
	}()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(cfg.Server.ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, out.String(), "stopped gracefully")
}

func TestRunMCP_UnknownTransport(t *testing.T) {
	rt, err := NewRuntime(config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	err = RunMCP(context.Background(), rt.Explorer, "carrier-pigeon", 0, logging.NewNop())
	assert.ErrorContains(t, err, "unknown transport")
}
