package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/config"
	httpAdapter "github.com/aretw0/laplace/pkg/adapters/http"
	"github.com/aretw0/laplace/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/laplace/pkg/adapters/redis"
	"github.com/aretw0/laplace/pkg/observability"
	"github.com/aretw0/laplace/pkg/persistence/middleware"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runtime is an Explorer wired to the configured store, with its metrics
// registry. Close releases the store connection.
type Runtime struct {
	Explorer *laplace.Explorer
	Registry *prometheus.Registry

	closers []io.Closer
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// NewRuntime builds the Explorer described by cfg. Lifecycle events are
// both logged and counted in the returned registry.
func NewRuntime(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Registry: prometheus.NewRegistry()}
	rt.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(rt.Registry)

	opts := []laplace.Option{
		laplace.WithLogger(logger),
		laplace.WithLifecycleHooks(observability.Combine(
			observability.LogHooks(logger),
			metrics.Hooks(),
		)),
	}

	var store ports.StateStore
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = memory.NewStore()
	case config.BackendRedis:
		rc := cfg.Store.Redis
		redisStore := redisAdapter.New(rc.Addr, rc.Password, rc.DB,
			redisAdapter.WithPrefix(rc.Prefix),
			redisAdapter.WithTTL(rc.TTL),
		)
		rt.closers = append(rt.closers, redisStore)
		store = redisStore
		if rc.Lock {
			opts = append(opts, laplace.WithLocker(redisAdapter.NewLocker(redisStore.Client(), rc.Prefix)))
		}
		logger.Info("Using Redis session store", "addr", rc.Addr, "prefix", rc.Prefix, "lock", rc.Lock)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	store = middleware.Chain(store,
		middleware.NewMetricsMiddleware(rt.Registry),
		middleware.NewCatalogMiddleware(),
	)
	opts = append(opts, laplace.WithStore(store))

	rt.Explorer = laplace.New(opts...)
	return rt, nil
}

// Serve runs the HTTP API on cfg.Server.Port until ctx is cancelled.
func Serve(ctx context.Context, w io.Writer, cfg config.Config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return ServeListener(ctx, w, ln, cfg, logger)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, w io.Writer, ln net.Listener, cfg config.Config, logger *slog.Logger) error {
	rt, err := NewRuntime(cfg, logger)
	if err != nil {
		ln.Close()
		return err
	}
	defer rt.Close()

	serverOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithTick(cfg.Stream.Tick),
	}
	if cfg.Server.Metrics {
		serverOpts = append(serverOpts, httpAdapter.WithMetricsHandler(
			promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{}),
		))
	}
	api := httpAdapter.NewServer(rt.Explorer, serverOpts...)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go api.Run(runCtx)

	srv := &http.Server{
		Handler:     api.Handler(),
		BaseContext: func(net.Listener) context.Context { return runCtx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Laplace server listening on %s", ln.Addr())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Request contexts derive from runCtx, so open SSE streams end here.
		stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(w, "Laplace server stopped gracefully")
		return nil
	}
}
