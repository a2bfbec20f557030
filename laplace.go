package laplace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/adapters/memory"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/aretw0/laplace/pkg/session"
)

// Explorer is the high-level entry point of the library.
// It ties the catalog, the sampler and the session manager together.
type Explorer struct {
	sampler  *sampler.Sampler
	sessions *session.Manager
	store    ports.StateStore
	locker   ports.DistributedLocker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

var _ ports.SessionExplorer = (*Explorer)(nil)

// Option defines a functional option for configuring the Explorer.
type Option func(*Explorer)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Explorer) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithStore sets where session state is persisted (default: in memory).
func WithStore(store ports.StateStore) Option {
	return func(e *Explorer) {
		e.store = store
	}
}

// WithLocker enables distributed session locking, for replicas sharing a store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Explorer) {
		e.locker = locker
	}
}

// New initializes an Explorer.
func New(opts ...Option) *Explorer {
	e := &Explorer{}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}

	e.sampler = sampler.New(
		sampler.WithLifecycleHooks(e.hooks),
		sampler.WithLogger(e.logger),
	)

	managerOpts := []session.Option{
		session.WithLogger(e.logger),
		session.WithSampler(e.sampler),
		session.WithLifecycleHooks(e.hooks),
	}
	if e.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(e.store, managerOpts...)
	return e
}

// Signals returns the catalog in display order.
func (e *Explorer) Signals() []*catalog.Signal {
	return catalog.List()
}

// Signal returns one catalog entry.
func (e *Explorer) Signal(id string) (*catalog.Signal, error) {
	return catalog.Lookup(id)
}

// Sample computes the frame of a signal. Missing params take their defaults
// and out-of-range values are clamped.
func (e *Explorer) Sample(ctx context.Context, signalID string, params domain.Params) (*sampler.Frame, error) {
	sig, err := catalog.Lookup(signalID)
	if err != nil {
		return nil, err
	}
	return e.sampler.Sample(ctx, sig, params)
}

// Evaluate computes every view at a single point.
func (e *Explorer) Evaluate(signalID string, params domain.Params, t, sigma, omega float64) (sampler.Point, error) {
	sig, err := catalog.Lookup(signalID)
	if err != nil {
		return sampler.Point{}, err
	}
	return sampler.Evaluate(sig, params, t, sigma, omega)
}

// StartSession creates or resets a session. An empty signalID selects the
// first catalog entry.
func (e *Explorer) StartSession(ctx context.Context, sessionID, signalID string) (*domain.State, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidParameter)
	}
	return e.sessions.Start(ctx, sessionID, signalID)
}

// Session loads a session.
func (e *Explorer) Session(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.sessions.Load(ctx, sessionID)
}

// SelectSignal switches a session to another signal, resetting its params.
func (e *Explorer) SelectSignal(ctx context.Context, sessionID, signalID string) (*domain.State, error) {
	return e.sessions.Select(ctx, sessionID, signalID)
}

// SetParams updates parameter values of a session, clamped into range.
func (e *Explorer) SetParams(ctx context.Context, sessionID string, params domain.Params) (*domain.State, error) {
	return e.sessions.SetParams(ctx, sessionID, params)
}

// SessionFrame samples the current state of a session.
func (e *Explorer) SessionFrame(ctx context.Context, sessionID string) (*sampler.Frame, error) {
	return e.sessions.Frame(ctx, sessionID)
}

// DeleteSession removes a session.
func (e *Explorer) DeleteSession(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// Sessions lists active session IDs.
func (e *Explorer) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Manager exposes the session manager, e.g. to feed a session.Coalescer.
func (e *Explorer) Manager() *session.Manager {
	return e.sessions
}

// Logger returns the configured logger.
func (e *Explorer) Logger() *slog.Logger {
	return e.logger
}
