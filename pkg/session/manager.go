package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/aretw0/laplace/pkg/sampler"
)

// DefaultLockTTL bounds how long a distributed session lock may be held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager owns the parameter state of every session: which signal is active
// and its current values. All mutations of one session are serialized.
// Locks are reference counted and dropped once no caller holds them.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	sampler *sampler.Sampler
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSampler sets the sampler used by Frame.
func WithSampler(s *sampler.Sampler) Option {
	return func(m *Manager) {
		m.sampler = s
	}
}

// WithLifecycleHooks registers the signal-select and param-change hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sampler == nil {
		m.sampler = sampler.New(sampler.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start activates a signal for the session with default parameter values.
// An existing session with the same ID is reset.
func (m *Manager) Start(ctx context.Context, sessionID, signalID string) (*domain.State, error) {
	sig, err := lookup(signalID)
	if err != nil {
		return nil, err
	}

	state := domain.NewState(sessionID, sig.ID, sig.Defaults())
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if err := m.store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Session started", "session_id", sessionID, "signal", sig.ID)
	m.emitSelect(ctx, state)
	return state, nil
}

// LoadOrStart loads a session, starting it on signalID if it does not exist.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID, signalID string) (*domain.State, error) {
	state, err := m.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}
	return m.Start(ctx, sessionID, signalID)
}

// Select switches the session to another signal. Parameter values are reset
// to the new signal's defaults; values never carry over between signals.
func (m *Manager) Select(ctx context.Context, sessionID, signalID string) (*domain.State, error) {
	sig, err := lookup(signalID)
	if err != nil {
		return nil, err
	}

	var state *domain.State
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		state = domain.NewState(current.SessionID, sig.ID, sig.Defaults())
		return m.store.Save(ctx, sessionID, state)
	})
	if err != nil {
		return nil, err
	}

	m.emitSelect(ctx, state)
	return state, nil
}

// SetParam sets one parameter of the active signal. The value is clamped
// into the parameter's range.
func (m *Manager) SetParam(ctx context.Context, sessionID, name string, value float64) (*domain.State, error) {
	return m.SetParams(ctx, sessionID, domain.Params{name: value})
}

// SetParams updates several parameters at once. Values are clamped; names
// the active signal does not declare are rejected and nothing is saved.
func (m *Manager) SetParams(ctx context.Context, sessionID string, params domain.Params) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		sig, err := lookup(current.SignalID)
		if err != nil {
			return err
		}

		merged := current.Params.Clone()
		for name, v := range params {
			merged[name] = v
		}
		resolved, err := sig.Resolve(merged)
		if err != nil {
			return err
		}

		state = domain.NewState(current.SessionID, sig.ID, resolved)
		return m.store.Save(ctx, sessionID, state)
	})
	if err != nil {
		return nil, err
	}

	if m.hooks.OnParamChange != nil {
		for _, name := range params.Names() {
			m.hooks.OnParamChange(ctx, &domain.SessionEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventParamChange, SessionID: sessionID},
				SignalID:  state.SignalID,
				Param:     name,
				Value:     state.Params.Get(name),
			})
		}
	}
	return state, nil
}

// Frame samples the session's current state.
func (m *Manager) Frame(ctx context.Context, sessionID string) (*sampler.Frame, error) {
	state, err := m.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.Render(ctx, state)
}

// Render samples a state snapshot without touching the store.
func (m *Manager) Render(ctx context.Context, state *domain.State) (*sampler.Frame, error) {
	sig, err := lookup(state.SignalID)
	if err != nil {
		return nil, err
	}
	return m.sampler.Sample(ctx, sig, state.Params)
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var state *domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, state *domain.State) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) emitSelect(ctx context.Context, state *domain.State) {
	if m.hooks.OnSignalSelect == nil {
		return
	}
	m.hooks.OnSignalSelect(ctx, &domain.SessionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSignalSelect, SessionID: state.SessionID},
		SignalID:  state.SignalID,
	})
}

func lookup(signalID string) (*catalog.Signal, error) {
	if signalID == "" {
		return catalog.Default(), nil
	}
	return catalog.Lookup(signalID)
}
