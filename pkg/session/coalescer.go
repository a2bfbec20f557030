package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/domain"
)

// DefaultTick is one display refresh at 60Hz.
const DefaultTick = 16 * time.Millisecond

// RenderFunc receives the latest state of a session.
type RenderFunc func(ctx context.Context, state *domain.State)

// Coalescer sits between rapid parameter edits and the renderer. It keeps
// only the latest state per session and renders each session at most once
// per tick; intermediate states are dropped.
type Coalescer struct {
	tick   time.Duration
	render RenderFunc
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]*domain.State
	wake    chan struct{}
}

// CoalescerOption configures a Coalescer.
type CoalescerOption func(*Coalescer)

// WithTick sets the render interval.
func WithTick(d time.Duration) CoalescerOption {
	return func(c *Coalescer) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithCoalescerLogger sets the logger.
func WithCoalescerLogger(logger *slog.Logger) CoalescerOption {
	return func(c *Coalescer) {
		c.logger = logger
	}
}

// NewCoalescer creates a Coalescer that calls render with the latest states.
func NewCoalescer(render RenderFunc, opts ...CoalescerOption) *Coalescer {
	c := &Coalescer{
		tick:    DefaultTick,
		render:  render,
		logger:  logging.NewNop(),
		pending: make(map[string]*domain.State),
		wake:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit records state as the latest for its session, replacing any state
// still waiting for the next tick.
func (c *Coalescer) Submit(state *domain.State) {
	c.mu.Lock()
	if prev, ok := c.pending[state.SessionID]; ok {
		c.logger.Debug("Dropping superseded state", "session_id", prev.SessionID)
	}
	c.pending[state.SessionID] = state.Clone()
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Pending reports how many sessions are waiting to be rendered.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Flush renders every pending state now.
func (c *Coalescer) Flush(ctx context.Context) {
	c.mu.Lock()
	batch := c.pending
	c.pending = make(map[string]*domain.State, len(batch))
	c.mu.Unlock()

	for _, state := range batch {
		c.render(ctx, state)
	}
}

// Run renders pending states once per tick until ctx is canceled. Idle
// periods cost nothing: the timer only runs while states are pending.
func (c *Coalescer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.wake:
		}

		timer := time.NewTimer(c.tick)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		c.Flush(ctx)
	}
}
