package ports

import (
	"context"

	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
)

// Explorer is the stateless surface used by adapters (HTTP, MCP) that pass
// the full parameter state with every request.
type Explorer interface {
	// Signals returns the catalog in display order.
	Signals() []*catalog.Signal

	// Signal returns one catalog entry, or domain.ErrUnknownSignal.
	Signal(id string) (*catalog.Signal, error)

	// Sample computes the frame of a signal at the given parameter values.
	Sample(ctx context.Context, signalID string, params domain.Params) (*sampler.Frame, error)

	// Evaluate computes every view at a single point.
	Evaluate(signalID string, params domain.Params, t, sigma, omega float64) (sampler.Point, error)
}

// SessionExplorer adds server-side parameter state, keyed by session ID.
type SessionExplorer interface {
	Explorer

	// StartSession creates (or resets) a session on the given signal with default params.
	StartSession(ctx context.Context, sessionID, signalID string) (*domain.State, error)

	// Session loads a session, or domain.ErrSessionNotFound.
	Session(ctx context.Context, sessionID string) (*domain.State, error)

	// SelectSignal switches the session to another signal and resets its params.
	SelectSignal(ctx context.Context, sessionID, signalID string) (*domain.State, error)

	// SetParams updates some parameter values; out-of-range values are clamped.
	SetParams(ctx context.Context, sessionID string, params domain.Params) (*domain.State, error)

	// SessionFrame samples the current state of a session.
	SessionFrame(ctx context.Context, sessionID string) (*sampler.Frame, error)

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, sessionID string) error

	// Sessions lists active session IDs.
	Sessions(ctx context.Context) ([]string, error)
}
