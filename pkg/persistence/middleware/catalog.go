package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
)

type catalogMiddleware struct {
	next ports.StateStore
}

// NewCatalogMiddleware checks states against the signal catalog.
// Save rejects states whose signal is unknown. Load repairs states written
// by another process or an older catalog: unknown parameters are dropped,
// missing ones take their default and out-of-range values are clamped.
func NewCatalogMiddleware() Middleware {
	return func(next ports.StateStore) ports.StateStore {
		return &catalogMiddleware{next: next}
	}
}

func (m *catalogMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	if _, err := catalog.Lookup(state.SignalID); err != nil {
		return fmt.Errorf("refusing to save session %q: %w", sessionID, err)
	}
	return m.next.Save(ctx, sessionID, state)
}

func (m *catalogMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	state, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sig, err := catalog.Lookup(state.SignalID)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, err)
	}

	repaired := state.Clone()
	repaired.Params = sig.Defaults()
	for name, v := range state.Params {
		if spec, ok := sig.Parameter(name); ok {
			repaired.Params[name] = spec.Clamp(v)
		}
	}
	return repaired, nil
}

func (m *catalogMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *catalogMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
