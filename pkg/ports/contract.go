package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID, "damped_sine", domain.Params{"a": 0.5, "w0": 3})

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, "damped_sine", loaded.SignalID)
		assert.Equal(t, domain.Params{"a": 0.5, "w0": 3}, loaded.Params)
	})

	t.Run("Isolation", func(t *testing.T) {
		state := domain.NewState(sessionID, "sine", domain.Params{"w0": 1})
		require.NoError(t, store.Save(ctx, sessionID, state))

		// Mutating the caller's copies must not leak into the store.
		state.Params["w0"] = 9
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1.0, loaded.Params["w0"])

		loaded.Params["w0"] = 7
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1.0, again.Params["w0"])
	})

	t.Run("Empty Params", func(t *testing.T) {
		id := sessionID + "-step"
		require.NoError(t, store.Save(ctx, id, domain.NewState(id, "unit_step", nil)))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loaded.Params)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID, "sine", nil))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1, "sine", nil))
		_ = store.Save(ctx, id2, domain.NewState(id2, "cosine", nil))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
