package tests

import (
	"context"
	"testing"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
)

// ExplorerContractTest is a reusable test suite that verifies if an implementation complies with ports.Explorer.
func ExplorerContractTest(t *testing.T, explorer ports.Explorer) {
	t.Helper()
	ctx := context.Background()

	t.Run("Signals_Resolvable", func(t *testing.T) {
		signals := explorer.Signals()
		if len(signals) == 0 {
			t.Fatal("expected a non-empty catalog")
		}
		for _, s := range signals {
			got, err := explorer.Signal(s.ID)
			if err != nil {
				t.Fatalf("unexpected error resolving %s: %v", s.ID, err)
			}
			if got.ID != s.ID {
				t.Errorf("Signal(%q) returned %q", s.ID, got.ID)
			}
		}
	})

	t.Run("Signal_NotFound", func(t *testing.T) {
		_, err := explorer.Signal("non-existent-signal")
		if err == nil {
			t.Error("expected error for unknown signal, got nil")
		}
	})

	t.Run("Sample_Causal", func(t *testing.T) {
		for _, s := range explorer.Signals() {
			frame, err := explorer.Sample(ctx, s.ID, nil)
			if err != nil {
				t.Fatalf("unexpected error sampling %s: %v", s.ID, err)
			}
			for i, x := range frame.Time.X {
				if x < 0 && frame.Time.Y[i] != 0 {
					t.Errorf("%s: f(%v) = %v, want 0", s.ID, x, frame.Time.Y[i])
				}
			}
		}
	})

	t.Run("Evaluate_Consistent", func(t *testing.T) {
		for _, s := range explorer.Signals() {
			for _, w := range []float64{-3, -0.5, 0, 0.5, 1, 2.5} {
				p, err := explorer.Evaluate(s.ID, nil, 0, 0, w)
				if err != nil {
					t.Fatalf("unexpected error evaluating %s: %v", s.ID, err)
				}
				if p.FrequencyMagnitude != p.ComplexMagnitude {
					t.Errorf("%s at ω=%v: |F(jω)| = %v but |F(0+jω)| = %v", s.ID, w, p.FrequencyMagnitude, p.ComplexMagnitude)
				}
			}
		}
	})

	t.Run("Sample_UnknownParameter", func(t *testing.T) {
		_, err := explorer.Sample(ctx, "unit_step", domain.Params{"a": 1})
		if err == nil {
			t.Error("expected error for unknown parameter, got nil")
		}
	})
}
