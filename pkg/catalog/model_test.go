package catalog_test

import (
	"math"
	"testing"

	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func resolve(t *testing.T, id string, params domain.Params) (catalog.Model, domain.Params) {
	t.Helper()
	sig, err := catalog.Lookup(id)
	require.NoError(t, err)
	resolved, err := sig.Resolve(params)
	require.NoError(t, err)
	return sig.Model(), resolved
}

func mustFloat(t *testing.T, v domain.Value) float64 {
	t.Helper()
	f, ok := v.Float()
	require.True(t, ok, "expected a defined value")
	return f
}

func TestModels_Causality(t *testing.T) {
	for _, sig := range catalog.List() {
		t.Run(sig.ID, func(t *testing.T) {
			model, params := resolve(t, sig.ID, nil)
			for _, tt := range []float64{-1, -0.5, -0.05, -1e-12} {
				assert.Equal(t, 0.0, model.Time(tt, params), "f(%v)", tt)
			}
		})
	}
}

func TestModels_ComplexReducesToFrequencyOnImaginaryAxis(t *testing.T) {
	omegas := domain.Grid{Start: -10, Stop: 10, Step: 0.05}.Points()
	for _, sig := range catalog.List() {
		t.Run(sig.ID, func(t *testing.T) {
			// Defaults plus both ends of every slider.
			variants := []domain.Params{sig.Defaults()}
			for _, p := range sig.Parameters {
				variants = append(variants, domain.Params{p.Name: p.Min}, domain.Params{p.Name: p.Max})
			}
			for _, v := range variants {
				model, params := resolve(t, sig.ID, v)
				for _, w := range omegas {
					assert.Equal(t, model.FrequencyMagnitude(w, params), model.ComplexMagnitude(0, w, params), "ω=%v params=%v", w, params)
				}
			}
		})
	}
}

func TestModels_PhaseSharesMagnitudeGaps(t *testing.T) {
	omegas := domain.Grid{Start: -10, Stop: 10, Step: 0.05}.Points()
	for _, sig := range catalog.List() {
		t.Run(sig.ID, func(t *testing.T) {
			model, params := resolve(t, sig.ID, nil)
			for _, w := range omegas {
				assert.Equal(t,
					model.FrequencyMagnitude(w, params).IsDefined(),
					model.FrequencyPhase(w, params).IsDefined(),
					"ω=%v", w)
			}
		})
	}
}

func TestUnitStep(t *testing.T) {
	model, params := resolve(t, "unit_step", nil)

	assert.Equal(t, 1.0, model.Time(0, params))
	assert.Equal(t, 1.0, model.Time(7, params))

	assert.Equal(t, domain.Undefined, model.FrequencyMagnitude(0, params))
	assert.Equal(t, domain.Undefined, model.FrequencyPhase(0, params))
	assert.InDelta(t, 0.5, mustFloat(t, model.FrequencyMagnitude(2, params)), tol)
	assert.InDelta(t, 0.5, mustFloat(t, model.FrequencyMagnitude(-2, params)), tol)

	assert.InDelta(t, -math.Pi/2, mustFloat(t, model.FrequencyPhase(2, params)), tol)
	assert.InDelta(t, math.Pi/2, mustFloat(t, model.FrequencyPhase(-2, params)), tol)

	assert.Equal(t, domain.Undefined, model.ComplexMagnitude(0, 0, params))
	assert.InDelta(t, 0.2, mustFloat(t, model.ComplexMagnitude(3, 4, params)), tol)
}

func TestExponential(t *testing.T) {
	model, params := resolve(t, "exponential", domain.Params{catalog.ParamDecay: 1})

	assert.InDelta(t, 1.0, model.Time(0, params), tol)
	assert.InDelta(t, math.Exp(-1), model.Time(1, params), tol)
	assert.InDelta(t, 0.3679, model.Time(1, params), 1e-4)

	assert.InDelta(t, 1/math.Sqrt2, mustFloat(t, model.FrequencyMagnitude(1, params)), tol)
	assert.InDelta(t, 1.0, mustFloat(t, model.FrequencyMagnitude(0, params)), tol)
	assert.InDelta(t, -math.Pi/4, mustFloat(t, model.FrequencyPhase(1, params)), tol)

	// Pole at s = -a.
	assert.Equal(t, domain.Undefined, model.ComplexMagnitude(-1, 0, params))
}

func TestExponentialPole_IsDistinctFromDecayForm(t *testing.T) {
	decay, decayParams := resolve(t, "exponential", domain.Params{catalog.ParamDecay: 2})
	pole, poleParams := resolve(t, "exponential_pole", domain.Params{catalog.ParamPole: -2})

	// e^{-2t} either way, but the parameters carry opposite signs.
	for _, tt := range []float64{0, 0.5, 1, 3} {
		assert.InDelta(t, decay.Time(tt, decayParams), pole.Time(tt, poleParams), tol)
	}
	assert.Equal(t, domain.Undefined, pole.ComplexMagnitude(-2, 0, poleParams))

	// At σ₀ = 0 the pole reaches the imaginary axis.
	_, origin := resolve(t, "exponential_pole", domain.Params{catalog.ParamPole: 0})
	assert.Equal(t, domain.Undefined, pole.FrequencyMagnitude(0, origin))
}

func TestSine(t *testing.T) {
	model, params := resolve(t, "sine", domain.Params{catalog.ParamFrequency: 1})

	assert.Equal(t, 0.0, model.Time(0, params))
	assert.InDelta(t, 1.0, model.Time(math.Pi/2, params), tol)

	assert.Equal(t, domain.Undefined, model.FrequencyMagnitude(1, params))
	assert.Equal(t, domain.Undefined, model.FrequencyMagnitude(-1, params))
	assert.Equal(t, domain.Undefined, model.FrequencyPhase(1, params))
	assert.InDelta(t, 1.0, mustFloat(t, model.FrequencyMagnitude(0, params)), tol)

	// F(jω) is real: phase 0 below resonance, π above it.
	assert.InDelta(t, 0, mustFloat(t, model.FrequencyPhase(0.5, params)), tol)
	assert.InDelta(t, math.Pi, mustFloat(t, model.FrequencyPhase(2, params)), tol)
	assert.InDelta(t, math.Pi, mustFloat(t, model.FrequencyPhase(-2, params)), tol)
}

func TestSine_PoleWithinRounding(t *testing.T) {
	// 0.7 is not representable; the grid point and the slider value differ in the last bits.
	omegas := domain.Grid{Start: -10, Stop: 10, Step: 0.05}.Points()
	near := omegas[214]
	require.InDelta(t, 0.7, near, 1e-12)

	model, params := resolve(t, "sine", domain.Params{catalog.ParamFrequency: 0.7})
	assert.Equal(t, domain.Undefined, model.FrequencyMagnitude(near, params))
	assert.Equal(t, domain.Undefined, model.FrequencyPhase(near, params))
}

func TestCosine(t *testing.T) {
	model, params := resolve(t, "cosine", domain.Params{catalog.ParamFrequency: 2})

	assert.Equal(t, 1.0, model.Time(0, params))
	assert.InDelta(t, math.Cos(2), model.Time(1, params), tol)

	assert.InDelta(t, 0, mustFloat(t, model.FrequencyMagnitude(0, params)), tol)
	assert.Equal(t, domain.Undefined, model.FrequencyMagnitude(2, params))
	assert.InDelta(t, 1.0/3, mustFloat(t, model.FrequencyMagnitude(1, params)), tol)

	assert.InDelta(t, math.Pi/2, mustFloat(t, model.FrequencyPhase(1, params)), tol)
	assert.InDelta(t, -math.Pi/2, mustFloat(t, model.FrequencyPhase(3, params)), tol)
}

func TestDampedSine(t *testing.T) {
	model, params := resolve(t, "damped_sine", nil)
	assert.Equal(t, domain.Params{catalog.ParamDecay: 0.5, catalog.ParamFrequency: 3}, params)

	tt := 0.4
	assert.InDelta(t, math.Exp(-0.5*tt)*math.Sin(3*tt), model.Time(tt, params), tol)

	// |F(j0)| = ω₀ / (a² + ω₀²)
	assert.InDelta(t, 3/(0.25+9), mustFloat(t, model.FrequencyMagnitude(0, params)), tol)
	assert.Equal(t, domain.Undefined, model.ComplexMagnitude(-0.5, 3, params))
	assert.Equal(t, domain.Undefined, model.ComplexMagnitude(-0.5, -3, params))
}

func TestDampedSine_DecayDoesNotMovePoleHeight(t *testing.T) {
	omegas := domain.Grid{Start: -10, Stop: 10, Step: 0.05}.Points()
	gaps := func(model catalog.Model, params domain.Params) []float64 {
		var out []float64
		for _, w := range omegas {
			if !model.FrequencyMagnitude(w, params).IsDefined() {
				out = append(out, w)
			}
		}
		return out
	}

	base, baseParams := resolve(t, "damped_sine", domain.Params{catalog.ParamDecay: 0.5, catalog.ParamFrequency: 2})
	want := gaps(base, baseParams)

	for _, a := range []float64{0.1, 1, 2.5, 5} {
		model, params := resolve(t, "damped_sine", domain.Params{catalog.ParamDecay: a, catalog.ParamFrequency: 2})
		assert.Equal(t, want, gaps(model, params), "a=%v", a)
		// Poles at -a ± j2 for every a.
		assert.Equal(t, domain.Undefined, model.ComplexMagnitude(-a, 2, params), "a=%v", a)
		assert.Equal(t, domain.Undefined, model.ComplexMagnitude(-a, -2, params), "a=%v", a)
		assert.True(t, model.ComplexMagnitude(-a, 2.4, params).IsDefined(), "a=%v", a)
	}
}

func TestHyperbolic(t *testing.T) {
	sinh, params := resolve(t, "sinh", domain.Params{catalog.ParamRate: 2})
	assert.InDelta(t, math.Sinh(2), sinh.Time(1, params), tol)
	assert.InDelta(t, 0.5, mustFloat(t, sinh.FrequencyMagnitude(0, params)), tol)
	assert.Equal(t, domain.Undefined, sinh.ComplexMagnitude(2, 0, params))
	assert.Equal(t, domain.Undefined, sinh.ComplexMagnitude(-2, 0, params))

	cosh, params := resolve(t, "cosh", domain.Params{catalog.ParamRate: 2})
	assert.InDelta(t, 1.0, cosh.Time(0, params), tol)
	assert.InDelta(t, math.Cosh(2), cosh.Time(1, params), tol)
	assert.InDelta(t, 0, mustFloat(t, cosh.FrequencyMagnitude(0, params)), tol)
	// |jω / (-ω² - 4)| at ω = 2 is 2/8.
	assert.InDelta(t, 0.25, mustFloat(t, cosh.FrequencyMagnitude(2, params)), tol)
	assert.Equal(t, domain.Undefined, cosh.ComplexMagnitude(2, 0, params))
}

func TestModels_RootsAgreeWithTransfer(t *testing.T) {
	for _, sig := range catalog.List() {
		t.Run(sig.ID, func(t *testing.T) {
			model, params := resolve(t, sig.ID, nil)
			poles, zeros := model.Roots(params)
			require.NotEmpty(t, poles)

			for _, p := range poles {
				assert.Equal(t, domain.Undefined, model.ComplexMagnitude(real(p), imag(p), params), "pole %v", p)
			}
			for _, z := range zeros {
				assert.InDelta(t, 0, mustFloat(t, model.ComplexMagnitude(real(z), imag(z), params)), tol, "zero %v", z)
			}
		})
	}

	model, params := resolve(t, "damped_sine", domain.Params{catalog.ParamDecay: 1.5, catalog.ParamFrequency: 4})
	poles, zeros := model.Roots(params)
	assert.Equal(t, []complex128{complex(-1.5, 4), complex(-1.5, -4)}, poles)
	assert.Empty(t, zeros)
}
