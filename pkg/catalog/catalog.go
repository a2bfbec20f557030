package catalog

import (
	"fmt"
	"slices"

	"github.com/aretw0/laplace/pkg/domain"
)

// Kind selects the evaluation variant of a catalog entry.
type Kind int

const (
	KindUnitStep Kind = iota
	KindExponential
	KindExponentialPole
	KindSine
	KindCosine
	KindDampedSine
	KindSinh
	KindCosh
)

var kindNames = [...]string{
	KindUnitStep:        "unit_step",
	KindExponential:     "exponential",
	KindExponentialPole: "exponential_pole",
	KindSine:            "sine",
	KindCosine:          "cosine",
	KindDampedSine:      "damped_sine",
	KindSinh:            "sinh",
	KindCosh:            "cosh",
}

var models = [...]Model{
	KindUnitStep:        rational{unitStep{}},
	KindExponential:     rational{exponential{}},
	KindExponentialPole: rational{exponentialPole{}},
	KindSine:            rational{sine{}},
	KindCosine:          rational{cosine{}},
	KindDampedSine:      rational{dampedSine{}},
	KindSinh:            rational{hyperbolicSine{}},
	KindCosh:            rational{hyperbolicCosine{}},
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ModelFor returns the evaluators of a kind. It panics on an unknown kind,
// which can only come from a programming error.
func ModelFor(k Kind) Model {
	return models[k]
}

// Signal is a catalog entry: its definition and the variant that evaluates it.
type Signal struct {
	domain.SignalDefinition
	Kind Kind `json:"kind"`
}

// Model returns the evaluators for this entry.
func (s *Signal) Model() Model {
	return ModelFor(s.Kind)
}

var (
	decay = domain.ParameterSpec{
		Name: ParamDecay, Label: "Decay (a)", Default: 1, Min: 0.1, Max: 5, Step: 0.1,
	}
	frequency = domain.ParameterSpec{
		Name: ParamFrequency, Label: "Frequency (ω₀)", Default: 1, Min: 0.5, Max: 10, Step: 0.1,
	}
	pole = domain.ParameterSpec{
		Name: ParamPole, Label: "Pole (σ₀)", Default: -1, Min: -5, Max: 0, Step: 0.1,
	}
	rate = domain.ParameterSpec{
		Name: ParamRate, Label: "Rate (b)", Default: 1, Min: 0.1, Max: 3, Step: 0.1,
	}
)

func with(spec domain.ParameterSpec, def float64) domain.ParameterSpec {
	spec.Default = def
	return spec
}

// table is the static catalog, in display order.
var table = []*Signal{
	{
		Kind: KindUnitStep,
		SignalDefinition: domain.SignalDefinition{
			ID:             "unit_step",
			DisplayName:    "Unit Step",
			FormulaTime:    `f(t) = u(t) = \begin{cases} 1, & t \ge 0 \\ 0, & t < 0 \end{cases}`,
			FormulaLaplace: `F(s) = \frac{1}{s}`,
			Poles:          "s = 0",
			Description:    "The Heaviside step switches on at t = 0 and stays on. Its transform has a single pole at the origin, so |F(jω)| = 1/|ω| diverges at ω = 0 and the phase is a constant -π/2 for ω > 0 and +π/2 for ω < 0.",
		},
	},
	{
		Kind: KindExponential,
		SignalDefinition: domain.SignalDefinition{
			ID:             "exponential",
			DisplayName:    "Exponential",
			FormulaTime:    `f(t) = e^{-at}, \quad a > 0`,
			FormulaLaplace: `F(s) = \frac{1}{s+a}`,
			Poles:          "s = -a",
			Description:    "A decaying exponential. The single real pole at s = -a lies left of the imaginary axis, so the frequency response is finite everywhere: a low-pass curve with |F(j0)| = 1/a.",
			Parameters:     []domain.ParameterSpec{decay},
		},
	},
	{
		Kind: KindExponentialPole,
		SignalDefinition: domain.SignalDefinition{
			ID:             "exponential_pole",
			DisplayName:    "Exponential (pole form)",
			FormulaTime:    `f(t) = e^{\sigma_0 t}, \quad \sigma_0 \le 0`,
			FormulaLaplace: `F(s) = \frac{1}{s-\sigma_0}`,
			Poles:          "s = σ₀",
			Description:    "The same family as the exponential, parameterized by the pole location σ₀ instead of the decay rate. Moving the slider moves the pole along the real axis; at σ₀ = 0 the signal degenerates to the unit step.",
			Parameters:     []domain.ParameterSpec{pole},
		},
	},
	{
		Kind: KindSine,
		SignalDefinition: domain.SignalDefinition{
			ID:             "sine",
			DisplayName:    "Sine",
			FormulaTime:    `f(t) = \sin(\omega_0 t)`,
			FormulaLaplace: `F(s) = \frac{\omega_0}{s^2 + \omega_0^2}`,
			Poles:          "s = ±jω₀",
			Description:    "An undamped sine. Both poles sit on the imaginary axis, so the frequency response resonates at ω = ±ω₀ where it is undefined. F(jω) is real, so the phase flips between 0 and π.",
			Parameters:     []domain.ParameterSpec{frequency},
		},
	},
	{
		Kind: KindCosine,
		SignalDefinition: domain.SignalDefinition{
			ID:             "cosine",
			DisplayName:    "Cosine",
			FormulaTime:    `f(t) = \cos(\omega_0 t)`,
			FormulaLaplace: `F(s) = \frac{s}{s^2 + \omega_0^2}`,
			Poles:          "s = ±jω₀ (zero at s = 0)",
			Description:    "An undamped cosine. Same poles as the sine plus a zero at the origin, so |F(j0)| = 0. F(jω) is purely imaginary and the phase is ±π/2.",
			Parameters:     []domain.ParameterSpec{frequency},
		},
	},
	{
		Kind: KindDampedSine,
		SignalDefinition: domain.SignalDefinition{
			ID:             "damped_sine",
			DisplayName:    "Damped Sine",
			FormulaTime:    `f(t) = e^{-at} \sin(\omega_0 t)`,
			FormulaLaplace: `F(s) = \frac{\omega_0}{(s+a)^2 + \omega_0^2}`,
			Poles:          "s = -a ± jω₀",
			Description:    "A sine inside a decaying envelope. The poles move off the imaginary axis to -a ± jω₀: the decay rate only shifts them horizontally, the oscillation rate sets their height.",
			Parameters:     []domain.ParameterSpec{with(decay, 0.5), with(frequency, 3)},
		},
	},
	{
		Kind: KindSinh,
		SignalDefinition: domain.SignalDefinition{
			ID:             "sinh",
			DisplayName:    "Hyperbolic Sine",
			FormulaTime:    `f(t) = \sinh(bt)`,
			FormulaLaplace: `F(s) = \frac{b}{s^2 - b^2}`,
			Poles:          "s = ±b",
			Description:    "A growing hyperbolic sine. The poles lie on the real axis at ±b, one of them in the right half-plane, so the signal is unbounded while F(jω) stays finite.",
			Parameters:     []domain.ParameterSpec{rate},
		},
	},
	{
		Kind: KindCosh,
		SignalDefinition: domain.SignalDefinition{
			ID:             "cosh",
			DisplayName:    "Hyperbolic Cosine",
			FormulaTime:    `f(t) = \cosh(bt)`,
			FormulaLaplace: `F(s) = \frac{s}{s^2 - b^2}`,
			Poles:          "s = ±b (zero at s = 0)",
			Description:    "A growing hyperbolic cosine. Real poles at ±b and a zero at the origin.",
			Parameters:     []domain.ParameterSpec{rate},
		},
	},
}

var byID = func() map[string]*Signal {
	m := make(map[string]*Signal, len(table))
	for _, s := range table {
		m[s.ID] = s
	}
	return m
}()

// List returns the catalog in display order. Entries are shared and must not be modified.
func List() []*Signal {
	return slices.Clone(table)
}

// Lookup returns the entry with the given ID.
func Lookup(id string) (*Signal, error) {
	s, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSignal, id)
	}
	return s, nil
}

// Default returns the entry selected when nothing else is.
func Default() *Signal {
	return table[0]
}
