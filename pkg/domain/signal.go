package domain

import (
	"fmt"
	"math"
)

// ParameterSpec describes one slider-adjustable parameter of a signal.
type ParameterSpec struct {
	Name    string  `json:"name" yaml:"name"`
	Label   string  `json:"label" yaml:"label"`
	Default float64 `json:"default" yaml:"default"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Step    float64 `json:"step" yaml:"step"`
}

// Clamp forces v into [Min, Max].
func (p ParameterSpec) Clamp(v float64) float64 {
	return math.Min(math.Max(v, p.Min), p.Max)
}

// SignalDefinition is an immutable catalog entry.
// Evaluation lives in the catalog package; the definition only carries
// what a presentation layer needs to label and drive it.
type SignalDefinition struct {
	ID             string          `json:"id"`
	DisplayName    string          `json:"name"`
	FormulaTime    string          `json:"formula_time"`
	FormulaLaplace string          `json:"formula_laplace"`
	Description    string          `json:"description,omitempty"`
	Poles          string          `json:"poles,omitempty"`
	Parameters     []ParameterSpec `json:"parameters"`
}

// Parameter returns the spec for the named parameter.
func (d *SignalDefinition) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Defaults builds a complete parameter state from the declared defaults.
func (d *SignalDefinition) Defaults() Params {
	params := make(Params, len(d.Parameters))
	for _, p := range d.Parameters {
		params[p.Name] = p.Default
	}
	return params
}

// Resolve returns a complete, clamped copy of params.
// Missing keys take their default; unknown keys and non-finite values are rejected.
func (d *SignalDefinition) Resolve(params Params) (Params, error) {
	resolved := d.Defaults()
	for name, v := range params {
		spec, ok := d.Parameter(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q for signal %q", ErrUnknownParameter, name, d.ID)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q=%v", ErrInvalidParameter, name, v)
		}
		resolved[name] = spec.Clamp(v)
	}
	return resolved, nil
}
