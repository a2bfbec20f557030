package domain

import (
	"maps"
	"slices"
)

// Params is the current value of every parameter of the active signal,
// keyed by parameter name.
type Params map[string]float64

// Get returns the value of name. Callers pass resolved params, so a missing
// key is a programming error and reads as zero.
func (p Params) Get(name string) float64 {
	return p[name]
}

// Clone returns an independent copy.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Names returns the parameter names in lexical order.
func (p Params) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Equal reports whether both states hold the same values.
func (p Params) Equal(other Params) bool {
	return maps.Equal(p, other)
}
