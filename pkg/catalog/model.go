package catalog

import (
	"math"
	"math/cmplx"

	"github.com/aretw0/laplace/pkg/domain"
)

// PoleTolerance is the largest denominator magnitude treated as a pole.
// Grid points that land within rounding distance of a pole report Undefined
// rather than a finite spike of order 1e15.
const PoleTolerance = 1e-9

// Model is the evaluation capability set of one catalog variant.
// Every method is pure and expects params already resolved by
// SignalDefinition.Resolve.
type Model interface {
	// Time returns f(t); zero for t < 0.
	Time(t float64, params domain.Params) float64
	// FrequencyMagnitude returns |F(jω)|.
	FrequencyMagnitude(omega float64, params domain.Params) domain.Value
	// FrequencyPhase returns arg F(jω) in radians.
	FrequencyPhase(omega float64, params domain.Params) domain.Value
	// ComplexMagnitude returns |F(σ+jω)|.
	ComplexMagnitude(sigma, omega float64, params domain.Params) domain.Value
	// Roots returns the poles and zeros of F, with multiplicity.
	Roots(params domain.Params) (poles, zeros []complex128)
}

// kernel is the closed form of a variant: the causal time response and
// the rational transform F(p) = num/den.
type kernel interface {
	time(t float64, params domain.Params) float64
	transfer(p complex128, params domain.Params) (num, den complex128)
	roots(params domain.Params) (poles, zeros []complex128)
}

// rational derives the three transform views from a single closed form,
// so they cannot drift apart.
type rational struct {
	k kernel
}

var _ Model = rational{}

func (r rational) Time(t float64, params domain.Params) float64 {
	if t < 0 {
		return 0
	}
	return r.k.time(t, params)
}

func (r rational) FrequencyMagnitude(omega float64, params domain.Params) domain.Value {
	return r.ComplexMagnitude(0, omega, params)
}

func (r rational) FrequencyPhase(omega float64, params domain.Params) domain.Value {
	f, ok := r.eval(complex(0, omega), params)
	if !ok {
		return domain.Undefined
	}
	// -0 + 0 is +0: points on the negative real axis report +π, not -π.
	return domain.Defined(math.Atan2(imag(f)+0, real(f)))
}

func (r rational) ComplexMagnitude(sigma, omega float64, params domain.Params) domain.Value {
	num, den := r.k.transfer(complex(sigma, omega), params)
	d := cmplx.Abs(den)
	if d <= PoleTolerance {
		return domain.Undefined
	}
	return domain.Defined(cmplx.Abs(num) / d)
}

func (r rational) Roots(params domain.Params) (poles, zeros []complex128) {
	return r.k.roots(params)
}

// eval returns F(p), or false at a pole.
func (r rational) eval(p complex128, params domain.Params) (complex128, bool) {
	num, den := r.k.transfer(p, params)
	d2 := real(den)*real(den) + imag(den)*imag(den)
	if math.Sqrt(d2) <= PoleTolerance {
		return 0, false
	}
	// num * conj(den) / |den|^2, spelled out to keep signed zeros predictable.
	re := (real(num)*real(den) + imag(num)*imag(den)) / d2
	im := (imag(num)*real(den) - real(num)*imag(den)) / d2
	return complex(re, im), true
}
