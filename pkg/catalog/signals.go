package catalog

import (
	"math"

	"github.com/aretw0/laplace/pkg/domain"
)

// Parameter names. They are part of the public contract (HTTP query keys,
// session state) and must stay stable.
const (
	ParamDecay     = "a"
	ParamFrequency = "w0"
	ParamPole      = "sigma0"
	ParamRate      = "b"
)

func real2(x float64) complex128 { return complex(x, 0) }

// unitStep: u(t) ↔ 1/p.
type unitStep struct{}

func (unitStep) time(float64, domain.Params) float64 { return 1 }

func (unitStep) transfer(p complex128, _ domain.Params) (complex128, complex128) {
	return 1, p
}

func (unitStep) roots(domain.Params) ([]complex128, []complex128) {
	return []complex128{0}, nil
}

// exponential: e^{-at} ↔ 1/(p+a), a > 0.
type exponential struct{}

func (exponential) time(t float64, params domain.Params) float64 {
	return math.Exp(-params.Get(ParamDecay) * t)
}

func (exponential) transfer(p complex128, params domain.Params) (complex128, complex128) {
	return 1, p + real2(params.Get(ParamDecay))
}

func (exponential) roots(params domain.Params) ([]complex128, []complex128) {
	return []complex128{real2(-params.Get(ParamDecay))}, nil
}

// exponentialPole: e^{σ₀t} ↔ 1/(p-σ₀), parameterized by the pole location.
type exponentialPole struct{}

func (exponentialPole) time(t float64, params domain.Params) float64 {
	return math.Exp(params.Get(ParamPole) * t)
}

func (exponentialPole) transfer(p complex128, params domain.Params) (complex128, complex128) {
	return 1, p - real2(params.Get(ParamPole))
}

func (exponentialPole) roots(params domain.Params) ([]complex128, []complex128) {
	return []complex128{real2(params.Get(ParamPole))}, nil
}

// sine: sin(ω₀t) ↔ ω₀/(p²+ω₀²).
type sine struct{}

func (sine) time(t float64, params domain.Params) float64 {
	return math.Sin(params.Get(ParamFrequency) * t)
}

func (sine) transfer(p complex128, params domain.Params) (complex128, complex128) {
	w0 := params.Get(ParamFrequency)
	return real2(w0), p*p + real2(w0*w0)
}

func (sine) roots(params domain.Params) ([]complex128, []complex128) {
	w0 := params.Get(ParamFrequency)
	return []complex128{complex(0, w0), complex(0, -w0)}, nil
}

// cosine: cos(ω₀t) ↔ p/(p²+ω₀²).
type cosine struct{}

func (cosine) time(t float64, params domain.Params) float64 {
	return math.Cos(params.Get(ParamFrequency) * t)
}

func (cosine) transfer(p complex128, params domain.Params) (complex128, complex128) {
	w0 := params.Get(ParamFrequency)
	return p, p*p + real2(w0*w0)
}

func (cosine) roots(params domain.Params) ([]complex128, []complex128) {
	w0 := params.Get(ParamFrequency)
	return []complex128{complex(0, w0), complex(0, -w0)}, []complex128{0}
}

// dampedSine: e^{-at}sin(ω₀t) ↔ ω₀/((p+a)²+ω₀²).
// Poles sit at -a ± jω₀: a moves them horizontally only.
type dampedSine struct{}

func (dampedSine) time(t float64, params domain.Params) float64 {
	return math.Exp(-params.Get(ParamDecay)*t) * math.Sin(params.Get(ParamFrequency)*t)
}

func (dampedSine) transfer(p complex128, params domain.Params) (complex128, complex128) {
	a, w0 := params.Get(ParamDecay), params.Get(ParamFrequency)
	shifted := p + real2(a)
	return real2(w0), shifted*shifted + real2(w0*w0)
}

func (dampedSine) roots(params domain.Params) ([]complex128, []complex128) {
	a, w0 := params.Get(ParamDecay), params.Get(ParamFrequency)
	return []complex128{complex(-a, w0), complex(-a, -w0)}, nil
}

// hyperbolicSine: sinh(bt) ↔ b/(p²-b²).
type hyperbolicSine struct{}

func (hyperbolicSine) time(t float64, params domain.Params) float64 {
	return math.Sinh(params.Get(ParamRate) * t)
}

func (hyperbolicSine) transfer(p complex128, params domain.Params) (complex128, complex128) {
	b := params.Get(ParamRate)
	return real2(b), p*p - real2(b*b)
}

func (hyperbolicSine) roots(params domain.Params) ([]complex128, []complex128) {
	b := params.Get(ParamRate)
	return []complex128{real2(b), real2(-b)}, nil
}

// hyperbolicCosine: cosh(bt) ↔ p/(p²-b²).
type hyperbolicCosine struct{}

func (hyperbolicCosine) time(t float64, params domain.Params) float64 {
	return math.Cosh(params.Get(ParamRate) * t)
}

func (hyperbolicCosine) transfer(p complex128, params domain.Params) (complex128, complex128) {
	b := params.Get(ParamRate)
	return p, p*p - real2(b*b)
}

func (hyperbolicCosine) roots(params domain.Params) ([]complex128, []complex128) {
	b := params.Get(ParamRate)
	return []complex128{real2(b), real2(-b)}, []complex128{0}
}
