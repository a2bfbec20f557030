package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/laplace/internal/logging"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"gonum.org/v1/gonum/mat"
)

// Fixed sampling domains, shared by every frame.
var (
	// TimeGrid has 221 points: (10 - (-1)) / 0.05 + 1.
	TimeGrid      = domain.Grid{Start: -1, Stop: 10, Step: 0.05}
	FrequencyGrid = domain.Grid{Start: -10, Stop: 10, Step: 0.05}
	// PlaneGrid is used for both σ and ω of the surface.
	PlaneGrid     = domain.Grid{Start: -5, Stop: 5, Step: 0.2}
)

// SurfaceCeiling caps the surface height, and Undefined points are drawn at
// the ceiling too. It keeps the plot scale stable near poles; it is a
// presentation choice, not a property of |F|.
const SurfaceCeiling = 10.0

// Axis vectors are computed once. Frames get their own copies.
var (
	timeAxis  = TimeGrid.Points()
	freqAxis  = FrequencyGrid.Points()
	planeAxis = PlaneGrid.Points()
)

// Sampler turns a catalog entry and a parameter state into a Frame.
// It holds no evaluation state; the same inputs always produce the same frame.
type Sampler struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures the Sampler.
type Option func(*Sampler)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sampler) {
		s.hooks = hooks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// New creates a Sampler.
func New(opts ...Option) *Sampler {
	s := &Sampler{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample evaluates all four views. Params are resolved against the signal's
// parameter specs first: missing values take defaults, out-of-range values
// are clamped, unknown names are rejected.
func (s *Sampler) Sample(ctx context.Context, sig *catalog.Signal, params domain.Params) (*Frame, error) {
	start := time.Now()

	resolved, err := sig.Resolve(params)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve params: %w", err)
	}
	model := sig.Model()

	frame := &Frame{
		SignalID:       sig.ID,
		DisplayName:    sig.DisplayName,
		FormulaTime:    sig.FormulaTime,
		FormulaLaplace: sig.FormulaLaplace,
		Params:         resolved,
		Time:           TimeSeries(model, resolved),
		Magnitude:      MagnitudeSeries(model, resolved),
		Phase:          PhaseSeries(model, resolved),
	}
	var surfaceGaps int
	frame.Surface, surfaceGaps = PlaneSurface(model, resolved)

	elapsed := time.Since(start)
	gaps := map[string]int{
		domain.ViewMagnitude: frame.Magnitude.Gaps(),
		domain.ViewPhase:     frame.Phase.Gaps(),
		domain.ViewSurface:   surfaceGaps,
	}
	s.logger.Debug("Frame sampled",
		"signal", sig.ID,
		"params", resolved,
		"duration", elapsed,
		"magnitude_gaps", gaps[domain.ViewMagnitude],
	)

	if s.hooks.OnSample != nil {
		s.hooks.OnSample(ctx, &domain.SampleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSample},
			SignalID:  sig.ID,
			Params:    resolved.Clone(),
			Duration:  elapsed,
			Gaps:      gaps,
		})
	}

	return frame, nil
}

// TimeSeries evaluates f(t) over TimeGrid.
func TimeSeries(model catalog.Model, params domain.Params) Series {
	x := slices.Clone(timeAxis)
	y := make([]float64, len(x))
	for i, t := range x {
		y[i] = model.Time(t, params)
	}
	return Series{X: x, Y: y}
}

// MagnitudeSeries evaluates |F(jω)| over FrequencyGrid.
func MagnitudeSeries(model catalog.Model, params domain.Params) GapSeries {
	return frequencySeries(func(w float64) domain.Value {
		return model.FrequencyMagnitude(w, params)
	})
}

// PhaseSeries evaluates arg F(jω) over FrequencyGrid.
func PhaseSeries(model catalog.Model, params domain.Params) GapSeries {
	return frequencySeries(func(w float64) domain.Value {
		return model.FrequencyPhase(w, params)
	})
}

func frequencySeries(eval func(float64) domain.Value) GapSeries {
	x := slices.Clone(freqAxis)
	y := make([]domain.Value, len(x))
	for i, w := range x {
		y[i] = eval(w)
	}
	return GapSeries{X: x, Y: y}
}

// PlaneSurface evaluates |F(σ+jω)| over PlaneGrid × PlaneGrid, clamped to
// SurfaceCeiling. It also reports how many points were Undefined.
func PlaneSurface(model catalog.Model, params domain.Params) (Surface, int) {
	sigma := slices.Clone(planeAxis)
	omega := slices.Clone(planeAxis)
	z := mat.NewDense(len(omega), len(sigma), nil)

	gaps := 0
	for i, w := range omega {
		for j, sg := range sigma {
			v, ok := model.ComplexMagnitude(sg, w, params).Float()
			if !ok {
				gaps++
				v = SurfaceCeiling
			}
			z.Set(i, j, min(v, SurfaceCeiling))
		}
	}
	return Surface{Sigma: sigma, Omega: omega, Z: z}, gaps
}

// Point is every view evaluated at a single coordinate.
type Point struct {
	T                  float64      `json:"t"`
	Sigma              float64      `json:"sigma"`
	Omega              float64      `json:"omega"`
	Time               float64      `json:"f_t"`
	FrequencyMagnitude domain.Value `json:"magnitude"`
	FrequencyPhase     domain.Value `json:"phase"`
	ComplexMagnitude   domain.Value `json:"complex_magnitude"`
}

// Evaluate computes f(t), |F(jω)|, arg F(jω) and |F(σ+jω)| without clamping.
func Evaluate(sig *catalog.Signal, params domain.Params, t, sigma, omega float64) (Point, error) {
	resolved, err := sig.Resolve(params)
	if err != nil {
		return Point{}, fmt.Errorf("failed to resolve params: %w", err)
	}
	model := sig.Model()
	return Point{
		T:                  t,
		Sigma:              sigma,
		Omega:              omega,
		Time:               model.Time(t, resolved),
		FrequencyMagnitude: model.FrequencyMagnitude(omega, resolved),
		FrequencyPhase:     model.FrequencyPhase(omega, resolved),
		ComplexMagnitude:   model.ComplexMagnitude(sigma, omega, resolved),
	}, nil
}
