package sampler_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, id string) *catalog.Signal {
	t.Helper()
	sig, err := catalog.Lookup(id)
	require.NoError(t, err)
	return sig
}

func TestSample_Cardinality(t *testing.T) {
	s := sampler.New()
	frame, err := s.Sample(context.Background(), lookup(t, "damped_sine"), nil)
	require.NoError(t, err)

	assert.Equal(t, 221, sampler.TimeGrid.Len())
	assert.Len(t, frame.Time.X, 221)
	assert.Len(t, frame.Time.Y, 221)
	assert.Len(t, frame.Magnitude.X, 401)
	assert.Len(t, frame.Magnitude.Y, 401)
	assert.Len(t, frame.Phase.X, 401)
	assert.Len(t, frame.Phase.Y, 401)
	assert.Len(t, frame.Surface.Sigma, 51)
	assert.Len(t, frame.Surface.Omega, 51)

	rows, cols := frame.Surface.Z.Dims()
	assert.Equal(t, 51, rows)
	assert.Equal(t, 51, cols)
	assert.Equal(t, 2601, rows*cols)
}

func TestSample_Idempotent(t *testing.T) {
	s := sampler.New()
	sig := lookup(t, "cosine")
	params := domain.Params{catalog.ParamFrequency: 2.5}

	first, err := s.Sample(context.Background(), sig, params)
	require.NoError(t, err)
	second, err := s.Sample(context.Background(), sig, params)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestSample_FramesDoNotShareAxes(t *testing.T) {
	s := sampler.New()
	sig := lookup(t, "unit_step")

	first, err := s.Sample(context.Background(), sig, nil)
	require.NoError(t, err)
	first.Time.X[0] = 99
	first.Magnitude.X[0] = 99
	first.Surface.Sigma[0] = 99

	second, err := s.Sample(context.Background(), sig, nil)
	require.NoError(t, err)
	assert.Equal(t, -1.0, second.Time.X[0])
	assert.Equal(t, -10.0, second.Magnitude.X[0])
	assert.Equal(t, -5.0, second.Surface.Sigma[0])
}

func TestSample_UnitStepGapAtOrigin(t *testing.T) {
	frame, err := sampler.New().Sample(context.Background(), lookup(t, "unit_step"), nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, frame.Magnitude.X[200])
	assert.Equal(t, domain.Undefined, frame.Magnitude.Y[200])
	assert.Equal(t, domain.Undefined, frame.Phase.Y[200])
	assert.Equal(t, 1, frame.Magnitude.Gaps())

	// Time response: 0 before the step, 1 from t = 0 on.
	assert.Equal(t, 0.0, frame.Time.Y[0])
	assert.Equal(t, 1.0, frame.Time.Y[len(frame.Time.Y)-1])
}

func TestSample_SineGapsAtResonance(t *testing.T) {
	frame, err := sampler.New().Sample(context.Background(), lookup(t, "sine"), domain.Params{catalog.ParamFrequency: 1})
	require.NoError(t, err)

	var gaps []float64
	for i, v := range frame.Magnitude.Y {
		if !v.IsDefined() {
			gaps = append(gaps, frame.Magnitude.X[i])
		}
	}
	assert.Equal(t, []float64{-1, 1}, gaps)

	segments := frame.Magnitude.Segments()
	require.Len(t, segments, 3)
	total := 0
	for _, seg := range segments {
		total += len(seg.X)
	}
	assert.Equal(t, 401-2, total)
}

func TestSample_SurfaceClamped(t *testing.T) {
	frame, err := sampler.New().Sample(context.Background(), lookup(t, "unit_step"), nil)
	require.NoError(t, err)

	rows, cols := frame.Surface.Z.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := frame.Surface.At(i, j)
			assert.LessOrEqual(t, v, sampler.SurfaceCeiling)
			assert.Greater(t, v, 0.0)
		}
	}
	// The pole at the origin (row 25, column 25) sits at the ceiling.
	assert.Equal(t, 0.0, frame.Surface.Sigma[25])
	assert.Equal(t, 0.0, frame.Surface.Omega[25])
	assert.Equal(t, sampler.SurfaceCeiling, frame.Surface.At(25, 25))
}

func TestSample_SurfaceOrientation(t *testing.T) {
	// Exponential pole at σ = -a, ω = 0: the ceiling must appear at row ω=0, column σ=-a.
	frame, err := sampler.New().Sample(context.Background(), lookup(t, "exponential"), domain.Params{catalog.ParamDecay: 2})
	require.NoError(t, err)

	col := 15 // σ = -5 + 15·0.2 = -2
	row := 25 // ω = 0
	assert.InDelta(t, -2.0, frame.Surface.Sigma[col], 1e-12)
	assert.Equal(t, sampler.SurfaceCeiling, frame.Surface.At(row, col))
	assert.Less(t, frame.Surface.At(col, row), sampler.SurfaceCeiling)
}

func TestSample_ResolvesParams(t *testing.T) {
	s := sampler.New()
	sig := lookup(t, "damped_sine")

	frame, err := s.Sample(context.Background(), sig, domain.Params{catalog.ParamDecay: 50})
	require.NoError(t, err)
	assert.Equal(t, domain.Params{catalog.ParamDecay: 5, catalog.ParamFrequency: 3}, frame.Params)

	_, err = s.Sample(context.Background(), sig, domain.Params{"zeta": 1})
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)
}

func TestSample_Hooks(t *testing.T) {
	var events []*domain.SampleEvent
	s := sampler.New(sampler.WithLifecycleHooks(domain.LifecycleHooks{
		OnSample: func(_ context.Context, e *domain.SampleEvent) {
			events = append(events, e)
		},
	}))

	_, err := s.Sample(context.Background(), lookup(t, "sine"), nil)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "sine", events[0].SignalID)
	assert.Equal(t, domain.EventSample, events[0].Type)
	assert.Equal(t, 2, events[0].Gaps[domain.ViewMagnitude])
	assert.Equal(t, 2, events[0].Gaps[domain.ViewPhase])
}

func TestFrame_JSON(t *testing.T) {
	frame, err := sampler.New().Sample(context.Background(), lookup(t, "unit_step"), nil)
	require.NoError(t, err)

	data, err := json.Marshal(frame)
	require.NoError(t, err)

	var raw struct {
		Signal    string `json:"signal"`
		Magnitude struct {
			Y []*float64 `json:"y"`
		} `json:"magnitude"`
		Surface struct {
			Z [][]float64 `json:"z"`
		} `json:"surface"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "unit_step", raw.Signal)
	assert.Nil(t, raw.Magnitude.Y[200], "pole must encode as null")
	assert.NotNil(t, raw.Magnitude.Y[201])
	assert.Len(t, raw.Surface.Z, 51)

	var decoded sampler.Frame
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, frame.Surface.At(3, 7), decoded.Surface.At(3, 7))
	assert.Equal(t, frame.Magnitude.Y, decoded.Magnitude.Y)
}

func TestEvaluate(t *testing.T) {
	p, err := sampler.Evaluate(lookup(t, "exponential"), domain.Params{catalog.ParamDecay: 1}, 1, 0, 1)
	require.NoError(t, err)

	assert.InDelta(t, 0.3679, p.Time, 1e-4)
	mag, ok := p.FrequencyMagnitude.Float()
	require.True(t, ok)
	assert.InDelta(t, 0.7071, mag, 1e-4)
	assert.Equal(t, p.FrequencyMagnitude, p.ComplexMagnitude)
}
