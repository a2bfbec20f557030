package chart_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/laplace/internal/presentation/chart"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameFor(t *testing.T, id string, params domain.Params) *sampler.Frame {
	t.Helper()
	sig, err := catalog.Lookup(id)
	require.NoError(t, err)
	frame, err := sampler.New().Sample(context.Background(), sig, params)
	require.NoError(t, err)
	return frame
}

func TestParseFormat(t *testing.T) {
	f, err := chart.ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, chart.FormatPNG, f)

	f, err = chart.ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, chart.FormatSVG, f)

	_, err = chart.ParseFormat("gif")
	assert.Error(t, err)
}

func TestBuild_BreaksAtPoles(t *testing.T) {
	frame := frameFor(t, "sine", domain.Params{catalog.ParamFrequency: 1})

	c, err := chart.Build(frame, domain.ViewMagnitude)
	require.NoError(t, err)
	assert.Len(t, c.Series, 3, "two poles split the curve in three")

	c, err = chart.Build(frame, domain.ViewTime)
	require.NoError(t, err)
	assert.Len(t, c.Series, 1)

	c, err = chart.Build(frame, domain.ViewSurface)
	require.NoError(t, err)
	assert.Len(t, c.Series, 6)

	_, err = chart.Build(frame, "bode")
	assert.Error(t, err)
}

func TestRender_Formats(t *testing.T) {
	frame := frameFor(t, "damped_sine", nil)

	for _, view := range chart.Views {
		t.Run(view, func(t *testing.T) {
			var png bytes.Buffer
			require.NoError(t, chart.Render(&png, frame, view, chart.FormatPNG))
			assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")), "expected PNG signature")

			var svg bytes.Buffer
			require.NoError(t, chart.Render(&svg, frame, view, chart.FormatSVG))
			assert.Contains(t, svg.String(), "<svg")
		})
	}
}

func TestRender_ConstantCurve(t *testing.T) {
	// The unit step's phase is a constant ±π/2 on each side of its pole.
	frame := frameFor(t, "unit_step", nil)

	var buf bytes.Buffer
	assert.NoError(t, chart.Render(&buf, frame, domain.ViewPhase, chart.FormatPNG))
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	frame := frameFor(t, "cosine", nil)

	paths, err := chart.RenderAll(filepath.Join(dir, "out"), frame, chart.FormatSVG)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "out", "cosine_time.svg"), paths[0])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
