package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestListSignals(t *testing.T) {
	s := NewServer(laplace.New())

	resp, err := s.handleListSignals(context.Background(), callRequest(nil), nil)
	require.NoError(t, err)
	require.Len(t, resp.Signals, 8)
	assert.Equal(t, "unit_step", resp.Signals[0].ID)
	assert.Empty(t, resp.Signals[0].Parameters)
	assert.Equal(t, []string{"a", "w0"}, resp.Signals[5].Parameters)
}

func TestDescribeSignal(t *testing.T) {
	s := NewServer(laplace.New())
	ctx := context.Background()

	res, err := s.handleDescribeSignal(ctx, callRequest(map[string]any{"signal": "cosh"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, "Hyperbolic Cosine", decoded["name"])

	res, err = s.handleDescribeSignal(ctx, callRequest(map[string]any{"signal": "square"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleDescribeSignal(ctx, callRequest(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSampleSignal(t *testing.T) {
	s := NewServer(laplace.New())
	ctx := context.Background()

	resp, err := s.handleSample(ctx, callRequest(nil), map[string]any{
		"signal": "sine",
		"params": map[string]any{"w0": 2.0},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Frame)
	assert.Equal(t, "sine", resp.Summary.Signal)
	require.Len(t, resp.Summary.PolesOnAxis, 2)
	assert.InDelta(t, -2.0, resp.Summary.PolesOnAxis[0], 1e-9)
	assert.InDelta(t, 2.0, resp.Summary.PolesOnAxis[1], 1e-9)
	assert.InDelta(t, -1.0, resp.Summary.TimeMin, 1e-2)
	assert.InDelta(t, 1.0, resp.Summary.TimeMax, 1e-2)

	// Params as a JSON string, numbers as strings.
	resp, err = s.handleSample(ctx, callRequest(nil), map[string]any{
		"signal":        "damped_sine",
		"params":        `{"a": 0.8}`,
		"include_frame": "true",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Frame)
	assert.Equal(t, 0.8, resp.Frame.Params.Get("a"))
	assert.Empty(t, resp.Summary.PolesOnAxis)

	_, err = s.handleSample(ctx, callRequest(nil), map[string]any{"signal": "sine", "params": map[string]any{"zeta": 1}})
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)

	_, err = s.handleSample(ctx, callRequest(nil), map[string]any{"signal": "sine", "unexpected": true})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestEvaluatePoint(t *testing.T) {
	s := NewServer(laplace.New())
	ctx := context.Background()

	res, err := s.handleEvaluate(ctx, callRequest(map[string]any{
		"signal": "unit_step",
		"t":      1.0,
		"omega":  0.0,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var point sampler.Point
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &point))
	assert.Equal(t, 1.0, point.Time)
	assert.False(t, point.FrequencyMagnitude.IsDefined(), "pole at the origin")

	res, err = s.handleEvaluate(ctx, callRequest(map[string]any{"signal": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSummarize_Surface(t *testing.T) {
	frame, err := laplace.New().Sample(context.Background(), "unit_step", nil)
	require.NoError(t, err)

	sum := Summarize(frame)
	assert.Equal(t, []float64{0}, sum.PolesOnAxis)
	assert.Positive(t, sum.SurfaceClamped)
	assert.Equal(t, 0.0, sum.TimeMin)
	assert.Equal(t, 1.0, sum.TimeMax)
}
