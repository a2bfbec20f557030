package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
)

// SignalSummary is one catalog entry as listed to agents.
type SignalSummary struct {
	ID             string   `json:"id" jsonschema_description:"Signal ID"`
	Name           string   `json:"name" jsonschema_description:"Display name"`
	FormulaTime    string   `json:"formula_time" jsonschema_description:"f(t) in LaTeX"`
	FormulaLaplace string   `json:"formula_laplace" jsonschema_description:"F(s) in LaTeX"`
	Parameters     []string `json:"parameters" jsonschema_description:"Tunable parameter names"`
}

// ListSignalsResponse is the output of list_signals.
type ListSignalsResponse struct {
	Signals []SignalSummary `json:"signals"`
}

// FrameSummary condenses a frame into what an agent can reason about.
type FrameSummary struct {
	Signal         string        `json:"signal"`
	Params         domain.Params `json:"params"`
	TimeMin        float64       `json:"time_min" jsonschema_description:"Smallest f(t) on the time grid"`
	TimeMax        float64       `json:"time_max" jsonschema_description:"Largest f(t) on the time grid"`
	MagnitudePeak  float64       `json:"magnitude_peak" jsonschema_description:"Largest defined |F(jω)|"`
	PeakOmega      float64       `json:"peak_omega" jsonschema_description:"ω where the peak occurs"`
	PolesOnAxis    []float64     `json:"poles_on_axis" jsonschema_description:"ω values where F(jω) is undefined"`
	SurfaceClamped int           `json:"surface_clamped" jsonschema_description:"Surface points at the ceiling"`
}

// SampleResponse is the output of sample_signal.
type SampleResponse struct {
	Summary FrameSummary   `json:"summary"`
	Frame   *sampler.Frame `json:"frame,omitempty"`
}

type sampleArgs struct {
	Signal       string        `mapstructure:"signal"`
	Params       domain.Params `mapstructure:"params"`
	IncludeFrame bool          `mapstructure:"include_frame"`
}

type evaluateArgs struct {
	Signal string        `mapstructure:"signal"`
	Params domain.Params `mapstructure:"params"`
	T      float64       `mapstructure:"t"`
	Sigma  float64       `mapstructure:"sigma"`
	Omega  float64       `mapstructure:"omega"`
}

// decodeArgs maps raw tool arguments onto a typed struct. Numbers given as
// strings are accepted, and object arguments may arrive as JSON strings.
func decodeArgs(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       jsonObjectHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidParameter, err)
	}
	return nil
}

func jsonObjectHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Map {
		return data, nil
	}
	out := map[string]any{}
	str := data.(string)
	if str == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(str), &out); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}
	return out, nil
}

func (s *Server) handleListSignals(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ListSignalsResponse, error) {
	signals := s.explorer.Signals()
	resp := ListSignalsResponse{Signals: make([]SignalSummary, 0, len(signals))}
	for _, sig := range signals {
		names := make([]string, 0, len(sig.Parameters))
		for _, p := range sig.Parameters {
			names = append(names, p.Name)
		}
		resp.Signals = append(resp.Signals, SignalSummary{
			ID:             sig.ID,
			Name:           sig.DisplayName,
			FormulaTime:    sig.FormulaTime,
			FormulaLaplace: sig.FormulaLaplace,
			Parameters:     names,
		})
	}
	return resp, nil
}

func (s *Server) handleDescribeSignal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("signal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sig, err := s.explorer.Signal(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(sig)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSample(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SampleResponse, error) {
	var in sampleArgs
	if err := decodeArgs(args, &in); err != nil {
		return SampleResponse{}, err
	}

	frame, err := s.explorer.Sample(ctx, in.Signal, in.Params)
	if err != nil {
		s.logger.Debug("MCP sample_signal rejected", "signal", in.Signal, "err", err)
		return SampleResponse{}, fmt.Errorf("sample failed: %w", err)
	}

	resp := SampleResponse{Summary: Summarize(frame)}
	if in.IncludeFrame {
		resp.Frame = frame
	}
	return resp, nil
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in evaluateArgs
	if err := decodeArgs(request.GetArguments(), &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	point, err := s.explorer.Evaluate(in.Signal, in.Params, in.T, in.Sigma, in.Omega)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(point)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// Summarize extracts the extremes and the on-axis poles of a frame.
func Summarize(frame *sampler.Frame) FrameSummary {
	sum := FrameSummary{
		Signal:      frame.SignalID,
		Params:      frame.Params,
		PolesOnAxis: []float64{},
	}

	for i, y := range frame.Time.Y {
		if i == 0 || y < sum.TimeMin {
			sum.TimeMin = y
		}
		if i == 0 || y > sum.TimeMax {
			sum.TimeMax = y
		}
	}

	for i, v := range frame.Magnitude.Y {
		m, ok := v.Float()
		if !ok {
			sum.PolesOnAxis = append(sum.PolesOnAxis, frame.Magnitude.X[i])
			continue
		}
		if m > sum.MagnitudePeak {
			sum.MagnitudePeak = m
			sum.PeakOmega = frame.Magnitude.X[i]
		}
	}

	for _, row := range frame.Surface.Rows() {
		for _, z := range row {
			if z >= sampler.SurfaceCeiling {
				sum.SurfaceClamped++
			}
		}
	}
	return sum
}
