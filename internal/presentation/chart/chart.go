// Package chart draws the views of a sampled frame as PNG or SVG images.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (want png or svg)", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Views lists the charts RenderAll produces, in order.
var Views = []string{domain.ViewTime, domain.ViewMagnitude, domain.ViewPhase, domain.ViewSurface}

const (
	width  = 960
	height = 420
)

var (
	timeColor      = drawing.ColorFromHex("4f46e5")
	magnitudeColor = drawing.ColorFromHex("db2777")
	phaseColor     = drawing.ColorFromHex("059669")
)

// Build returns the chart of one view.
func Build(frame *sampler.Frame, view string) (chart.Chart, error) {
	switch view {
	case domain.ViewTime:
		return timeChart(frame), nil
	case domain.ViewMagnitude:
		return gapChart(frame, frame.Magnitude, "|F(jω)|", magnitudeColor), nil
	case domain.ViewPhase:
		return gapChart(frame, frame.Phase, "arg F(jω) [rad]", phaseColor), nil
	case domain.ViewSurface:
		return surfaceChart(frame), nil
	}
	return chart.Chart{}, fmt.Errorf("unknown view %q", view)
}

// Render encodes one view of the frame to w.
func Render(w io.Writer, frame *sampler.Frame, view string, format Format) error {
	c, err := Build(frame, view)
	if err != nil {
		return err
	}
	if err := c.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", view, err)
	}
	return nil
}

// RenderAll writes every view to dir as <signal>_<view>.<format> and
// returns the written paths.
func RenderAll(dir string, frame *sampler.Frame, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(Views))
	for _, view := range Views {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", frame.SignalID, view, format))
		if err := renderFile(path, frame, view, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderFile(path string, frame *sampler.Frame, view string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, frame, view, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

func base(frame *sampler.Frame, title, xName, yName string, series []chart.Series, yRange *chart.ContinuousRange) chart.Chart {
	return chart.Chart{
		Title:      fmt.Sprintf("%s: %s", frame.DisplayName, title),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName},
		YAxis:      chart.YAxis{Name: yName, Range: yRange},
		Series:     series,
	}
}

func timeChart(frame *sampler.Frame) chart.Chart {
	s := chart.ContinuousSeries{
		Name:    "f(t)",
		XValues: frame.Time.X,
		YValues: frame.Time.Y,
		Style:   lineStyle(timeColor),
	}
	return base(frame, "time response", "t", "f(t)", []chart.Series{s}, paddedRange(frame.Time.Y))
}

// gapChart draws one line per defined segment, so the curve is broken at
// every pole instead of bridging it.
func gapChart(frame *sampler.Frame, g sampler.GapSeries, yName string, col drawing.Color) chart.Chart {
	var (
		series []chart.Series
		all    []float64
	)
	for _, seg := range g.Segments() {
		if len(seg.X) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			XValues: seg.X,
			YValues: seg.Y,
			Style:   lineStyle(col),
		})
		all = append(all, seg.Y...)
	}
	return base(frame, yName, "ω", yName, series, paddedRange(all))
}

// surfaceSlices are the ω values drawn as cross-sections of the surface.
// |F(σ-jω)| = |F(σ+jω)| for real signals, so ω ≥ 0 suffices.
var surfaceSlices = []float64{0, 1, 2, 3, 4, 5}

func surfaceChart(frame *sampler.Frame) chart.Chart {
	palette := []drawing.Color{
		drawing.ColorFromHex("1e3a8a"),
		drawing.ColorFromHex("2563eb"),
		drawing.ColorFromHex("0891b2"),
		drawing.ColorFromHex("16a34a"),
		drawing.ColorFromHex("ca8a04"),
		drawing.ColorFromHex("dc2626"),
	}

	rows := frame.Surface.Rows()
	var series []chart.Series
	for i, w := range surfaceSlices {
		row := nearestIndex(frame.Surface.Omega, w)
		if row < 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("ω = %.1f", frame.Surface.Omega[row]),
			XValues: frame.Surface.Sigma,
			YValues: rows[row],
			Style:   lineStyle(palette[i%len(palette)]),
		})
	}

	c := base(frame, "|F(σ+jω)| slices", "σ", "|F(σ+jω)|", series,
		&chart.ContinuousRange{Min: 0, Max: sampler.SurfaceCeiling})
	c.Elements = []chart.Renderable{chart.LegendLeft(&c)}
	return c
}

func nearestIndex(xs []float64, v float64) int {
	best, dist := -1, math.Inf(1)
	for i, x := range xs {
		if d := math.Abs(x - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// paddedRange spans ys with a 5% margin. go-chart rejects empty ranges, so
// constant curves get a unit margin.
func paddedRange(ys []float64) *chart.ContinuousRange {
	if len(ys) == 0 {
		return &chart.ContinuousRange{Min: -1, Max: 1}
	}
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		lo, hi = min(lo, y), max(hi, y)
	}
	if hi-lo < 1e-12 {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
