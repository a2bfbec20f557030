package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/laplace/internal/presentation/chart"
	"github.com/aretw0/laplace/internal/presentation/export"
	"github.com/aretw0/laplace/internal/presentation/graph"
	"github.com/aretw0/laplace/internal/presentation/tui"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/ports"
	"github.com/aretw0/laplace/pkg/sampler"
)

// OutputOptions controls how one-shot commands print.
type OutputOptions struct {
	// JSON prints machine-readable output.
	JSON bool
	// Styled renders markdown through glamour. Ignored with JSON.
	Styled bool
}

// ListSignals prints the catalog.
func ListSignals(w io.Writer, explorer ports.Explorer, out OutputOptions) error {
	signals := explorer.Signals()
	if out.JSON {
		return writeJSON(w, signals)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tF(s)\tPARAMETERS")
	for _, s := range signals {
		names := make([]string, len(s.Parameters))
		for i, p := range s.Parameters {
			names[i] = p.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.DisplayName, s.FormulaLaplace, strings.Join(names, ","))
	}
	return tw.Flush()
}

// Describe prints one catalog entry evaluated at params.
func Describe(w io.Writer, explorer ports.Explorer, signalID string, params domain.Params, out OutputOptions) error {
	sig, err := explorer.Signal(signalID)
	if err != nil {
		return err
	}
	if out.JSON {
		return writeJSON(w, sig)
	}

	md, err := tui.DescribeSignal(sig, params)
	if err != nil {
		return err
	}
	if !out.Styled {
		_, err = io.WriteString(w, md)
		return err
	}

	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	styled, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, styled)
	return err
}

// Sample prints the frame of a signal: in full as JSON, or as a per-view
// summary of points, gaps and segments.
func Sample(ctx context.Context, w io.Writer, explorer ports.Explorer, signalID string, params domain.Params, out OutputOptions) error {
	frame, err := explorer.Sample(ctx, signalID, params)
	if err != nil {
		return err
	}
	if out.JSON {
		return writeJSON(w, frame)
	}

	rows, cols := frame.Surface.Z.Dims()
	fmt.Fprintf(w, "%s (%s)\n", frame.DisplayName, frame.SignalID)
	fmt.Fprintf(w, "  params:    %s\n", formatParams(frame.Params))
	fmt.Fprintf(w, "  time:      %d points\n", len(frame.Time.X))
	writeGapLine(w, "magnitude", frame.Magnitude)
	writeGapLine(w, "phase", frame.Phase)
	fmt.Fprintf(w, "  surface:   %dx%d points, ceiling %g\n", rows, cols, sampler.SurfaceCeiling)
	return nil
}

func writeGapLine(w io.Writer, name string, g sampler.GapSeries) {
	fmt.Fprintf(w, "  %-10s %d points, %d gaps, %d segments\n", name+":", len(g.X), g.Gaps(), len(g.Segments()))
}

// RenderCharts writes one image per view into dir and reports the paths.
func RenderCharts(ctx context.Context, w io.Writer, explorer ports.Explorer, signalID string, params domain.Params, dir string, format chart.Format) error {
	frame, err := explorer.Sample(ctx, signalID, params)
	if err != nil {
		return err
	}
	paths, err := chart.RenderAll(dir, frame, format)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printSystemMessage(w, "Wrote %s", p)
	}
	return nil
}

// ExportWorkbook writes the frame as an xlsx workbook.
func ExportWorkbook(ctx context.Context, w io.Writer, explorer ports.Explorer, signalID string, params domain.Params, path string) error {
	frame, err := explorer.Sample(ctx, signalID, params)
	if err != nil {
		return err
	}
	if path == "" {
		path = frame.SignalID + ".xlsx"
	}
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}
	if err := export.Save(path, frame); err != nil {
		return err
	}
	printSystemMessage(w, "Wrote %s", path)
	return nil
}

// PoleZeroMap prints the Mermaid pole-zero chart of a signal.
func PoleZeroMap(w io.Writer, explorer ports.Explorer, signalID string, params domain.Params) error {
	sig, err := explorer.Signal(signalID)
	if err != nil {
		return err
	}
	resolved, err := sig.Resolve(params)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GeneratePoleZeroMap(sig, resolved))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
