// Package export writes sampled frames to spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/aretw0/laplace/pkg/domain"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetSummary   = "Summary"
	SheetTime      = "Time"
	SheetFrequency = "Frequency"
	SheetSurface   = "Surface"
)

// Workbook lays a frame out in four sheets. Undefined points (poles) are
// left as empty cells so spreadsheet charts break the line there.
func Workbook(frame *sampler.Frame) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}

	steps := []func(*excelize.File, *sampler.Frame) error{
		writeSummary,
		writeTime,
		writeFrequency,
		writeSurface,
	}
	for _, step := range steps {
		if err := step(f, frame); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write encodes the workbook of frame to w.
func Write(w io.Writer, frame *sampler.Frame) error {
	f, err := Workbook(frame)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// Save writes the workbook of frame to path.
func Save(path string, frame *sampler.Frame) error {
	f, err := Workbook(frame)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, frame *sampler.Frame) error {
	rows := [][]any{
		{"Signal", frame.SignalID},
		{"Name", frame.DisplayName},
		{"f(t)", frame.FormulaTime},
		{"F(s)", frame.FormulaLaplace},
	}
	for _, name := range frame.Params.Names() {
		rows = append(rows, []any{name, frame.Params.Get(name)})
	}
	rows = append(rows,
		[]any{"Magnitude gaps", frame.Magnitude.Gaps()},
		[]any{"Phase gaps", frame.Phase.Gaps()},
	)
	return writeRows(f, SheetSummary, rows)
}

func writeTime(f *excelize.File, frame *sampler.Frame) error {
	if _, err := f.NewSheet(SheetTime); err != nil {
		return err
	}
	rows := make([][]any, 0, len(frame.Time.X)+1)
	rows = append(rows, []any{"t", "f(t)"})
	for i, t := range frame.Time.X {
		rows = append(rows, []any{t, frame.Time.Y[i]})
	}
	return writeRows(f, SheetTime, rows)
}

func writeFrequency(f *excelize.File, frame *sampler.Frame) error {
	if _, err := f.NewSheet(SheetFrequency); err != nil {
		return err
	}
	rows := make([][]any, 0, len(frame.Magnitude.X)+1)
	rows = append(rows, []any{"ω", "|F(jω)|", "arg F(jω)"})
	for i, w := range frame.Magnitude.X {
		rows = append(rows, []any{w, cell(frame.Magnitude.Y[i]), cell(frame.Phase.Y[i])})
	}
	return writeRows(f, SheetFrequency, rows)
}

// writeSurface writes a matrix: σ across the first row, ω down the first column.
func writeSurface(f *excelize.File, frame *sampler.Frame) error {
	if _, err := f.NewSheet(SheetSurface); err != nil {
		return err
	}
	header := make([]any, 0, len(frame.Surface.Sigma)+1)
	header = append(header, "ω \\ σ")
	for _, s := range frame.Surface.Sigma {
		header = append(header, s)
	}

	rows := [][]any{header}
	for i, row := range frame.Surface.Rows() {
		r := make([]any, 0, len(row)+1)
		r = append(r, frame.Surface.Omega[i])
		for _, z := range row {
			r = append(r, z)
		}
		rows = append(rows, r)
	}
	return writeRows(f, SheetSurface, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// cell maps Undefined to nil, which excelize leaves blank.
func cell(v domain.Value) any {
	if f, ok := v.Float(); ok {
		return f
	}
	return nil
}
