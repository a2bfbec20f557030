package domain

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a fixed-resolution 1D sampling domain. Both ends are included.
type Grid struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
	Step  float64 `json:"step"`
}

// Len is the number of points on the grid.
func (g Grid) Len() int {
	return int(math.Round((g.Stop-g.Start)/g.Step)) + 1
}

// Points materializes the grid. Points are placed by index rather than by
// accumulating Step, so the endpoint is exact and no point drifts.
func (g Grid) Points() []float64 {
	return floats.Span(make([]float64, g.Len()), g.Start, g.Stop)
}
