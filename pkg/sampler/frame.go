package sampler

import (
	"encoding/json"

	"github.com/aretw0/laplace/pkg/domain"
	"gonum.org/v1/gonum/mat"
)

// Series is a fully defined curve.
type Series struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// GapSeries is a curve that may be undefined at some points.
// Renderers must break the line at every Undefined entry instead of
// interpolating across it.
type GapSeries struct {
	X []float64      `json:"x"`
	Y []domain.Value `json:"y"`
}

// Gaps counts the undefined points.
func (g GapSeries) Gaps() int {
	n := 0
	for _, v := range g.Y {
		if !v.IsDefined() {
			n++
		}
	}
	return n
}

// Segments splits the curve into maximal runs of defined points.
func (g GapSeries) Segments() []Series {
	var (
		out []Series
		cur Series
	)
	for i, v := range g.Y {
		f, ok := v.Float()
		if !ok {
			if len(cur.X) > 0 {
				out = append(out, cur)
				cur = Series{}
			}
			continue
		}
		cur.X = append(cur.X, g.X[i])
		cur.Y = append(cur.Y, f)
	}
	if len(cur.X) > 0 {
		out = append(out, cur)
	}
	return out
}

// Surface is |F(σ+jω)| over the complex plane.
// Z has one row per Omega value and one column per Sigma value, the
// orientation surface plots expect (x = σ, y = ω).
type Surface struct {
	Sigma []float64
	Omega []float64
	Z     *mat.Dense
}

// At returns the clamped magnitude at row i (ω) and column j (σ).
func (s Surface) At(i, j int) float64 {
	return s.Z.At(i, j)
}

// Rows returns Z as nested slices, row-major.
func (s Surface) Rows() [][]float64 {
	if s.Z == nil {
		return nil
	}
	r, _ := s.Z.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, s.Z)
	}
	return rows
}

type surfaceJSON struct {
	Sigma []float64   `json:"sigma"`
	Omega []float64   `json:"omega"`
	Z     [][]float64 `json:"z"`
}

func (s Surface) MarshalJSON() ([]byte, error) {
	return json.Marshal(surfaceJSON{Sigma: s.Sigma, Omega: s.Omega, Z: s.Rows()})
}

func (s *Surface) UnmarshalJSON(data []byte) error {
	var raw surfaceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Sigma, s.Omega = raw.Sigma, raw.Omega
	if len(raw.Sigma) == 0 || len(raw.Omega) == 0 {
		s.Z = nil
		return nil
	}
	s.Z = mat.NewDense(len(raw.Omega), len(raw.Sigma), nil)
	for i, row := range raw.Z {
		s.Z.SetRow(i, row)
	}
	return nil
}

// Frame is everything a renderer needs to draw the three views of one
// signal at one parameter state.
type Frame struct {
	SignalID       string        `json:"signal"`
	DisplayName    string        `json:"name"`
	FormulaTime    string        `json:"formula_time"`
	FormulaLaplace string        `json:"formula_laplace"`
	Params         domain.Params `json:"params"`
	Time           Series        `json:"time"`
	Magnitude      GapSeries     `json:"magnitude"`
	Phase          GapSeries     `json:"phase"`
	Surface        Surface       `json:"surface"`
}
