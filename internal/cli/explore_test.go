package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/laplace"
	"github.com/aretw0/laplace/internal/presentation/chart"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListSignals(t *testing.T) {
	explorer := laplace.New()

	var buf bytes.Buffer
	require.NoError(t, ListSignals(&buf, explorer, OutputOptions{}))
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "damped_sine")
	assert.Contains(t, out, "a,w0")

	buf.Reset()
	require.NoError(t, ListSignals(&buf, explorer, OutputOptions{JSON: true}))
	var list []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	assert.Len(t, list, len(catalog.List()))
}

func TestDescribe(t *testing.T) {
	explorer := laplace.New()

	var buf bytes.Buffer
	require.NoError(t, Describe(&buf, explorer, "sine", domain.Params{catalog.ParamFrequency: 2}, OutputOptions{}))
	assert.Contains(t, buf.String(), "# Sine")
	assert.Contains(t, buf.String(), "`0.00 + j2.00`")

	buf.Reset()
	require.NoError(t, Describe(&buf, explorer, "sine", nil, OutputOptions{Styled: true}))
	assert.NotEmpty(t, buf.String())

	err := Describe(&buf, explorer, "square", nil, OutputOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownSignal)
}

func TestSample(t *testing.T) {
	explorer := laplace.New()
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, Sample(ctx, &buf, explorer, "sine", domain.Params{catalog.ParamFrequency: 1}, OutputOptions{}))
	out := buf.String()
	assert.Contains(t, out, "Sine (sine)")
	assert.Contains(t, out, "params:    w0=1")
	assert.Contains(t, out, "time:      221 points")
	assert.Contains(t, out, "magnitude: 401 points, 2 gaps, 3 segments")
	assert.Contains(t, out, "surface:   51x51 points")

	buf.Reset()
	require.NoError(t, Sample(ctx, &buf, explorer, "unit_step", nil, OutputOptions{JSON: true}))
	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "unit_step", raw["signal"])

	err := Sample(ctx, &buf, explorer, "sine", domain.Params{"zeta": 1}, OutputOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)
}

func TestRenderCharts(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, RenderCharts(context.Background(), &buf, laplace.New(), "exponential", nil, dir, chart.FormatSVG))

	for _, view := range chart.Views {
		_, err := os.Stat(filepath.Join(dir, "exponential_"+view+".svg"))
		assert.NoError(t, err, view)
	}
	assert.Contains(t, buf.String(), ">>> Wrote ")
}

func TestExportWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosine")
	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(context.Background(), &buf, laplace.New(), "cosine", nil, path))

	f, err := excelize.OpenFile(path + ".xlsx")
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Frequency")
}

func TestPoleZeroMap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PoleZeroMap(&buf, laplace.New(), "damped_sine", nil))
	assert.Contains(t, buf.String(), "quadrantChart")
	assert.Contains(t, buf.String(), "Pole 1")

	err := PoleZeroMap(&buf, laplace.New(), "damped_sine", domain.Params{"zeta": 1})
	assert.ErrorIs(t, err, domain.ErrUnknownParameter)
}
