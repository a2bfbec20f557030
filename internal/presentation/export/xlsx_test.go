package export_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/laplace/internal/presentation/export"
	"github.com/aretw0/laplace/pkg/catalog"
	"github.com/aretw0/laplace/pkg/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func unitStepFrame(t *testing.T) *sampler.Frame {
	t.Helper()
	sig, err := catalog.Lookup("unit_step")
	require.NoError(t, err)
	frame, err := sampler.New().Sample(context.Background(), sig, nil)
	require.NoError(t, err)
	return frame
}

func TestWrite(t *testing.T) {
	frame := unitStepFrame(t)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, frame))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		export.SheetSummary, export.SheetTime, export.SheetFrequency, export.SheetSurface,
	}, f.GetSheetList())

	v, err := f.GetCellValue(export.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "unit_step", v)

	rows, err := f.GetRows(export.SheetTime)
	require.NoError(t, err)
	assert.Len(t, rows, 222)
	assert.Equal(t, []string{"t", "f(t)"}, rows[0])
	assert.Equal(t, []string{"-1", "0"}, rows[1])

	// ω = 0 is row 202 (header + 200 points before it): the pole leaves blanks.
	w, err := f.GetCellValue(export.SheetFrequency, "A202")
	require.NoError(t, err)
	assert.Equal(t, "0", w)
	mag, err := f.GetCellValue(export.SheetFrequency, "B202")
	require.NoError(t, err)
	assert.Empty(t, mag)
	phase, err := f.GetCellValue(export.SheetFrequency, "C202")
	require.NoError(t, err)
	assert.Empty(t, phase)
	next, err := f.GetCellValue(export.SheetFrequency, "B203")
	require.NoError(t, err)
	assert.NotEmpty(t, next)

	surface, err := f.GetRows(export.SheetSurface)
	require.NoError(t, err)
	require.Len(t, surface, 52)
	assert.Len(t, surface[0], 52)
	assert.Equal(t, "-5", surface[0][1])
	assert.Equal(t, "-5", surface[1][0])
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.xlsx")
	require.NoError(t, export.Save(path, unitStepFrame(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(export.SheetSurface, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ω \\ σ", v)
}
