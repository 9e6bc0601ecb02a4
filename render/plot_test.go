package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/sample"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

func TestSegments(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4, 5}
	ys := []float64{math.NaN(), 1, 2, math.Inf(-1), 4, 5}
	segs := segments(xs, ys)
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 2)
	assert.Equal(t, 1.0, segs[0][0].X)
	assert.Len(t, segs[1], 2)
	assert.Equal(t, 4.0, segs[1][0].X)

	assert.Empty(t, segments(xs[:2], []float64{math.NaN(), math.NaN()}))
}

func lnTable(t *testing.T) *sample.Table {
	t.Helper()
	exp, err := taylorpoly.Expand(symbol.LnOf(symbol.S("t")), "t", 4, symbol.Pi)
	require.NoError(t, err)
	grid, err := sample.Range("-0.5", "2*pi", "0.1")
	require.NoError(t, err)
	tbl, err := sample.Evaluate(exp, grid)
	require.NoError(t, err)
	return tbl
}

func TestPlot(t *testing.T) {
	lo, hi := -3.0, 3.0
	p, err := Plot(lnTable(t), Options{Title: "ln(t) about pi", YMin: &lo, YMax: &hi})
	require.NoError(t, err)
	assert.Equal(t, "ln(t) about pi", p.Title.Text)
	assert.Equal(t, "t", p.X.Label.Text)
	assert.Equal(t, lo, p.Y.Min)
	assert.Equal(t, hi, p.Y.Max)
}

func TestPlot_Errors(t *testing.T) {
	_, err := Plot(nil, Options{})
	assert.True(t, taylorerr.Is(err, taylorerr.TypeExport))

	lo, hi := 1.0, 1.0
	_, err = Plot(lnTable(t), Options{YMin: &lo, YMax: &hi})
	assert.True(t, taylorerr.Is(err, taylorerr.TypeInvalidRange))

	ragged := &sample.Table{Var: "t", Grid: []float64{1, 2}, Columns: []sample.Column{{Label: "f", Values: []float64{1}}}}
	_, err = Plot(ragged, Options{})
	assert.True(t, taylorerr.Is(err, taylorerr.TypeExport))
}

func TestSavePNG(t *testing.T) {
	p, err := Plot(lnTable(t), Options{Title: "ln"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "plots", "taylor_ln.png")
	require.NoError(t, SavePNG(p, path, 4, 3, 72))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(data[:8]))

	assert.Error(t, SavePNG(p, path, 0, 3, 72))
}
