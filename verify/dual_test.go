package verify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/njchilds90/taylorpoly/symbol"
)

func TestDualFunc(t *testing.T) {
	fn, ok := dualFunc(symbol.MustParse("t^3 + 2*t"), "t")
	require.True(t, ok)
	v := fn(hyperdual.Number{Real: 2, E1mag: 1, E2mag: 1})
	assert.InDelta(t, 12, v.Real, 1e-12)
	assert.InDelta(t, 14, v.E1mag, 1e-12)
	assert.InDelta(t, 12, v.E1E2mag, 1e-12)

	fn, ok = dualFunc(symbol.MulOf(symbol.Pi, symbol.SinOf(symbol.S("t"))), "t")
	require.True(t, ok)
	v = fn(hyperdual.Number{Real: 0, E1mag: 1, E2mag: 1})
	assert.InDelta(t, math.Pi, v.E1mag, 1e-12)
}

func TestDualFunc_Unsupported(t *testing.T) {
	for _, src := range []string{"abs(t)", "floor(t)", "t*y", "sign(t) + 1"} {
		_, ok := dualFunc(symbol.MustParse(src), "t")
		assert.False(t, ok, src)
	}
}
