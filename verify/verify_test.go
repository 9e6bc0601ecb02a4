package verify_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
	"github.com/njchilds90/taylorpoly/verify"
)

var tSym = symbol.S("t")

func expand(t *testing.T, f symbol.Expr, order int, point symbol.Expr) *taylorpoly.Expansion {
	t.Helper()
	exp, err := taylorpoly.Expand(f, "t", order, point)
	require.NoError(t, err)
	return exp
}

func TestDerivatives_LnAboutPi(t *testing.T) {
	checks, err := verify.Derivatives(expand(t, symbol.LnOf(tSym), 4, symbol.Pi), verify.Options{})
	require.NoError(t, err)
	require.Len(t, checks, 4)
	assert.True(t, verify.Passed(checks))

	for _, c := range checks {
		assert.Equal(t, math.Pi, c.At)
		switch c.Order {
		case 1:
			assert.InDelta(t, 1/math.Pi, c.Symbolic, 1e-15)
		case 2:
			assert.InDelta(t, -1/(math.Pi*math.Pi), c.Symbolic, 1e-15)
		}
		if c.Method == verify.HyperDual {
			assert.InDelta(t, c.Symbolic, c.Numeric, 1e-14)
		}
	}
}

func TestDerivatives_Mixed(t *testing.T) {
	f := symbol.MustParse("sin(t)^2*exp(-t) + sqrt(t) + t^t")
	checks, err := verify.Derivatives(expand(t, f, 3, symbol.N(1)), verify.Options{})
	require.NoError(t, err)
	assert.Len(t, checks, 4)
	assert.True(t, verify.Passed(checks), "%+v", checks)
}

func TestDerivatives_At(t *testing.T) {
	at := 2.0
	checks, err := verify.Derivatives(expand(t, symbol.ExpOf(tSym), 2, symbol.N(0)), verify.Options{At: &at})
	require.NoError(t, err)
	for _, c := range checks {
		assert.Equal(t, 2.0, c.At)
		assert.InDelta(t, math.Exp(2), c.Symbolic, 1e-12)
		assert.True(t, c.Pass)
	}
}

func TestDerivatives_OrderLimits(t *testing.T) {
	checks, err := verify.Derivatives(expand(t, symbol.ExpOf(tSym), 1, symbol.N(0)), verify.Options{})
	require.NoError(t, err)
	require.Len(t, checks, 2)
	for _, c := range checks {
		assert.Equal(t, 1, c.Order)
	}

	checks, err = verify.Derivatives(expand(t, symbol.ExpOf(tSym), 0, symbol.N(0)), verify.Options{})
	require.NoError(t, err)
	assert.Empty(t, checks)
}

func TestDerivatives_Errors(t *testing.T) {
	_, err := verify.Derivatives(expand(t, symbol.ExpOf(tSym), 2, symbol.S("x0")), verify.Options{})
	assert.True(t, taylorerr.Is(err, taylorerr.TypeSubstitution))

	_, err = verify.Derivatives(expand(t, symbol.ExpOf(tSym), 2, symbol.N(0)), verify.Options{Tol: -1})
	assert.True(t, taylorerr.Is(err, taylorerr.TypeInvalidConfig))
}

func TestDerivatives_TightTolFails(t *testing.T) {
	checks, err := verify.Derivatives(expand(t, symbol.LnOf(tSym), 2, symbol.N(1)), verify.Options{Tol: 1e-300})
	require.NoError(t, err)
	assert.False(t, verify.Passed(checks))
}
