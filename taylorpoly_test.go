package taylorpoly_test

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

var tSym = symbol.S("t")

func requireInvariants(t *testing.T, exp *taylorpoly.Expansion) {
	t.Helper()
	derivs, terms, polys := exp.Derivatives(), exp.Terms(), exp.Polynomials()
	require.Len(t, derivs, exp.Order+1)
	require.Len(t, terms, exp.Order+1)
	require.Len(t, polys, exp.Order+1)

	assert.True(t, polys[0].Equal(terms[0]))
	for k := 1; k < len(polys); k++ {
		assert.True(t, polys[k].Equal(symbol.AddOf(polys[k-1], terms[k])), "P%d", k)
	}
	for i, d := range derivs {
		assert.False(t, symbol.HasSymbol(d, exp.Var), "derivative %d still mentions %s: %s", i, exp.Var, d)
	}
	assert.False(t, symbol.HasSymbol(terms[0], exp.Var))

	again, err := taylorpoly.Terms(derivs, exp.Var, exp.Placeholder, exp.Point)
	require.NoError(t, err)
	for i := range terms {
		assert.True(t, again[i].Equal(terms[i]), "term %d: %s != %s", i, again[i], terms[i])
	}
}

func TestExpand_LnAboutPi(t *testing.T) {
	f := symbol.LnOf(tSym)
	for name, point := range map[string]symbol.Expr{
		"const": symbol.Pi,
		"float": symbol.NFloat(math.Pi),
	} {
		t.Run(name, func(t *testing.T) {
			exp, err := taylorpoly.Expand(f, "t", 4, point)
			require.NoError(t, err)
			requireInvariants(t, exp)
			assert.Equal(t, "a", exp.Placeholder)
			assert.Equal(t, 5, exp.Len())

			p0, ok := exp.Polynomial(0).Eval()
			require.True(t, ok)
			assert.InDelta(t, 1.1447, p0.Float64(), 1e-4)

			atPoint := symbol.Sub(exp.Polynomial(4), "t", point)
			assert.True(t, atPoint.Equal(symbol.LnOf(point)), "P4(point) = %s", atPoint)

			for k, p := range exp.Polynomials() {
				assert.Equal(t, k, symbol.Degree(p, "t"), "degree of P%d", k)
			}

			direct, err := symbol.Substitute(f, "t", point)
			require.NoError(t, err)
			assert.True(t, exp.Terms()[0].Equal(direct))
		})
	}
}

func TestExpand_LnDerivatives(t *testing.T) {
	exp, err := taylorpoly.Expand(symbol.LnOf(tSym), "t", 4, symbol.Pi)
	require.NoError(t, err)
	want := []string{"ln(a)", "a^-1", "-a^-2", "2*a^-3", "-6*a^-4"}
	for i, d := range exp.Derivatives() {
		assert.Equal(t, want[i], d.String())
	}
	assert.Equal(t, "pi^-1*(t - pi)", exp.Terms()[1].String())
}

func TestExpand_ExpAboutZero(t *testing.T) {
	exp, err := taylorpoly.Expand(symbol.ExpOf(tSym), "t", 4, symbol.N(0))
	require.NoError(t, err)
	requireInvariants(t, exp)
	assert.Equal(t, "t + 1/2*t^2 + 1/6*t^3 + 1/24*t^4 + 1", exp.Polynomial(4).String())

	f, err := symbol.Lambdify(exp.Polynomial(4), "t")
	require.NoError(t, err)
	v, err := f(0.1)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(0.1), v, 1e-6)
}

func TestExpand_OrderZero(t *testing.T) {
	f := symbol.AddOf(symbol.SinOf(tSym), symbol.PowOf(tSym, symbol.N(2)))
	exp, err := taylorpoly.Expand(f, "t", 0, symbol.N(2))
	require.NoError(t, err)
	requireInvariants(t, exp)

	want := symbol.AddOf(symbol.SinOf(symbol.N(2)), symbol.N(4))
	assert.True(t, exp.Terms()[0].Equal(want), exp.Terms()[0].String())
	assert.True(t, exp.Polynomial(0).Equal(want))
}

func TestExpand_ZeroTermsAreKept(t *testing.T) {
	exp, err := taylorpoly.Expand(symbol.CosOf(tSym), "t", 3, symbol.N(0))
	require.NoError(t, err)
	requireInvariants(t, exp)
	terms := exp.Terms()
	assert.Equal(t, "0", terms[1].String())
	assert.Equal(t, "0", terms[3].String())
	assert.True(t, exp.Polynomial(1).Equal(exp.Polynomial(0)))
}

func TestExpand_SymbolicPoint(t *testing.T) {
	x0 := symbol.S("x0")
	exp, err := taylorpoly.Expand(symbol.ExpOf(tSym), "t", 2, x0)
	require.NoError(t, err)
	requireInvariants(t, exp)
	assert.True(t, symbol.HasSymbol(exp.Terms()[2], "x0"))
	assert.True(t, symbol.Sub(exp.Polynomial(2), "t", x0).Equal(symbol.ExpOf(x0)))
}

func TestExpand_PlaceholderAvoidsCollisions(t *testing.T) {
	f := symbol.MulOf(symbol.S("a"), symbol.SinOf(tSym))
	exp, err := taylorpoly.Expand(f, "t", 2, symbol.N(0))
	require.NoError(t, err)
	requireInvariants(t, exp)
	assert.Equal(t, "a_1", exp.Placeholder)

	exp, err = taylorpoly.Expand(symbol.SinOf(tSym), "t", 1, symbol.S("a"))
	require.NoError(t, err)
	assert.Equal(t, "a_1", exp.Placeholder)

	exp, err = taylorpoly.NewExpander(taylorpoly.WithPlaceholder("p")).Expand(symbol.SinOf(tSym), "t", 1, symbol.N(0))
	require.NoError(t, err)
	assert.Equal(t, "p", exp.Placeholder)
}

func TestExpand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		f     symbol.Expr
		order int
		point symbol.Expr
		want  taylorerr.ErrorType
	}{
		{"negative order", symbol.LnOf(tSym), -1, symbol.Pi, taylorerr.TypeInvalidOrder},
		{"abs has no derivative", symbol.AbsOf(tSym), 2, symbol.N(1), taylorerr.TypeDifferentiation},
		{"ln undefined at zero", symbol.LnOf(tSym), 2, symbol.N(0), taylorerr.TypeSubstitution},
		{"point depends on variable", symbol.LnOf(tSym), 2, symbol.AddOf(tSym, symbol.N(1)), taylorerr.TypeSubstitution},
		{"nil point", symbol.LnOf(tSym), 2, nil, taylorerr.TypeSubstitution},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exp, err := taylorpoly.Expand(tc.f, "t", tc.order, tc.point)
			require.Error(t, err)
			assert.Nil(t, exp)
			assert.Equal(t, tc.want, taylorerr.TypeOf(err))
		})
	}

	exp, err := taylorpoly.Expand(symbol.AbsOf(tSym), "t", 0, symbol.N(-2))
	require.NoError(t, err, "order 0 never differentiates")
	assert.Equal(t, "2", exp.Terms()[0].String())
}

func TestAccumulate(t *testing.T) {
	out := taylorpoly.Accumulate(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	terms := []symbol.Expr{symbol.N(1), tSym, symbol.PowOf(tSym, symbol.N(2))}
	out = taylorpoly.Accumulate(terms)
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].String())
	assert.Equal(t, "t + 1", out[1].String())
	assert.Equal(t, "t + t^2 + 1", out[2].String())
}

func TestExpansion_AccessorsCopy(t *testing.T) {
	exp, err := taylorpoly.Expand(symbol.LnOf(tSym), "t", 2, symbol.Pi)
	require.NoError(t, err)
	terms := exp.Terms()
	terms[0] = symbol.N(99)
	assert.NotEqual(t, "99", exp.Terms()[0].String())
}

func TestExpander_LogsEachOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := taylorpoly.NewExpander(taylorpoly.WithLogger(logger)).Expand(symbol.LnOf(tSym), "t", 2, symbol.Pi)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte(`"message":"derivative"`)))
	assert.Contains(t, buf.String(), `"derivative":"-a^-2"`)
}

func TestExpansion_MarshalJSON(t *testing.T) {
	exp, err := taylorpoly.Expand(symbol.LnOf(tSym), "t", 1, symbol.Pi)
	require.NoError(t, err)
	b, err := json.Marshal(exp)
	require.NoError(t, err)

	var got struct {
		Var         string `json:"var"`
		Placeholder string `json:"placeholder"`
		Terms       []struct {
			String string `json:"string"`
		} `json:"terms"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "t", got.Var)
	assert.Equal(t, "a", got.Placeholder)
	require.Len(t, got.Terms, 2)
	assert.Equal(t, "ln(pi)", got.Terms[0].String)
}

func TestExpand_ConcurrentCallsAreIndependent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*taylorpoly.Expansion, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			exp, err := taylorpoly.Expand(symbol.LnOf(tSym), "t", i, symbol.Pi)
			if err == nil {
				results[i] = exp
			}
		}(i)
	}
	wg.Wait()
	for i, exp := range results {
		require.NotNil(t, exp)
		assert.Equal(t, i+1, exp.Len())
		assert.Equal(t, "a", exp.Placeholder)
	}
}
