package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want symbol.Expr
	}{
		{"ln(t)", symbol.LnOf(tSym)},
		{"log(t)", symbol.LnOf(tSym)},
		{"sin(2*t) + t^3", symbol.AddOf(symbol.SinOf(symbol.MulOf(symbol.N(2), tSym)), symbol.PowOf(tSym, symbol.N(3)))},
		{"2^3^2", symbol.N(512)},
		{"-x^2", symbol.MulOf(symbol.N(-1), symbol.PowOf(x, symbol.N(2)))},
		{"x**2", symbol.PowOf(x, symbol.N(2))},
		{"pi", symbol.Pi},
		{"e", symbol.E},
		{"0.1", symbol.F(1, 10)},
		{"1e-3", symbol.F(1, 1000)},
		{"sqrt(x)", symbol.SqrtOf(x)},
		{"x / y", symbol.DivOf(x, y)},
		{" ( x + y ) * 2 ", symbol.MulOf(symbol.N(2), symbol.AddOf(x, y))},
		{"exp(-t)", symbol.ExpOf(symbol.MulOf(symbol.N(-1), tSym))},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			got, err := symbol.Parse(tc.src)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		src    string
		column string
	}{
		{"", "column 1"},
		{"x +", "column 4"},
		{"(x", "column 3"},
		{"foo(x)", "column 1"},
		{"x $ y", "column 3"},
		{"x y", "column 3"},
		{"ln(x", "column 5"},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			_, err := symbol.Parse(tc.src)
			require.Error(t, err)
			assert.Equal(t, taylorerr.TypeParse, taylorerr.TypeOf(err))
			assert.Contains(t, err.Error(), tc.column)
		})
	}
}

func TestParse_ReadsBackString(t *testing.T) {
	exprs := []symbol.Expr{
		symbol.MulOf(symbol.N(2), symbol.PowOf(tSym, symbol.N(-3))),
		symbol.SqrtOf(x),
		symbol.SubOf(tSym, symbol.Pi),
		symbol.MulOf(symbol.F(-1, 6), symbol.PowOf(symbol.SubOf(tSym, symbol.Pi), symbol.N(3))),
		symbol.AddOf(symbol.LnOf(symbol.Pi), symbol.DivOf(symbol.SubOf(tSym, symbol.Pi), symbol.Pi)),
		symbol.PowOf(symbol.F(1, 2), x),
	}
	for _, e := range exprs {
		got, err := symbol.Parse(e.String())
		require.NoError(t, err, e.String())
		assert.True(t, got.Equal(e), "%s read back as %s", e, got)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { symbol.MustParse("(") })
	assert.NotPanics(t, func() { symbol.MustParse("t") })
}
