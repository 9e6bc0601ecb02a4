package symbol_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

func TestJSON_RoundTrip(t *testing.T) {
	exprs := []symbol.Expr{
		symbol.F(1, 3),
		symbol.LnOf(symbol.SubOf(tSym, symbol.Pi)),
		symbol.MulOf(symbol.F(-1, 6), symbol.PowOf(symbol.SubOf(tSym, symbol.E), symbol.N(3))),
		symbol.SqrtOf(symbol.AddOf(x, y)),
	}
	for _, e := range exprs {
		s, err := symbol.ToJSON(e)
		require.NoError(t, err)
		back, err := symbol.UnmarshalExpr([]byte(s))
		require.NoError(t, err, s)
		assert.True(t, back.Equal(e), "%s came back as %s", e, back)
	}
}

func TestJSON_WireFormat(t *testing.T) {
	s, err := symbol.ToJSON(symbol.Pi)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"const","name":"pi"}`, s)

	s, err = symbol.ToJSON(symbol.F(1, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"num","value":"1/3"}`, s)
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []string{
		`{}`,
		`{"type":"bogus"}`,
		`{"type":"num","value":"one"}`,
		`{"type":"const","name":"tau"}`,
		`{"type":"func","name":"D[f]","arg":{"type":"sym","name":"x"}}`,
		`{"type":"add","terms":[1]}`,
		`{"type":"pow","base":{"type":"sym","name":"x"}}`,
		`not json`,
	}
	for _, src := range tests {
		_, err := symbol.UnmarshalExpr([]byte(src))
		require.Error(t, err, src)
		assert.True(t, taylorerr.Is(err, taylorerr.TypeParse), src)
	}
}

func TestFromJSON_DecodedMap(t *testing.T) {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"func","name":"ln","arg":{"type":"sym","name":"t"}}`), &m))
	e, err := symbol.FromJSON(m)
	require.NoError(t, err)
	assert.Equal(t, "ln(t)", e.String())
	assert.Equal(t, m, symbol.ToMap(e))
}
