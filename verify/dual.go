package verify

import (
	"gonum.org/v1/gonum/num/hyperdual"

	"github.com/njchilds90/taylorpoly/symbol"
)

type dualFn func(hyperdual.Number) hyperdual.Number

// dualFunc compiles e into a hyperdual function of name. It reports false
// when e uses a head hyperdual has no rule for, or a free symbol other
// than name.
func dualFunc(e symbol.Expr, name string) (dualFn, bool) {
	switch v := e.(type) {
	case *symbol.Num:
		c := hyperdual.Number{Real: v.Float64()}
		return func(hyperdual.Number) hyperdual.Number { return c }, true
	case *symbol.Const:
		c := hyperdual.Number{Real: v.Float64()}
		return func(hyperdual.Number) hyperdual.Number { return c }, true
	case *symbol.Sym:
		if v.Name() != name {
			return nil, false
		}
		return func(x hyperdual.Number) hyperdual.Number { return x }, true
	case *symbol.Add:
		return fold(v.Terms(), name, hyperdual.Add)
	case *symbol.Mul:
		return fold(v.Factors(), name, hyperdual.Mul)
	case *symbol.Pow:
		base, ok := dualFunc(v.Base(), name)
		if !ok {
			return nil, false
		}
		if n, isNum := v.Exponent().(*symbol.Num); isNum {
			p := n.Float64()
			return func(x hyperdual.Number) hyperdual.Number { return hyperdual.PowReal(base(x), p) }, true
		}
		exp, ok := dualFunc(v.Exponent(), name)
		if !ok {
			return nil, false
		}
		return func(x hyperdual.Number) hyperdual.Number { return hyperdual.Pow(base(x), exp(x)) }, true
	case *symbol.Func:
		head, ok := dualHeads[v.FuncName()]
		if !ok {
			return nil, false
		}
		arg, ok := dualFunc(v.Arg(), name)
		if !ok {
			return nil, false
		}
		return func(x hyperdual.Number) hyperdual.Number { return head(arg(x)) }, true
	}
	return nil, false
}

func fold(parts []symbol.Expr, name string, op func(a, b hyperdual.Number) hyperdual.Number) (dualFn, bool) {
	fns := make([]dualFn, len(parts))
	for i, p := range parts {
		fn, ok := dualFunc(p, name)
		if !ok {
			return nil, false
		}
		fns[i] = fn
	}
	return func(x hyperdual.Number) hyperdual.Number {
		acc := fns[0](x)
		for _, fn := range fns[1:] {
			acc = op(acc, fn(x))
		}
		return acc
	}, true
}

var dualHeads = map[string]func(hyperdual.Number) hyperdual.Number{
	"sin":  hyperdual.Sin,
	"cos":  hyperdual.Cos,
	"tan":  hyperdual.Tan,
	"exp":  hyperdual.Exp,
	"ln":   hyperdual.Log,
	"asin": hyperdual.Asin,
	"acos": hyperdual.Acos,
	"atan": hyperdual.Atan,
	"sinh": hyperdual.Sinh,
	"cosh": hyperdual.Cosh,
	"tanh": hyperdual.Tanh,
}
