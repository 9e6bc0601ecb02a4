package symbol

import (
	"math"
	"math/big"
)

// Func is a named elementary function applied to one argument.
type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr   { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr   { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr   { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr   { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr    { return funcOf("ln", arg).Simplify() }
func AbsOf(arg Expr) Expr   { return funcOf("abs", arg).Simplify() }
func AsinOf(arg Expr) Expr  { return funcOf("asin", arg).Simplify() }
func AcosOf(arg Expr) Expr  { return funcOf("acos", arg).Simplify() }
func AtanOf(arg Expr) Expr  { return funcOf("atan", arg).Simplify() }
func SinhOf(arg Expr) Expr  { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr  { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr  { return funcOf("tanh", arg).Simplify() }
func FloorOf(arg Expr) Expr { return funcOf("floor", arg).Simplify() }
func CeilOf(arg Expr) Expr  { return funcOf("ceil", arg).Simplify() }
func SignOf(arg Expr) Expr  { return funcOf("sign", arg).Simplify() }

// funcTable maps the names Parse and FromJSON accept to constructors.
var funcTable = map[string]func(Expr) Expr{
	"sin": SinOf, "cos": CosOf, "tan": TanOf,
	"exp": ExpOf, "ln": LnOf, "log": LnOf, "sqrt": SqrtOf,
	"asin": AsinOf, "acos": AcosOf, "atan": AtanOf,
	"sinh": SinhOf, "cosh": CoshOf, "tanh": TanhOf,
	"abs": AbsOf, "floor": FloorOf, "ceil": CeilOf, "sign": SignOf,
}

// LookupFunc returns the constructor for a function name.
func LookupFunc(name string) (func(Expr) Expr, bool) {
	fn, ok := funcTable[name]
	return fn, ok
}

// Simplify folds only identities with exact results. Transcendental values of
// numbers stay symbolic; Eval and Evalf produce their floats.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	n, isNum := arg.(*Num)
	switch f.name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0)
		}
	case "cos", "cosh":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0)
		}
	case "ln":
		if isNumEqual(arg, 1) {
			return N(0)
		}
		if c, ok := arg.(*Const); ok && c == E {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "abs":
		if isNum {
			if n.IsNegative() {
				return numMul(n, N(-1))
			}
			return n
		}
		if c, ok := arg.(*Const); ok && c.value > 0 {
			return c
		}
		if m, ok := arg.(*Mul); ok {
			if coeff, ok := m.factors[0].(*Num); ok && coeff.IsNegative() {
				return AbsOf(MulOf(numMul(coeff, N(-1)), MulOf(m.factors[1:]...)))
			}
		}
	case "floor":
		if isNum {
			return numFloor(n)
		}
	case "ceil":
		if isNum {
			return numMul(numFloor(numMul(n, N(-1))), N(-1))
		}
	case "sign":
		if isNum {
			return N(int64(n.val.Sign()))
		}
	}
	return &Func{name: f.name, arg: arg}
}

// numFloor relies on big.Int.Div being Euclidean and Rat denominators being
// positive.
func numFloor(n *Num) *Num {
	q := new(big.Int).Div(n.val.Num(), n.val.Denom())
	return &Num{val: new(big.Rat).SetInt(q)}
}

func (f *Func) String() string { return printer{}.print(f) }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "floor":
		return "\\lfloor " + f.arg.LaTeX() + " \\rfloor"
	case "ceil":
		return "\\lceil " + f.arg.LaTeX() + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(name string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(name, value)).Simplify()
}

// Diff applies the chain rule. abs, floor, ceil and sign have no derivative
// everywhere and are rejected.
func (f *Func) Diff(name string) (Expr, error) {
	du, err := f.arg.Diff(name)
	if err != nil {
		return nil, err
	}
	if isNumEqual(du.Simplify(), 0) {
		return N(0), nil
	}
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "asin":
		outer = PowOf(SubOf(N(1), PowOf(f.arg, N(2))), F(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(SubOf(N(1), PowOf(f.arg, N(2))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "sinh":
		outer = CoshOf(f.arg)
	case "cosh":
		outer = SinhOf(f.arg)
	case "tanh":
		outer = SubOf(N(1), PowOf(TanhOf(f.arg), N(2)))
	case "abs", "floor", "ceil", "sign":
		return nil, diffError(f, name, f.name+" is not differentiable everywhere")
	default:
		return nil, diffError(f, name, "unknown function "+f.name)
	}
	return MulOf(outer, du), nil
}

// Eval reports false outside the real domain of the function.
func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	switch f.name {
	case "abs", "floor", "ceil", "sign":
		r, ok := funcOf(f.name, n).Simplify().(*Num)
		return r, ok
	}
	v, ok := applyFloat(f.name, n.Float64())
	if !ok {
		return nil, false
	}
	return foldFloat(v)
}

// applyFloat evaluates a function head on a float. Results outside the real
// domain are NaN and report false.
func applyFloat(name string, v float64) (float64, bool) {
	var r float64
	switch name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "exp":
		r = math.Exp(v)
	case "ln":
		if v <= 0 {
			return math.NaN(), false
		}
		r = math.Log(v)
	case "asin":
		r = math.Asin(v)
	case "acos":
		r = math.Acos(v)
	case "atan":
		r = math.Atan(v)
	case "sinh":
		r = math.Sinh(v)
	case "cosh":
		r = math.Cosh(v)
	case "tanh":
		r = math.Tanh(v)
	case "abs":
		r = math.Abs(v)
	case "floor":
		r = math.Floor(v)
	case "ceil":
		r = math.Ceil(v)
	case "sign":
		switch {
		case v > 0:
			r = 1
		case v < 0:
			r = -1
		}
	default:
		return math.NaN(), false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return r, false
	}
	return r, true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) kind() string { return "func" }

func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
