package symbol

import (
	"fmt"
	"math"
	"math/big"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Num is an exact rational number.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns p/q. It panics when q is zero.
func F(p, q int64) *Num {
	if q == 0 {
		panic("symbol: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NFloat returns the exact rational value of f. It panics on NaN or ±Inf;
// use NumFromFloat when f comes from outside.
func NFloat(f float64) *Num {
	n, err := NumFromFloat(f)
	if err != nil {
		panic("symbol: " + err.Error())
	}
	return n
}

// NumFromFloat returns the exact rational value of f.
func NumFromFloat(f float64) (*Num, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, taylorerr.Newf(taylorerr.TypeSubstitution, "%v has no rational value", f)
	}
	return &Num{val: new(big.Rat).SetFloat64(f)}, nil
}

// Factorial returns n! as an exact number.
func Factorial(n int) *Num {
	if n < 0 {
		panic(fmt.Sprintf("symbol: factorial of %d", n))
	}
	if n < 2 {
		return N(1)
	}
	return &Num{val: new(big.Rat).SetInt(new(big.Int).MulRange(1, int64(n)))}
}

func (n *Num) Simplify() Expr            { return n }
func (n *Num) Sub(string, Expr) Expr     { return n }
func (n *Num) Diff(string) (Expr, error) { return N(0), nil }
func (n *Num) Eval() (*Num, bool)        { return n, true }
func (n *Num) Equal(other Expr) bool     { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) kind() string              { return "num" }
func (n *Num) Float64() float64          { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool              { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool               { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool            { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool           { return n.val.IsInt() }
func (n *Num) IsNegative() bool          { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symbol: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// numPow raises b to a small integer power exactly. b must be non-zero when
// e is negative.
func numPow(b *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	result := N(1)
	for i := int64(0); i < e; i++ {
		result = numMul(result, b)
	}
	if neg {
		return numRecip(result)
	}
	return result
}

// foldFloat turns a float result into a Num, or reports false when the value
// is not finite.
func foldFloat(f float64) (*Num, bool) {
	n, err := NumFromFloat(f)
	if err != nil {
		return nil, false
	}
	return n, true
}
