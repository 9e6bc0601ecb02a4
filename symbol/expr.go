// Package symbol is a small deterministic computer-algebra kernel.
//
// Expressions are immutable trees built through the XxxOf constructors, which
// simplify as they build:
//   - exact rational arithmetic (math/big.Rat)
//   - like terms and numeric factors folded on construction
//   - stable ordering, so equal inputs print and compare equal
//
// The kernel supplies what a Taylor expansion needs from an algebra system:
// differentiation, substitution, snapshots of an expression under a placeholder
// symbol, and numeric evaluation.
package symbol

import (
	"strconv"
	"strings"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Expr is a symbolic expression.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	// Sub replaces every occurrence of the symbol name with value.
	Sub(name string, value Expr) Expr
	// Diff differentiates with respect to the symbol name.
	Diff(name string) (Expr, error)
	// Eval folds the expression to a number when it has no free symbols.
	Eval() (*Num, bool)
	Equal(other Expr) bool
	kind() string
	toJSON() map[string]interface{}
}

// key identifies an expression by structure, tagging every node with its
// kind. Unlike String it tells the symbol pi from the constant pi.
func key(e Expr) string {
	var b strings.Builder
	writeKey(&b, e)
	return b.String()
}

func writeKey(b *strings.Builder, e Expr) {
	b.WriteString(e.kind())
	b.WriteByte('(')
	switch v := e.(type) {
	case *Num:
		b.WriteString(v.val.RatString())
	case *Sym:
		b.WriteString(strconv.Quote(v.name))
	case *Const:
		b.WriteString(strconv.Quote(v.name))
	case *Add:
		writeKeys(b, v.terms)
	case *Mul:
		writeKeys(b, v.factors)
	case *Pow:
		writeKeys(b, []Expr{v.base, v.exp})
	case *Func:
		b.WriteString(strconv.Quote(v.name))
		b.WriteByte(',')
		writeKey(b, v.arg)
	}
	b.WriteByte(')')
}

func writeKeys(b *strings.Builder, es []Expr) {
	for i, e := range es {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, e)
	}
}

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Sub substitutes and simplifies. It never fails; see Substitute for the
// checked form.
func Sub(e Expr, name string, value Expr) Expr {
	return e.Sub(name, value).Simplify()
}

// Diff differentiates e with respect to name and simplifies the result.
func Diff(e Expr, name string) (Expr, error) {
	d, err := e.Diff(name)
	if err != nil {
		return nil, err
	}
	return d.Simplify(), nil
}

// DiffN returns the n-th derivative of e.
func DiffN(e Expr, name string, n int) (Expr, error) {
	if n < 0 {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidOrder, "derivative order must be >= 0, got %d", n)
	}
	result := e
	for i := 0; i < n; i++ {
		d, err := Diff(result, name)
		if err != nil {
			return nil, err
		}
		result = d
	}
	return result, nil
}

func diffError(e Expr, name, why string) error {
	return taylorerr.Newf(taylorerr.TypeDifferentiation, "d/d%s %s: %s", name, e.String(), why)
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(N(v))
}
