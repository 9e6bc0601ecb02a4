package symbol

import "math"

// Sym is a symbolic variable.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr        { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) LaTeX() string         { return s.name }
func (s *Sym) Eval() (*Num, bool)    { return nil, false }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) kind() string          { return "sym" }
func (s *Sym) Name() string          { return s.name }

func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) (Expr, error) {
	if s.name == name {
		return N(1), nil
	}
	return N(0), nil
}

// Const is a named real constant such as pi. It prints by name and only
// becomes a number under Eval.
type Const struct {
	name  string
	latex string
	value float64
}

var (
	Pi = &Const{name: "pi", latex: `\pi`, value: math.Pi}
	E  = &Const{name: "e", latex: "e", value: math.E}
)

// LookupConst returns the constant with the given name.
func LookupConst(name string) (*Const, bool) {
	switch name {
	case Pi.name:
		return Pi, true
	case E.name:
		return E, true
	}
	return nil, false
}

func (c *Const) Simplify() Expr                 { return c }
func (c *Const) String() string                 { return c.name }
func (c *Const) LaTeX() string                  { return c.latex }
func (c *Const) Sub(string, Expr) Expr          { return c }
func (c *Const) Diff(string) (Expr, error)      { return N(0), nil }
func (c *Const) Eval() (*Num, bool)             { return foldFloat(c.value) }
func (c *Const) Equal(other Expr) bool          { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) kind() string                   { return "const" }
func (c *Const) Name() string                   { return c.name }
func (c *Const) Float64() float64               { return c.value }
func (c *Const) toJSON() map[string]interface{} { return map[string]interface{}{"type": "const", "name": c.name} }
