package taylorpoly

import (
	"github.com/goccy/go-json"

	"github.com/njchilds90/taylorpoly/symbol"
)

// ExprView is the serialized form of one expression: its infix text, LaTeX
// and wire tree.
type ExprView struct {
	String string                 `json:"string"`
	LaTeX  string                 `json:"latex"`
	Expr   map[string]interface{} `json:"expr"`
}

func View(e symbol.Expr) ExprView {
	return ExprView{String: e.String(), LaTeX: e.LaTeX(), Expr: symbol.ToMap(e)}
}

func views(es []symbol.Expr) []ExprView {
	out := make([]ExprView, len(es))
	for i, e := range es {
		out[i] = View(e)
	}
	return out
}

type expansionJSON struct {
	Func        ExprView   `json:"func"`
	Var         string     `json:"var"`
	Placeholder string     `json:"placeholder"`
	Point       ExprView   `json:"point"`
	Order       int        `json:"order"`
	Derivatives []ExprView `json:"derivatives"`
	Terms       []ExprView `json:"terms"`
	Polynomials []ExprView `json:"polynomials"`
}

func (e *Expansion) MarshalJSON() ([]byte, error) {
	return json.Marshal(expansionJSON{
		Func:        View(e.Func),
		Var:         e.Var,
		Placeholder: e.Placeholder,
		Point:       View(e.Point),
		Order:       e.Order,
		Derivatives: views(e.derivatives),
		Terms:       views(e.terms),
		Polynomials: views(e.polynomials),
	})
}
