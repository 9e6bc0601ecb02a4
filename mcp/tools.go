// Package mcp exposes Taylor expansion as JSON tool calls for agent
// frameworks.
package mcp

import (
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"

	"github.com/njchilds90/taylorpoly"
	"github.com/njchilds90/taylorpoly/symbol"
	"github.com/njchilds90/taylorpoly/taylorerr"
)

const (
	// DefaultOrder is the order used when a request omits one.
	DefaultOrder = 4
	// MaxOrder bounds the expansion order and derivative count a request
	// may ask for.
	MaxOrder = 256
)

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Handler runs tool calls with a configured Expander.
type Handler struct {
	opts     []taylorpoly.Option
	expander *taylorpoly.Expander
}

func NewHandler(opts ...taylorpoly.Option) *Handler {
	return &Handler{opts: opts, expander: taylorpoly.NewExpander(opts...)}
}

// PartialSum is one Taylor polynomial, as built and collected in powers of
// the variable.
type PartialSum struct {
	K         int                 `json:"k"`
	Sum       taylorpoly.ExprView `json:"sum"`
	Collected taylorpoly.ExprView `json:"collected"`
}

var defaultHandler = NewHandler()

// HandleToolCall runs req with the default Handler.
func HandleToolCall(req ToolRequest) ToolResponse {
	return defaultHandler.Handle(req)
}

func fail(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

func respond(e symbol.Expr) ToolResponse {
	return ToolResponse{Result: symbol.ToMap(e), LaTeX: e.LaTeX(), String: e.String()}
}

// Handle dispatches req to its tool. Failures are reported in
// ToolResponse.Error.
func (h *Handler) Handle(req ToolRequest) ToolResponse {
	p := params(req.Params)

	switch req.Tool {
	case "taylor_terms", "partial_sums":
		exp, err := h.expand(p)
		if err != nil {
			return fail(err)
		}
		last := exp.Polynomial(exp.Order)
		if req.Tool == "partial_sums" {
			return ToolResponse{Result: partialSums(exp), LaTeX: last.LaTeX(), String: last.String()}
		}
		return ToolResponse{Result: exp, LaTeX: last.LaTeX(), String: last.String()}

	case "diff":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.string("var")
		if err != nil {
			return fail(err)
		}
		n, err := p.intOr("n", 1)
		if err != nil {
			return fail(err)
		}
		if n > MaxOrder {
			return fail(taylorerr.Newf(taylorerr.TypeInvalidOrder, "n must be <= %d, got %d", MaxOrder, n))
		}
		d, err := symbol.DiffN(e, v, n)
		if err != nil {
			return fail(err)
		}
		return respond(d)

	case "substitute":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := p.string("var")
		if err != nil {
			return fail(err)
		}
		val, err := p.expr("value")
		if err != nil {
			return fail(err)
		}
		out, err := symbol.Substitute(e, v, val)
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "evaluate":
		e, err := p.expr("expr")
		if err != nil {
			return fail(err)
		}
		env, err := p.env("env")
		if err != nil {
			return fail(err)
		}
		v, err := symbol.Evalf(e, env)
		if err != nil {
			return fail(err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ToolResponse{Error: fmt.Sprintf("%s is undefined at %v", e, env)}
		}
		return ToolResponse{Result: v, String: fmt.Sprintf("%.15g", v)}

	case "parse":
		s, err := p.string("text")
		if err != nil {
			return fail(err)
		}
		e, err := symbol.Parse(s)
		if err != nil {
			return fail(err)
		}
		return respond(e)

	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec())}

	default:
		return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
	}
}

func (h *Handler) expand(p params) (*taylorpoly.Expansion, error) {
	f, err := p.expr("expr")
	if err != nil {
		return nil, err
	}
	v, err := p.string("var")
	if err != nil {
		return nil, err
	}
	order, err := p.intOr("order", DefaultOrder)
	if err != nil {
		return nil, err
	}
	if order > MaxOrder {
		return nil, taylorerr.Newf(taylorerr.TypeInvalidOrder, "order must be <= %d, got %d", MaxOrder, order)
	}
	point := symbol.Expr(symbol.N(0))
	if p.has("point") {
		if point, err = p.expr("point"); err != nil {
			return nil, err
		}
	}
	x := h.expander
	if name, ok := p["placeholder"].(string); ok && name != "" {
		opts := append(append([]taylorpoly.Option(nil), h.opts...), taylorpoly.WithPlaceholder(name))
		x = taylorpoly.NewExpander(opts...)
	}
	return x.Expand(f, v, order, point)
}

func partialSums(exp *taylorpoly.Expansion) []PartialSum {
	polys := exp.Polynomials()
	out := make([]PartialSum, len(polys))
	for k, p := range polys {
		out[k] = PartialSum{
			K:         k,
			Sum:       taylorpoly.View(p),
			Collected: taylorpoly.View(symbol.Collect(p, exp.Var)),
		}
	}
	return out
}

// MCPToolSpec returns the tool schema as indented JSON.
func MCPToolSpec() string {
	exprProps := map[string]string{"expr": "object", "expr_text": "string"}
	with := func(extra map[string]string) map[string]string {
		out := map[string]string{}
		for k, v := range exprProps {
			out[k] = v
		}
		for k, v := range extra {
			out[k] = v
		}
		return out
	}
	expansion := with(map[string]string{
		"var": "string", "order": "integer", "point": "object", "point_text": "string", "placeholder": "string",
	})
	tools := []map[string]interface{}{
		ts("taylor_terms", "Taylor expansion of expr in var about point: derivatives, terms and partial sums; order <= 256", []string{"var"}, expansion),
		ts("partial_sums", "Taylor polynomials P0..Pn of expr in var about point, each also collected in powers of var; order <= 256", []string{"var"}, expansion),
		ts("diff", "nth derivative d^n/dvar^n, n defaults to 1, n <= 256", []string{"var"}, with(map[string]string{"var": "string", "n": "integer"})),
		ts("substitute", "Substitute var with value", []string{"var"}, with(map[string]string{"var": "string", "value": "object", "value_text": "string"})),
		ts("evaluate", "Numeric value of expr with env binding symbols to numbers", []string{}, with(map[string]string{"env": "object"})),
		ts("parse", "Parse infix text into an expression", []string{"text"}, map[string]string{"text": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		properties[k] = map[string]interface{}{"type": props[k]}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
