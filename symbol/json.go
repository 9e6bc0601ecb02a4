package symbol

import (
	"math/big"

	"github.com/goccy/go-json"

	"github.com/njchilds90/taylorpoly/taylorerr"
)

// Wire format: every node is an object with a "type" field.
//
//	{"type":"num","value":"1/3"}
//	{"type":"sym","name":"t"}
//	{"type":"const","name":"pi"}
//	{"type":"add","terms":[...]}
//	{"type":"mul","factors":[...]}
//	{"type":"pow","base":{...},"exp":{...}}
//	{"type":"func","name":"ln","arg":{...}}

// ToMap returns the wire form of e as a generic map.
func ToMap(e Expr) map[string]interface{} { return e.toJSON() }

func ToJSON(e Expr) (string, error) {
	b, err := MarshalExpr(e)
	return string(b), err
}

func MarshalExpr(e Expr) ([]byte, error) {
	return json.Marshal(e.toJSON())
}

// UnmarshalExpr decodes one expression from its wire form.
func UnmarshalExpr(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, taylorerr.Wrap(taylorerr.TypeParse, err, "decode expression")
	}
	return FromJSON(m)
}

// FromJSON rebuilds an expression from its decoded wire form, simplifying as
// it goes.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, jsonErr("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, jsonErr("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, jsonErr("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, taylorerr.Wrap(taylorerr.TypeParse, err, typ+": "+field)
		}
		return e, nil
	}
	subArray := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, jsonErr("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, jsonErr("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, taylorerr.Wrap(taylorerr.TypeParse, err, typ+": "+field)
			}
			out[i] = e
		}
		return out, nil
	}
	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", jsonErr("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r, ok := new(big.Rat).SetString(val)
		if !ok {
			return nil, jsonErr("num: invalid value %q", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "const":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		c, ok := LookupConst(name)
		if !ok {
			return nil, jsonErr("const: unknown constant %q", name)
		}
		return c, nil

	case "add":
		terms, err := subArray("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subArray("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		exp, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		fn, ok := LookupFunc(name)
		if !ok {
			return nil, jsonErr("func: unknown function %q", name)
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return fn(arg), nil
	}
	return nil, jsonErr("unknown expression type %q", typ)
}

func jsonErr(format string, args ...interface{}) error {
	return taylorerr.Newf(taylorerr.TypeParse, format, args...)
}
