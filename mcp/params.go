package mcp

import (
	"fmt"
	"math"

	"github.com/njchilds90/taylorpoly/symbol"
)

type params map[string]interface{}

func (p params) has(key string) bool {
	_, ok := p[key]
	_, okText := p[key+"_text"]
	return ok || okText
}

// expr reads key as a wire-format object, or as infix text from key or
// key+"_text".
func (p params) expr(key string) (symbol.Expr, error) {
	if v, ok := p[key]; ok {
		switch val := v.(type) {
		case map[string]interface{}:
			return symbol.FromJSON(val)
		case string:
			return symbol.Parse(val)
		case float64:
			n, err := symbol.NumFromFloat(val)
			if err != nil {
				return nil, err
			}
			return n, nil
		default:
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
	}
	if v, ok := p[key+"_text"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("param %s_text must be a string", key)
		}
		return symbol.Parse(s)
	}
	return nil, fmt.Errorf("missing param: %s", key)
}

func (p params) string(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing param: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p params) intOr(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<31 {
		return 0, fmt.Errorf("param %s must be an integer", key)
	}
	return int(f), nil
}

func (p params) env(key string) (map[string]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("param %s must be an object", key)
	}
	env := make(map[string]float64, len(raw))
	for name, val := range raw {
		f, ok := val.(float64)
		if !ok {
			return nil, fmt.Errorf("param %s.%s must be a number", key, name)
		}
		env[name] = f
	}
	return env, nil
}
