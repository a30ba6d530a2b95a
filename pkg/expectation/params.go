/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

// Params holds validated parameter values keyed by name. Values are stored in
// normalized form: number as float64, integer as int, boolean as bool,
// string/regex/enum as string, string-list as []string, value-list as []any.
type Params map[string]any

// Has reports whether the parameter is set, either explicitly or by default.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Float returns a number parameter, or 0 when unset.
func (p Params) Float(name string) float64 {
	f, _ := p[name].(float64)
	return f
}

// OptFloat returns a number parameter, or nil when unset. Open range bounds
// are read with OptFloat.
func (p Params) OptFloat(name string) *float64 {
	f, ok := p[name].(float64)
	if !ok {
		return nil
	}
	return ptr.To(f)
}

// Int returns an integer parameter, or 0 when unset.
func (p Params) Int(name string) int {
	i, _ := p[name].(int)
	return i
}

// Bool returns a boolean parameter, or false when unset.
func (p Params) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

// String returns a string, regex or enum parameter, or "" when unset.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Strings returns a copy of a string-list parameter.
func (p Params) Strings(name string) []string {
	l, _ := p[name].([]string)
	if l == nil {
		return nil
	}
	out := make([]string, len(l))
	copy(out, l)
	return out
}

// Values returns a copy of a value-list parameter.
func (p Params) Values(name string) []any {
	l, _ := p[name].([]any)
	if l == nil {
		return nil
	}
	out := make([]any, len(l))
	copy(out, l)
	return out
}

func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		switch x := v.(type) {
		case []string:
			out[k] = append([]string(nil), x...)
		case []any:
			out[k] = append([]any(nil), x...)
		default:
			out[k] = v
		}
	}
	return out
}

// coerceString converts text typed into a form field: integer first, then
// float, then "true"/"false" in any case, otherwise the string itself.
func coerceString(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// splitList splits a comma separated form value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normalize converts a raw value into the stored form for p. The second
// return is false when the raw value counts as absent (nil or blank text).
// Type mismatches are left for Param.validate to report.
func normalize(p Param, raw any) (any, bool) {
	if raw == nil {
		return nil, false
	}

	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		switch p.Type {
		case ParamString, ParamRegex, ParamEnum:
			return s, true
		case ParamStringList:
			items := splitList(s)
			if len(items) == 0 {
				return nil, false
			}
			return items, true
		case ParamValueList:
			items := splitList(s)
			if len(items) == 0 {
				return nil, false
			}
			// items stay text until the column type is known
			vals := make([]any, len(items))
			for i, item := range items {
				vals[i] = item
			}
			return vals, true
		default:
			raw = coerceString(s)
		}
	}

	switch p.Type {
	case ParamNumber:
		if f, ok := toNumber(raw); ok {
			return f, true
		}
	case ParamInteger:
		if f, ok := toNumber(raw); ok && f == math.Trunc(f) {
			if math.Abs(f) > math.MaxInt32 {
				return outOfRange{f}, true
			}
			return int(f), true
		}
	case ParamStringList:
		switch x := raw.(type) {
		case []string:
			return append([]string(nil), x...), true
		case []any:
			out := make([]string, 0, len(x))
			for _, e := range x {
				s, ok := e.(string)
				if !ok {
					return raw, true
				}
				out = append(out, s)
			}
			return out, true
		}
	case ParamValueList:
		switch x := raw.(type) {
		case []any:
			return normalizeList(x), true
		case []string:
			out := make([]any, len(x))
			for i, s := range x {
				out[i] = s
			}
			return out, true
		case []float64:
			out := make([]any, len(x))
			for i, f := range x {
				out[i] = f
			}
			return out, true
		case []int:
			out := make([]any, len(x))
			for i, n := range x {
				out[i] = float64(n)
			}
			return out, true
		}
	}
	return raw, true
}

// outOfRange marks a whole number too large for an integer parameter.
type outOfRange struct{ value float64 }

// normalizeList converts numeric list elements to float64 and leaves every
// other element untouched.
func normalizeList(in []any) []any {
	out := make([]any, len(in))
	for i, e := range in {
		if f, ok := toNumber(e); ok {
			out[i] = f
			continue
		}
		out[i] = e
	}
	return out
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
