/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a single typed, nullable cell. The zero Value is null.
type Value struct {
	typ Type
	num float64
	str string
	b   bool
	t   time.Time
}

// Null returns a null value.
func Null() Value { return Value{} }

// Num returns a numeric value.
func Num(f float64) Value { return Value{typ: TypeNumeric, num: f} }

// Text returns a text value.
func Text(s string) Value { return Value{typ: TypeText, str: s} }

// Category returns a categorical value.
func Category(s string) Value { return Value{typ: TypeCategorical, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBoolean, b: b} }

// Time returns a datetime value normalized to UTC.
func Time(t time.Time) Value { return Value{typ: TypeDatetime, t: t.UTC()} }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.typ == "" }

// Type returns the logical type of the value, or "" for null.
func (v Value) Type() Type { return v.typ }

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	if v.typ != TypeNumeric {
		return 0, false
	}
	return v.num, true
}

// Str returns the string payload of text and categorical values.
func (v Value) Str() (string, bool) {
	if !v.typ.isTextual() {
		return "", false
	}
	return v.str, true
}

// Boolean returns the boolean payload.
func (v Value) Boolean() (bool, bool) {
	if v.typ != TypeBoolean {
		return false, false
	}
	return v.b, true
}

// Timestamp returns the datetime payload.
func (v Value) Timestamp() (time.Time, bool) {
	if v.typ != TypeDatetime {
		return time.Time{}, false
	}
	return v.t, true
}

// Any returns the payload as a plain Go value (nil for null).
func (v Value) Any() any {
	switch v.typ {
	case TypeNumeric:
		return v.num
	case TypeText, TypeCategorical:
		return v.str
	case TypeBoolean:
		return v.b
	case TypeDatetime:
		return v.t
	default:
		return nil
	}
}

// String renders the payload. Regex and length expectations operate on this form.
func (v Value) String() string {
	switch v.typ {
	case TypeNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case TypeText, TypeCategorical:
		return v.str
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeDatetime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Key returns a string that is equal for two values iff they are equal,
// including their type. Used for uniqueness and set membership.
func (v Value) Key() string {
	if v.IsNull() {
		return "null:"
	}
	return string(v.typ) + ":" + v.String()
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(o Value) bool {
	return v.Key() == o.Key()
}

// Compare orders two non-null values of the same type. It returns false when
// the values are not comparable (null, or different types).
// Booleans order false before true; text and categorical order lexicographically.
func (v Value) Compare(o Value) (int, bool) {
	if v.IsNull() || o.IsNull() || v.typ != o.typ {
		return 0, false
	}
	switch v.typ {
	case TypeNumeric:
		switch {
		case v.num < o.num:
			return -1, true
		case v.num > o.num:
			return 1, true
		default:
			return 0, true
		}
	case TypeText, TypeCategorical:
		return strings.Compare(v.str, o.str), true
	case TypeBoolean:
		switch {
		case v.b == o.b:
			return 0, true
		case !v.b:
			return -1, true
		default:
			return 1, true
		}
	case TypeDatetime:
		return v.t.Compare(o.t), true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the payload as a plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.typ == TypeNumeric && (math.IsNaN(v.num) || math.IsInf(v.num, 0)) {
		return json.Marshal(v.String())
	}
	return json.Marshal(v.Any())
}

// MarshalYAML encodes the payload as a plain YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Any(), nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseValue converts loosely typed input (as decoded from JSON, YAML or a
// form field) into a Value of type t. nil becomes null.
func ParseValue(t Type, raw any) (Value, error) {
	if raw == nil {
		return Null(), nil
	}
	if v, ok := raw.(Value); ok {
		if v.IsNull() || v.typ == t {
			return v, nil
		}
		return Null(), fmt.Errorf("value %q has type %s, want %s", v.String(), v.typ, t)
	}

	switch t {
	case TypeNumeric:
		f, err := toFloat(raw)
		if err != nil {
			return Null(), err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Null(), fmt.Errorf("numeric value %v is not finite", raw)
		}
		return Num(f), nil
	case TypeText, TypeCategorical:
		var s string
		switch x := raw.(type) {
		case string:
			s = x
		case fmt.Stringer:
			s = x.String()
		case bool, int, int32, int64, float32, float64, json.Number:
			s = fmt.Sprint(x)
		default:
			return Null(), fmt.Errorf("cannot use %T as %s", raw, t)
		}
		if t == TypeCategorical {
			return Category(s), nil
		}
		return Text(s), nil
	case TypeBoolean:
		switch x := raw.(type) {
		case bool:
			return Bool(x), nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return Null(), fmt.Errorf("cannot parse %q as boolean", x)
			}
			return Bool(b), nil
		default:
			return Null(), fmt.Errorf("cannot use %T as boolean", raw)
		}
	case TypeDatetime:
		switch x := raw.(type) {
		case time.Time:
			return Time(x), nil
		case string:
			s := strings.TrimSpace(x)
			for _, layout := range dateLayouts {
				if ts, err := time.Parse(layout, s); err == nil {
					return Time(ts), nil
				}
			}
			return Null(), fmt.Errorf("cannot parse %q as datetime", x)
		default:
			return Null(), fmt.Errorf("cannot use %T as datetime", raw)
		}
	default:
		return Null(), fmt.Errorf("unknown column type %q", t)
	}
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as numeric", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot use %T as numeric", raw)
	}
}
