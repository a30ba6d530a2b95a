/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParamType is the semantic type of a parameter value.
type ParamType string

const (
	// ParamNumber values are finite float64.
	ParamNumber ParamType = "number"
	// ParamInteger values are int.
	ParamInteger ParamType = "integer"
	// ParamBoolean values are bool.
	ParamBoolean ParamType = "boolean"
	// ParamString values are string.
	ParamString ParamType = "string"
	// ParamRegex values are strings that compile as RE2 expressions.
	ParamRegex ParamType = "regex"
	// ParamEnum values are strings from Param.Enum.
	ParamEnum ParamType = "enum"
	// ParamStringList values are []string.
	ParamStringList ParamType = "string-list"
	// ParamValueList values are []any; elements are not type-checked.
	ParamValueList ParamType = "value-list"
)

// Param declares one parameter of an expectation kind.
type Param struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Required    bool      `json:"required" yaml:"required"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Min         *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema declares an expectation kind: its parameters, scope and how it is
// evaluated. Schemas are immutable once registered.
type Schema struct {
	Kind          Kind                `json:"kind" yaml:"kind"`
	Description   string              `json:"description" yaml:"description"`
	Family        Family              `json:"family" yaml:"family"`
	Scope         Scope               `json:"scope" yaml:"scope"`
	Support       SupportLevel        `json:"support" yaml:"support"`
	MissingColumn MissingColumnPolicy `json:"missingColumn" yaml:"missingColumn"`
	Params        []Param             `json:"params" yaml:"params"`

	// check validates relationships between parameters after each value
	// passed its own checks.
	check func(kind Kind, p Params) error
}

// DisplayName returns a human-readable title for the kind, for example
// "Column Values To Not Be Null".
func (s Schema) DisplayName() string {
	name := strings.TrimPrefix(string(s.Kind), "expect_")
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// Param returns the named parameter declaration.
func (s Schema) Param(name string) (Param, bool) {
	for _, p := range s.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// ParamNames returns the declared parameter names in declaration order.
func (s Schema) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// validate checks a normalized value against the declaration.
func (p Param) validate(kind Kind, v any) error {
	switch p.Type {
	case ParamNumber:
		f, ok := v.(float64)
		if !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &ConstraintError{Kind: kind, Name: p.Name, Reason: "must be a finite number"}
		}
		return p.checkBounds(kind, f)
	case ParamInteger:
		if o, ok := v.(outOfRange); ok {
			return &ConstraintError{Kind: kind, Name: p.Name, Reason: fmt.Sprintf("%v is out of range for an integer", o.value)}
		}
		i, ok := v.(int)
		if !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
		return p.checkBounds(kind, float64(i))
	case ParamBoolean:
		if _, ok := v.(bool); !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
	case ParamString:
		if _, ok := v.(string); !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
	case ParamRegex:
		s, ok := v.(string)
		if !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
		if _, err := regexp.Compile(s); err != nil {
			return &ConstraintError{Kind: kind, Name: p.Name, Reason: fmt.Sprintf("is not a valid regular expression: %v", err)}
		}
	case ParamEnum:
		s, ok := v.(string)
		if !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
		if !slices.Contains(p.Enum, s) {
			return &ConstraintError{Kind: kind, Name: p.Name, Reason: fmt.Sprintf("must be one of %v", p.Enum)}
		}
	case ParamStringList:
		if _, ok := v.([]string); !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
	case ParamValueList:
		if _, ok := v.([]any); !ok {
			return &ParameterTypeError{Kind: kind, Name: p.Name, Expected: p.Type, Got: describe(v)}
		}
	default:
		return fmt.Errorf("%s: parameter %q has unknown type %q", kind, p.Name, p.Type)
	}
	return nil
}

func (p Param) checkBounds(kind Kind, f float64) error {
	if p.Min != nil && f < *p.Min {
		return &ConstraintError{Kind: kind, Name: p.Name, Reason: fmt.Sprintf("must be >= %v", *p.Min)}
	}
	if p.Max != nil && f > *p.Max {
		return &ConstraintError{Kind: kind, Name: p.Name, Reason: fmt.Sprintf("must be <= %v", *p.Max)}
	}
	return nil
}

// describe names the semantic type of a value for error messages.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int32, int64:
		return "integer"
	case float32, float64:
		return "number"
	case string:
		return "string"
	case []string, []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", x)
	}
}
