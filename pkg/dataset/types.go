/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import "fmt"

// Type is the declared logical type of a column.
type Type string

const (
	TypeNumeric     Type = "numeric"
	TypeText        Type = "text"
	TypeBoolean     Type = "boolean"
	TypeDatetime    Type = "datetime"
	TypeCategorical Type = "categorical"
)

// SupportedTypes returns all logical column types in declaration order.
func SupportedTypes() []Type {
	return []Type{
		TypeNumeric,
		TypeText,
		TypeBoolean,
		TypeDatetime,
		TypeCategorical,
	}
}

// SupportedTypesAsStrings returns supported types as strings.
func SupportedTypesAsStrings() []string {
	types := SupportedTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strs
}

// IsValid reports whether t is one of the supported types.
func (t Type) IsValid() bool {
	for _, s := range SupportedTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown column type %q, supported types: %v", s, SupportedTypesAsStrings())
	}
	return t, nil
}

// isTextual reports whether values of t carry a string payload.
func (t Type) isTextual() bool {
	return t == TypeText || t == TypeCategorical
}
