/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuild_MissingColumn(t *testing.T) {
	_, err := Build(KindColumnMeanBetween, "", map[string]any{"min_value": 20, "max_value": 50})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequiredParameter))

	var mp *MissingParameterError
	require.True(t, errors.As(err, &mp))
	assert.Equal(t, "column", mp.Name)
	assert.Equal(t, CodeMissingParameter, mp.Code())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		column   string
		raw      map[string]any
		sentinel error
		param    string
	}{
		{"unknown kind", "expect_nothing", "a", nil, ErrUnknownKind, ""},
		{"missing required", KindColumnValuesMatchRegex, "a", nil, ErrMissingRequiredParameter, "regex"},
		{"blank string is absent", KindColumnValuesMatchRegex, "a", map[string]any{"regex": "   "}, ErrMissingRequiredParameter, "regex"},
		{"wrong type", KindColumnMeanBetween, "a", map[string]any{"min_value": true}, ErrInvalidParameterType, "min_value"},
		{"unparseable text for number", KindColumnMeanBetween, "a", map[string]any{"min_value": "ten"}, ErrInvalidParameterType, "min_value"},
		{"min greater than max", KindColumnMeanBetween, "a", map[string]any{"min_value": 5, "max_value": 1}, ErrConstraintViolation, "min_value"},
		{"no bounds", KindColumnMaxBetween, "a", nil, ErrConstraintViolation, "min_value"},
		{"mostly above one", KindColumnValuesNotNull, "a", map[string]any{"mostly": 1.5}, ErrConstraintViolation, "mostly"},
		{"bad regex", KindColumnValuesMatchRegex, "a", map[string]any{"regex": "("}, ErrConstraintViolation, "regex"},
		{"bad enum", KindColumnResampledMeanSatisfy, "a", map[string]any{"threshold": 1, "operator": "=~"}, ErrConstraintViolation, "operator"},
		{"integer from fraction", KindTableRowCountEqual, "", map[string]any{"value": 2.5}, ErrInvalidParameterType, "value"},
		{"integer out of range", KindTableRowCountEqual, "", map[string]any{"value": int64(1) << 40}, ErrConstraintViolation, "value"},
		{"integer text out of range", KindTableRowCountEqual, "", map[string]any{"value": "3000000000"}, ErrConstraintViolation, "value"},
		{"unknown param", KindColumnValuesNotNull, "a", map[string]any{"mostlyy": 0.5}, ErrConstraintViolation, "mostlyy"},
		{"column on table kind", KindTableRowCountEqual, "a", map[string]any{"value": 1}, ErrConstraintViolation, "column"},
		{"pair same columns", KindColumnPairValuesEqual, "", map[string]any{"column_A": "x", "column_B": "x"}, ErrConstraintViolation, "column_B"},
		{"compound needs two", KindCompoundColumnsUnique, "", map[string]any{"column_list": []any{"x"}}, ErrConstraintViolation, "column_list"},
		{"string list element type", KindTableColumnsMatchSet, "", map[string]any{"column_set": []any{"x", 1}}, ErrInvalidParameterType, "column_set"},
		{"empty value set", KindColumnValuesInSet, "a", map[string]any{"value_set": []any{}}, ErrConstraintViolation, "value_set"},
		{"resamples over budget", KindColumnResampledMeanSatisfy, "a", map[string]any{"threshold": 1, "resamples": 1000000}, ErrConstraintViolation, "resamples"},
		{"non-finite number", KindColumnMinBetween, "a", map[string]any{"min_value": "NaN"}, ErrConstraintViolation, "min_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.kind, tt.column, tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)

			var name string
			var mp *MissingParameterError
			var pt *ParameterTypeError
			var ce *ConstraintError
			switch {
			case errors.As(err, &mp):
				name = mp.Name
			case errors.As(err, &pt):
				name = pt.Name
			case errors.As(err, &ce):
				name = ce.Name
			}
			assert.Equal(t, tt.param, name)
		})
	}
}

func TestBuild_UnknownParamSuggestion(t *testing.T) {
	_, err := Build(KindColumnValuesNotNull, "a", map[string]any{"mostlyy": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "mostly"`)
}

func TestBuild_Defaults(t *testing.T) {
	spec, err := Build(KindColumnValuesNotNull, "age", nil)
	require.NoError(t, err)

	p := spec.Params()
	assert.Equal(t, 1.0, p.Float(ArgMostly))
	assert.Equal(t, DefaultMaxUnexpected, p.Int(ArgMaxUnexpected))
	assert.Equal(t, "age", spec.Column())
	assert.Equal(t, FamilyNullity, spec.Family())
	assert.Equal(t, []string{"age"}, spec.Columns())
}

func TestBuild_OpenBounds(t *testing.T) {
	spec, err := Build(KindColumnMeanBetween, "age", map[string]any{"min_value": 20})
	require.NoError(t, err)

	p := spec.Params()
	require.NotNil(t, p.OptFloat(ArgMinValue))
	assert.Equal(t, 20.0, *p.OptFloat(ArgMinValue))
	assert.Nil(t, p.OptFloat(ArgMaxValue))
	assert.False(t, p.Bool(ArgStrictMin))
}

func TestBuild_CoercesFormText(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		raw   map[string]any
		check func(t *testing.T, p Params)
	}{
		{"int text", KindColumnSumBetween, map[string]any{"min_value": " 1 ", "max_value": "10"}, func(t *testing.T, p Params) {
			assert.Equal(t, 1.0, p.Float(ArgMinValue))
			assert.Equal(t, 10.0, p.Float(ArgMaxValue))
		}},
		{"float text", KindColumnValuesNotNull, map[string]any{"mostly": "0.9"}, func(t *testing.T, p Params) {
			assert.Equal(t, 0.9, p.Float(ArgMostly))
		}},
		{"bool text any case", KindColumnValuesIncreasing, map[string]any{"strictly": "TRUE"}, func(t *testing.T, p Params) {
			assert.True(t, p.Bool(ArgStrictly))
		}},
		{"regex stays text", KindColumnValuesMatchRegex, map[string]any{"regex": " 42 "}, func(t *testing.T, p Params) {
			assert.Equal(t, "42", p.String(ArgRegex))
		}},
		{"comma list", KindColumnValuesInSet, map[string]any{"value_set": "a, 2, true,,"}, func(t *testing.T, p Params) {
			assert.Equal(t, []any{"a", "2", "true"}, p.Values(ArgValueSet))
		}},
		{"integer from whole float", KindTableRowCountEqual, map[string]any{"value": 3.0}, func(t *testing.T, p Params) {
			assert.Equal(t, 3, p.Int(ArgValue))
		}},
		{"json number", KindColumnMinBetween, map[string]any{"min_value": json.Number("1.5")}, func(t *testing.T, p Params) {
			assert.Equal(t, 1.5, p.Float(ArgMinValue))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column := "a"
			if tt.kind == KindTableRowCountEqual {
				column = ""
			}
			spec, err := Build(tt.kind, column, tt.raw)
			require.NoError(t, err)
			tt.check(t, spec.Params())
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	raw := map[string]any{"zeta": 1, "alpha": 2, "min_value": 3}
	_, first := Build(KindColumnMeanBetween, "a", raw)
	for i := 0; i < 20; i++ {
		_, err := Build(KindColumnMeanBetween, "a", raw)
		require.Error(t, err)
		assert.Equal(t, first.Error(), err.Error())
	}
	var ce *ConstraintError
	require.True(t, errors.As(first, &ce))
	assert.Equal(t, "alpha", ce.Name)
}

func TestSpec_Immutable(t *testing.T) {
	raw := map[string]any{"value_set": []any{"a", "b"}}
	spec, err := Build(KindColumnValuesInSet, "c", raw)
	require.NoError(t, err)

	raw["value_set"].([]any)[0] = "mutated"
	p := spec.Params()
	p[ArgValueSet].([]any)[1] = "mutated"
	delete(p, ArgMostly)

	assert.Equal(t, []any{"a", "b"}, spec.Params().Values(ArgValueSet))
	assert.True(t, spec.Params().Has(ArgMostly))
}

func TestSpec_Columns(t *testing.T) {
	pair, err := Build(KindColumnPairAGreaterThanB, "", map[string]any{"column_A": "end", "column_B": "start"})
	require.NoError(t, err)
	assert.Equal(t, []string{"end", "start"}, pair.Columns())
	assert.Equal(t, "expect_column_pair_values_a_to_be_greater_than_b(end, start)", pair.String())

	multi, err := Build(KindCompoundColumnsUnique, "", map[string]any{"column_list": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, multi.Columns())

	table, err := Build(KindTableRowCountEqual, "", map[string]any{"value": 4})
	require.NoError(t, err)
	assert.Empty(t, table.Columns())
	assert.Equal(t, string(KindTableRowCountEqual), table.String())
}

func TestSpec_Marshal(t *testing.T) {
	spec, err := Build(KindColumnMeanBetween, "age", map[string]any{"min_value": 20, "max_value": 50})
	require.NoError(t, err)

	data, err := json.Marshal(spec)
	require.NoError(t, err)

	var doc struct {
		Expectation string         `json:"expectation"`
		Column      string         `json:"column"`
		Args        map[string]any `json:"args"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, string(KindColumnMeanBetween), doc.Expectation)
	assert.Equal(t, "age", doc.Column)
	assert.Equal(t, 20.0, doc.Args["min_value"])
	assert.Equal(t, false, doc.Args["strict_min"])

	// a serialized spec builds back into an equal spec
	again, err := Build(Kind(doc.Expectation), doc.Column, doc.Args)
	require.NoError(t, err)
	assert.Equal(t, spec.Params(), again.Params())

	y, err := yaml.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(y), "expectation: expect_column_mean_to_be_between")
}
