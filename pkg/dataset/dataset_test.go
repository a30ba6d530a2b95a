/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"k8s.io/utils/ptr"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"numeric", TypeNumeric, false},
		{"text", TypeText, false},
		{"boolean", TypeBoolean, false},
		{"datetime", TypeDatetime, false},
		{"categorical", TypeCategorical, false},
		{"float", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Nil(t, v.Any())
	_, ok := v.Float()
	assert.False(t, ok)
	assert.True(t, Null().Equal(v))
}

func TestValue_Compare(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		a, b   Value
		want   int
		wantOK bool
	}{
		{"numeric less", Num(1), Num(2), -1, true},
		{"numeric equal", Num(2), Num(2), 0, true},
		{"text greater", Text("b"), Text("a"), 1, true},
		{"bool false first", Bool(false), Bool(true), -1, true},
		{"time", Time(now), Time(now.Add(time.Second)), -1, true},
		{"mixed types", Num(1), Text("1"), 0, false},
		{"null", Null(), Num(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Compare(tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_KeyDistinguishesTypes(t *testing.T) {
	assert.NotEqual(t, Num(1).Key(), Text("1").Key())
	assert.Equal(t, Text("a").Key(), Text("a").Key())
	assert.NotEqual(t, Text("a").Key(), Category("a").Key())
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		raw     any
		want    Value
		wantErr bool
	}{
		{"nil", TypeNumeric, nil, Null(), false},
		{"int", TypeNumeric, 3, Num(3), false},
		{"json number", TypeNumeric, json.Number("2.5"), Num(2.5), false},
		{"numeric string", TypeNumeric, " 7 ", Num(7), false},
		{"bad numeric", TypeNumeric, "abc", Null(), true},
		{"nan string", TypeNumeric, "NaN", Null(), true},
		{"inf string", TypeNumeric, "-Inf", Null(), true},
		{"inf float", TypeNumeric, math.Inf(1), Null(), true},
		{"text from number", TypeText, 12, Text("12"), false},
		{"category", TypeCategorical, "x", Category("x"), false},
		{"bool string", TypeBoolean, "TRUE", Bool(true), false},
		{"bad bool", TypeBoolean, 1.0, Null(), true},
		{"date", TypeDatetime, "2024-03-01", Time(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), false},
		{"bad date", TypeDatetime, "yesterday", Null(), true},
		{"typed value mismatch", TypeNumeric, Text("1"), Null(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.typ, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestNewColumn_RejectsTypeMismatch(t *testing.T) {
	_, err := NewColumn("age", TypeNumeric, Num(1), Text("2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")

	_, err = NewColumn("age", TypeNumeric, Num(math.NaN()))
	assert.Error(t, err)

	c, err := NewColumn("age", TypeNumeric, Num(1), Null())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestColumn_Counts(t *testing.T) {
	c := NumericColumn("age", ptr.To(25.0), ptr.To(30.0), nil, ptr.To(40.0))

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 1, c.NullCount())
	assert.Equal(t, 3, c.NonNullCount())
	assert.Equal(t, []int{2}, c.NullIndices())

	vals, rows := c.Floats()
	assert.Equal(t, []float64{25, 30, 40}, vals)
	assert.Equal(t, []int{0, 1, 3}, rows)
}

func TestNew(t *testing.T) {
	age := NumericColumn("age", ptr.To(1.0), ptr.To(2.0))
	name := TextColumn("name", ptr.To("a"), nil)

	t.Run("valid", func(t *testing.T) {
		ds, err := New(age, name)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.RowCount())
		assert.Equal(t, 2, ds.ColumnCount())
		assert.Equal(t, []string{"age", "name"}, ds.ColumnNames())
		c, ok := ds.Column("name")
		require.True(t, ok)
		assert.Equal(t, TypeText, c.Type)
		_, ok = ds.Column("missing")
		assert.False(t, ok)
	})

	t.Run("unequal lengths", func(t *testing.T) {
		_, err := New(age, TextColumn("short", ptr.To("a")))
		assert.Error(t, err)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := New(age, NumericColumn("age", nil, nil))
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New(&Column{Type: TypeNumeric})
		assert.Error(t, err)
	})

	t.Run("value of another type", func(t *testing.T) {
		_, err := New(&Column{Name: "n", Type: TypeNumeric, Values: []Value{Num(1), Text("a"), Num(0)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 1")
	})

	t.Run("non-finite number", func(t *testing.T) {
		_, err := New(NumericColumn("n", ptr.To(1.0), ptr.To(math.NaN())))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not finite")
	})

	t.Run("no columns", func(t *testing.T) {
		ds, err := New()
		require.NoError(t, err)
		assert.Equal(t, 0, ds.RowCount())
	})
}

func TestDataset_DecodeJSON(t *testing.T) {
	doc := `{"columns":[
		{"name":"age","type":"numeric","values":[25,30,null,40]},
		{"name":"city","type":"categorical","values":["a","b","a",null]}
	]}`
	var ds Dataset
	require.NoError(t, json.Unmarshal([]byte(doc), &ds))
	assert.Equal(t, 4, ds.RowCount())

	age, _ := ds.Column("age")
	assert.Equal(t, []int{2}, age.NullIndices())

	out, err := json.Marshal(&ds)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"values":[25,30,null,40]`)
}

func TestDataset_DecodeYAML(t *testing.T) {
	doc := `
columns:
  - name: joined
    type: datetime
    values: ["2024-01-01", null]
  - name: active
    type: boolean
    values: [true, false]
`
	var ds Dataset
	require.NoError(t, yaml.Unmarshal([]byte(doc), &ds))
	assert.Equal(t, []string{"joined", "active"}, ds.ColumnNames())

	joined, _ := ds.Column("joined")
	ts, ok := joined.Values[0].Timestamp()
	require.True(t, ok)
	assert.Equal(t, 2024, ts.Year())
}

func TestDataset_DecodeRejectsBadValues(t *testing.T) {
	doc := `{"columns":[{"name":"age","type":"numeric","values":["x"]}]}`
	var ds Dataset
	err := json.Unmarshal([]byte(doc), &ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
}
