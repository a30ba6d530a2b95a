/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"fmt"
	"math"
)

// Column is a named, typed, ordered sequence of nullable values.
type Column struct {
	Name   string  `json:"name" yaml:"name"`
	Type   Type    `json:"type" yaml:"type"`
	Values []Value `json:"values" yaml:"values"`
}

// NewColumn creates a column and rejects values whose type differs from t.
func NewColumn(name string, t Type, values ...Value) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("column name must not be empty")
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("column %q: unknown type %q", name, t)
	}
	if err := checkValues(name, t, values); err != nil {
		return nil, err
	}
	return &Column{Name: name, Type: t, Values: values}, nil
}

// checkValues rejects non-null values of another type and non-finite numbers.
func checkValues(name string, t Type, values []Value) error {
	for i, v := range values {
		if v.IsNull() {
			continue
		}
		if v.Type() != t {
			return fmt.Errorf("column %q row %d: value of type %s in %s column", name, i, v.Type(), t)
		}
		if f, ok := v.Float(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return fmt.Errorf("column %q row %d: numeric value %v is not finite", name, i, f)
		}
	}
	return nil
}

// NumericColumn builds a numeric column from optional floats; nil entries are null.
func NumericColumn(name string, values ...*float64) *Column {
	vals := make([]Value, len(values))
	for i, p := range values {
		if p != nil {
			vals[i] = Num(*p)
		}
	}
	return &Column{Name: name, Type: TypeNumeric, Values: vals}
}

// TextColumn builds a text column from optional strings; nil entries are null.
func TextColumn(name string, values ...*string) *Column {
	vals := make([]Value, len(values))
	for i, p := range values {
		if p != nil {
			vals[i] = Text(*p)
		}
	}
	return &Column{Name: name, Type: TypeText, Values: vals}
}

// Len returns the number of rows.
func (c *Column) Len() int { return len(c.Values) }

// NullCount returns the number of null values.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// NonNullCount returns the number of non-null values.
func (c *Column) NonNullCount() int {
	return c.Len() - c.NullCount()
}

// NullIndices returns the row indices of null values in ascending order.
func (c *Column) NullIndices() []int {
	var idx []int
	for i, v := range c.Values {
		if v.IsNull() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Floats returns the non-null numeric values and their row indices.
// Values of other types are skipped.
func (c *Column) Floats() (values []float64, rows []int) {
	for i, v := range c.Values {
		if f, ok := v.Float(); ok {
			values = append(values, f)
			rows = append(rows, i)
		}
	}
	return values, rows
}

// Dataset is an ordered collection of equal-length named columns.
// A Dataset is not modified after construction and may be shared across goroutines.
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New creates a dataset from columns. All columns must have equal length,
// unique non-empty names and values of their declared type.
func New(columns ...*Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if !c.Type.IsValid() {
			return nil, fmt.Errorf("column %q: unknown type %q", c.Name, c.Type)
		}
		if err := checkValues(c.Name, c.Type, c.Values); err != nil {
			return nil, err
		}
		if _, dup := ds.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if i == 0 {
			ds.rows = c.Len()
		} else if c.Len() != ds.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, c.Len(), ds.rows)
		}
		ds.index[c.Name] = len(ds.columns)
		ds.columns = append(ds.columns, c)
	}
	return ds, nil
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Columns returns the columns in declaration order.
func (d *Dataset) Columns() []*Column {
	if d == nil {
		return nil
	}
	out := make([]*Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// ColumnNames returns the column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return d.rows
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.columns)
}
