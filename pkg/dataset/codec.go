/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawColumn is the document form of a column: values are loosely typed
// scalars converted with ParseValue.
type rawColumn struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type" yaml:"type"`
	Values []any  `json:"values" yaml:"values"`
}

type rawDataset struct {
	Columns []rawColumn `json:"columns" yaml:"columns"`
}

type docDataset struct {
	Columns []*Column `json:"columns" yaml:"columns"`
}

func (r rawDataset) build() (*Dataset, error) {
	cols := make([]*Column, 0, len(r.Columns))
	for i, rc := range r.Columns {
		t, err := ParseType(rc.Type)
		if err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", i, rc.Name, err)
		}
		vals := make([]Value, len(rc.Values))
		for j, raw := range rc.Values {
			v, err := ParseValue(t, raw)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", rc.Name, j, err)
			}
			vals[j] = v
		}
		c, err := NewColumn(rc.Name, t, vals...)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// UnmarshalJSON decodes {"columns": [{"name", "type", "values"}]}.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw rawDataset
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode dataset: %w", err)
	}
	built, err := raw.build()
	if err != nil {
		return err
	}
	*d = *built
	return nil
}

// UnmarshalYAML decodes the YAML form of the dataset document.
func (d *Dataset) UnmarshalYAML(node *yaml.Node) error {
	var raw rawDataset
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode dataset: %w", err)
	}
	built, err := raw.build()
	if err != nil {
		return err
	}
	*d = *built
	return nil
}

// MarshalJSON encodes the dataset in the same document form it is decoded from.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(docDataset{Columns: d.Columns()})
}

// MarshalYAML encodes the dataset in the same document form it is decoded from.
func (d *Dataset) MarshalYAML() (any, error) {
	return docDataset{Columns: d.Columns()}, nil
}
