package serializer

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Tabular is implemented by values with a natural row layout. The table
// format renders them as-is instead of flattening their fields.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

type field struct {
	key   string
	value string
}

func writeTable(w io.Writer, v any) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if tab, ok := v.(Tabular); ok {
		t.AppendHeader(toRow(tab.TableHeader()))
		rows := tab.TableRows()
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "<empty>")
			return err
		}
		for _, r := range rows {
			t.AppendRow(toRow(r))
		}
		t.Render()
		return nil
	}

	var fields []field
	flatten("", reflect.ValueOf(v), &fields)
	if len(fields) == 0 {
		_, err := fmt.Fprintln(w, "<empty>")
		return err
	}

	t.AppendHeader(table.Row{"FIELD", "VALUE"})
	for _, f := range fields {
		t.AppendRow(table.Row{f.key, f.value})
	}
	t.Render()
	return nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// flatten walks v and records one field per leaf, keyed by its path
// (for example "[0].Name" or "Inner.Field1").
func flatten(prefix string, v reflect.Value, out *[]field) {
	if !v.IsValid() {
		if prefix != "" {
			*out = append(*out, field{prefix, "<nil>"})
		}
		return
	}

	if v.Type().Implements(stringerType) && (v.Kind() != reflect.Pointer || !v.IsNil()) {
		*out = append(*out, field{prefix, v.Interface().(fmt.Stringer).String()})
		return
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			*out = append(*out, field{prefix, "<nil>"})
			return
		}
		flatten(prefix, v.Elem(), out)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			if sf.Anonymous {
				flatten(prefix, v.Field(i), out)
				continue
			}
			flatten(join(prefix, sf.Name), v.Field(i), out)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		if len(keys) == 0 && prefix != "" {
			*out = append(*out, field{prefix, "{}"})
		}
		for _, k := range keys {
			flatten(join(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), out)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 && prefix != "" {
			*out = append(*out, field{prefix, "[]"})
		}
		for i := 0; i < v.Len(); i++ {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), out)
		}
	default:
		*out = append(*out, field{prefix, fmt.Sprint(v.Interface())})
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
