package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Reader decodes a single JSON or YAML document from a file or stream.
type Reader struct {
	format Format
	in     io.Reader
	closer io.Closer
}

// NewReader returns a Reader for in. Only JSON and YAML can be read.
func NewReader(format Format, in io.Reader) (*Reader, error) {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("format %q cannot be deserialized", format)
	}
	return &Reader{format: format, in: in}, nil
}

// NewFileReader opens path for reading in the given format.
func NewFileReader(format Format, path string) (*Reader, error) {
	if path == StdoutURI {
		return NewReader(format, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}

	r, err := NewReader(format, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Deserialize decodes the document into v.
func (r *Reader) Deserialize(v any) error {
	switch r.format {
	case FormatYAML:
		if err := yaml.NewDecoder(r.in).Decode(v); err != nil {
			return fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(r.in)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to decode json: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// FromFile loads a document of type T from path, inferring the format from
// the file extension.
func FromFile[T any](path string) (*T, error) {
	format := FormatFromPath(path)
	if format == FormatTable {
		format = FormatJSON
	}

	r, err := NewFileReader(format, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "path", path, "error", closeErr)
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return &v, nil
}
