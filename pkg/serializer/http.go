package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, statusCode, contentTypeJSON, buf.Bytes())
}

// Respond writes data as YAML when the request accepts YAML and JSON otherwise.
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if !AcceptsYAML(r) {
		RespondJSON(w, statusCode, data)
		return
	}

	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		slog.Error("yaml encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	_ = enc.Close()
	write(w, statusCode, contentTypeYAML, buf.Bytes())
}

// AcceptsYAML reports whether the request's Accept header asks for YAML.
func AcceptsYAML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "yaml")
}

// FormatFromContentType returns the document format of a request body.
func FormatFromContentType(r *http.Request) Format {
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

func write(w http.ResponseWriter, statusCode int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}
