package serializer

const (
	// StdoutURI is the special path indicating output should be written to stdout.
	StdoutURI = "-"

	// contentTypeYAML is returned by Respond when the client accepts YAML.
	contentTypeYAML = "application/yaml"

	// contentTypeJSON is the default response content type.
	contentTypeJSON = "application/json"
)
