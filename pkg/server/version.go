package server

import (
	"net/http"
	"regexp"
)

const (
	// DefaultAPIVersion is served when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion carries the negotiated API version on every response.
	HeaderAPIVersion = "X-API-Version"
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// vendorMediaType matches Accept values such as application/vnd.nvidia.dx.v1+json.
var vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.dx\.(v[0-9A-Za-z]+)\+(json|yaml)`)

// negotiateAPIVersion picks the API version from the Accept header, falling
// back to DefaultAPIVersion for missing, malformed or unsupported versions.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if m == nil || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	return supportedAPIVersions[v]
}
