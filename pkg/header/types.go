/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"fmt"
	"time"
)

const (
	// APIVersionDomain is the group suffix of every document this module reads or writes.
	APIVersionDomain = "dx.nvidia.com"

	APIVersionV1Alpha1 = APIVersionDomain + "/v1alpha1"

	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Kind identifies the type of a document.
type Kind string

const (
	KindValidationReport Kind = "ValidationReport"
	KindExpectationSuite Kind = "ExpectationSuite"
)

// Header is the kind/apiVersion/metadata envelope shared by suites and
// reports.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and apiVersion, replaces metadata and stamps the creation
// time and the producer version, when known.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Expect checks a decoded document's envelope. Kind and apiVersion may be
// omitted; when present they must be want and belong to APIVersionDomain.
func (h *Header) Expect(want Kind) error {
	if h.Kind != "" && h.Kind != want {
		return fmt.Errorf("unexpected kind %q, want %q", h.Kind, want)
	}
	if h.APIVersion != "" && !hasDomain(h.APIVersion) {
		return fmt.Errorf("unsupported apiVersion %q, want %s/<version>", h.APIVersion, APIVersionDomain)
	}
	return nil
}

func hasDomain(apiVersion string) bool {
	n := len(APIVersionDomain)
	return len(apiVersion) > n+1 && apiVersion[:n] == APIVersionDomain && apiVersion[n] == '/'
}
