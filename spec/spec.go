// Package spec embeds the OpenAPI description of the planner API.
// The HTTP server serves it at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary means the published API description and the running code are always in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte
