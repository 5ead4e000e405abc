package swagger

import _ "embed"

// OpenAPI is the fairway API document served at /openapi.yaml and, converted, at /openapi.json.
//
//go:embed openapi.yaml
var OpenAPI []byte
