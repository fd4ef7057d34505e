package utils

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed docs/openapi.yaml
var openAPISpecs string

// OpenAPISpecJSON converts the embedded yaml spec to JSON for the swagger
// UI and the /openapi.json endpoint.
func OpenAPISpecJSON() ([]byte, error) {
	var spec map[string]interface{}
	if err := yaml.Unmarshal([]byte(openAPISpecs), &spec); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	return json.Marshal(spec)
}
