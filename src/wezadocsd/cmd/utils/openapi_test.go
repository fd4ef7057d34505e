package utils

import (
	"encoding/json"
	"testing"
)

func TestOpenAPISpecJSON(t *testing.T) {
	data, err := OpenAPISpecJSON()
	if err != nil {
		t.Fatalf("OpenAPISpecJSON failed: %v", err)
	}

	var spec map[string]interface{}
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("spec is not valid JSON: %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Errorf("openapi version = %v, want 3.0.3", spec["openapi"])
	}

	paths, ok := spec["paths"].(map[string]interface{})
	if !ok {
		t.Fatal("spec has no paths")
	}
	for _, path := range []string{"/api/pdf-upload", "/api/pdf-list", "/api/pdf-download", "/api/pdf-delete"} {
		if _, ok := paths[path]; !ok {
			t.Errorf("spec missing path %s", path)
		}
	}
}
