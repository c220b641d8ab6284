package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema constrains authored catalog files before they reach the
// engine: node ids must be non-empty and linked topics must be id strings.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"nodes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"title": map[string]any{
						"type": "string",
					},
					"linkedTopics": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
					},
				},
				"required":             []any{"id", "title"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"nodes"},
	"additionalProperties": false,
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

// validateCatalog checks raw JSON against the catalog schema.
func validateCatalog(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler expects a parsed JSON value, not raw bytes.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, defParsed); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}
