package quizgen

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const batchSchemaURL = "schema://quiz-batch.json"

// batchShape is the top-level contract a decoded payload must meet before
// any per-entry coercion. Entries themselves are left unconstrained so that
// bad ones are dropped individually rather than failing the whole batch.
var batchShape = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
		},
	},
	"required": []any{"questions"},
}

var compileBatchSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(batchSchemaURL, batchShape); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(batchSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// checkShape validates a decoded payload against batchShape.
func checkShape(v any) error {
	schema, err := compileBatchSchema()
	if err != nil {
		return fmt.Errorf("batch schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
