package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resultSchemaURL = "https://careerpath.schemas.local/assessment/result.schema.json"

func stringSchema() map[string]any { return map[string]any{"type": "string"} }

func stringArraySchema() map[string]any {
	return map[string]any{"type": "array", "items": stringSchema()}
}

func enumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}

// ResultSchema describes the JSON the model must return.
func ResultSchema() map[string]any {
	rec := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringSchema(),
			"type":        enumSchema("CAREER", "DEGREE"),
			"matchScore":  map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			"matchReason": stringSchema(),
			"overview":    stringSchema(),
			"skills":      stringArraySchema(),
			"difficulty":  enumSchema("Easy", "Moderate", "Hard"),
			"futureScope": enumSchema("Low", "Medium", "High"),
		},
		"required": []any{"title", "type", "matchScore", "matchReason", "overview", "skills", "difficulty", "futureScope"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis":        stringSchema(),
			"recommendations": map[string]any{"type": "array", "items": rec, "minItems": 1},
		},
		"required": []any{"analysis", "recommendations"},
	}
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

func resultValidator() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		raw, err := json.Marshal(ResultSchema())
		if err != nil {
			compileErr = fmt.Errorf("encode result schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(resultSchemaURL, bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("result schema load failed: %w", err)
			return
		}
		compiled, compileErr = c.Compile(resultSchemaURL)
	})
	return compiled, compileErr
}
