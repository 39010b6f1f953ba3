package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validate checks data against schemaMap. Extraction output with extra keys
// still validates (additionalProperties is not restricted); Conform strips
// those afterwards.
func Validate(schemaMap map[string]any, data map[string]any) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	// Round-trip through encoding/json so numbers become float64 and the
	// validator sees plain JSON values.
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("data does not match schema: %w", err)
	}
	return nil
}

// Conform returns a copy of data containing only the schema's declared fields,
// with null values dropped. The model is told to use null for unknown fields;
// nulls and off-schema keys are noise, not data.
func Conform(schemaMap map[string]any, data map[string]any) map[string]any {
	props, _ := schemaMap["properties"].(map[string]any)
	out := make(map[string]any, len(data))
	for k, v := range data {
		if v == nil {
			continue
		}
		if _, declared := props[k]; !declared {
			continue
		}
		out[k] = v
	}
	return out
}
