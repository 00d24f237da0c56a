package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationResult reports the outcome of schema validation.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// ValidateSchema validates the plan against a JSON Schema file. A missing or
// broken schema file downgrades to a warning; the plan's structural
// invariants are enforced separately by Validate.
func (p *Plan) ValidateSchema(schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		return result
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
		}
		return result
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return result
	}

	result.UsedSchema = true

	// Round-trip through JSON so the schema sees the wire representation.
	data, err := json.Marshal(p)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("marshal plan for validation: %w", err))
		return result
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("unmarshal plan for validation: %w", err))
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range flattenCauses(ve) {
				result.Errors = append(result.Errors, cause)
			}
		} else {
			result.Errors = append(result.Errors, err)
		}
	}

	return result
}

// flattenCauses collects leaf validation errors from a nested schema error.
func flattenCauses(ve *jsonschema.ValidationError) []error {
	if len(ve.Causes) == 0 {
		return []error{fmt.Errorf("%s: %s", ve.InstanceLocation, ve.Message)}
	}
	var out []error
	for _, cause := range ve.Causes {
		out = append(out, flattenCauses(cause)...)
	}
	return out
}
