package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for scriptrun configuration
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidateWithSchema validates configuration content against the JSON Schema.
// path only selects the format.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}
	var err error
	format := FormatOf(path)

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, &data)
	case FormatTOML:
		data, err = toml.Parser().Unmarshal(content)
	default:
		err = json.Unmarshal(content, &data)
	}
	if err != nil {
		result.addf("syntax", "Invalid %s syntax: %v", format, err)
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(normalize(data))

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		for _, err := range validationResult.Errors() {
			result.add(err.Field(), err.Description())
		}
	}

	return result, nil
}

// normalize turns YAML maps with non-string keys into JSON-compatible maps
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
