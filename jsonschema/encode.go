package jsonschema

import (
	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// EncodeJSON renders the schema as compact JSON.
func EncodeJSON(s *Schema) ([]byte, error) {
	return gojson.Marshal(s)
}

// EncodeJSONIndent renders the schema as indented JSON for documentation
// output.
func EncodeJSONIndent(s *Schema) ([]byte, error) {
	return gojson.MarshalIndent(s, "", "  ")
}

// EncodeYAML renders the schema as YAML.
func EncodeYAML(s *Schema) ([]byte, error) {
	return yaml.Marshal(s)
}
