package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Ref         string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Examples    []any  `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
}

// Scalar returns a schema for a scalar JSON type name ("string", "boolean",
// "integer", "number").
func Scalar(typ string) *Schema { return &Schema{Type: typ} }

// ArrayOf returns an array schema over the given item schema.
func ArrayOf(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// ObjectOf returns an object schema from a property map and a required list.
// Unknown properties are rejected (additionalProperties=false).
func ObjectOf(props map[string]*Schema, required []string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required, AdditionalProperties: false}
}

// NullableOf wraps a schema so that null is also accepted. Wrapping an
// already-nullable schema returns it unchanged.
func NullableOf(s *Schema) *Schema {
	if s == nil {
		return &Schema{Type: "null"}
	}
	if s.Type == "null" {
		return s
	}
	for _, v := range s.OneOf {
		if v != nil && v.Type == "null" {
			return s
		}
	}
	return &Schema{OneOf: []*Schema{s, {Type: "null"}}}
}

// RefTo returns a reference schema pointing at a named definition.
func RefTo(name string) *Schema { return &Schema{Ref: "#/$defs/" + name} }
