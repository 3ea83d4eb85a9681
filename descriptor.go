package immutable

import (
	"reflect"

	"github.com/coudenysj/json-immutable-objects/docstring"
	"github.com/coudenysj/json-immutable-objects/i18n"
)

// TypeDescriptor is the per-type property map together with defaults, docs
// and example values. It is built once per registered type on first access
// and never mutated afterwards.
type TypeDescriptor struct {
	Name       string
	Properties []Property // declaration order

	index      map[string]int
	fieldIndex map[string]int // property name -> struct field index
	defaults   map[string]any
	docs     map[string]docstring.Doc
	examples map[string][]any
	goType   reflect.Type
}

// GoType returns the concrete struct type the descriptor was built from.
func (d *TypeDescriptor) GoType() reflect.Type { return d.goType }

// Property returns the named property descriptor.
func (d *TypeDescriptor) Property(name string) (Property, bool) {
	i, ok := d.index[name]
	if !ok {
		return Property{}, false
	}
	return d.Properties[i], true
}

// HasDefault reports whether the property carries a default value.
func (d *TypeDescriptor) HasDefault(name string) bool {
	_, ok := d.defaults[name]
	return ok
}

// PropertyDefault returns the default value of the named property. Asking for
// a property without a default is an error.
func (d *TypeDescriptor) PropertyDefault(name string) (any, error) {
	v, ok := d.defaults[name]
	if !ok {
		return nil, Issues{{
			Path:    "/" + name,
			Code:    CodeNoDefault,
			Message: i18n.T(CodeNoDefault, nil),
			Params:  map[string]any{"property": name, "type": d.Name},
		}}
	}
	return v, nil
}

// Doc returns the parsed doc comment of the named property, when registered.
func (d *TypeDescriptor) Doc(name string) (docstring.Doc, bool) {
	doc, ok := d.docs[name]
	return doc, ok
}

// Examples returns the example values of the named property. Explicit
// registry entries win over values parsed from @example doc tags.
func (d *TypeDescriptor) Examples(name string) ([]any, bool) {
	ex, ok := d.examples[name]
	return ex, ok
}

// RequiredNames returns property names outside the optional partition, in
// declaration order.
func (d *TypeDescriptor) RequiredNames() []string {
	out := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		if !p.Optional {
			out = append(out, p.Name)
		}
	}
	return out
}

// OptionalNames returns the optional partition, in declaration order.
func (d *TypeDescriptor) OptionalNames() []string {
	var out []string
	for _, p := range d.Properties {
		if p.Optional {
			out = append(out, p.Name)
		}
	}
	return out
}
