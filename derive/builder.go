// Package derive builds JSON Schemas from record type descriptors.
package derive

import (
	"context"
	"reflect"
	"sync"

	immutable "github.com/coudenysj/json-immutable-objects"
	"github.com/coudenysj/json-immutable-objects/i18n"
	js "github.com/coudenysj/json-immutable-objects/jsonschema"
)

// Builder derives one JSON Schema per record type and memoizes the result for
// the process lifetime. The assembled schema carries description, examples
// and default decorations taken from the type's descriptor.
type Builder struct {
	reg          *immutable.Registry
	allowComplex bool

	mu    sync.RWMutex
	cache map[reflect.Type]*js.Schema
}

// Option configures a Builder.
type Option func(*Builder)

// AllowComplex enables expansion of nested record schemas. Expansion still
// requires the per-request immutable.WithNestedSchemas flag; without either,
// record-typed properties project as $ref schemas.
func AllowComplex(enabled bool) Option {
	return func(b *Builder) { b.allowComplex = enabled }
}

// New returns a Builder over the given registry.
func New(reg *immutable.Registry, opts ...Option) *Builder {
	b := &Builder{reg: reg, cache: map[reflect.Type]*js.Schema{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SchemaFor returns the schema of v's record type, building and caching it on
// first access. Repeated calls return the identical schema object.
func (b *Builder) SchemaFor(ctx context.Context, v any) (*js.Schema, error) {
	d, err := b.reg.Describe(v)
	if err != nil {
		return nil, err
	}
	b.mu.RLock()
	if s, ok := b.cache[d.GoType()]; ok {
		b.mu.RUnlock()
		return s, nil
	}
	b.mu.RUnlock()

	s, err := b.BuildSchema(ctx, d, nil)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	if prev, ok := b.cache[d.GoType()]; ok { // double-check
		b.mu.Unlock()
		return prev, nil
	}
	b.cache[d.GoType()] = s
	b.mu.Unlock()
	return s, nil
}

// BuildSchema assembles an object schema from the descriptor's ordered
// property map in a single pass. itemOverride supplies array element types
// for properties whose element type the descriptor could not resolve; it wins
// over descriptor-resolved items. The result is not cached.
func (b *Builder) BuildSchema(ctx context.Context, d *immutable.TypeDescriptor, itemOverride map[string]immutable.Item) (*js.Schema, error) {
	return b.buildSchema(ctx, d, itemOverride, map[string]bool{d.Name: true})
}

func (b *Builder) buildSchema(ctx context.Context, d *immutable.TypeDescriptor, itemOverride map[string]immutable.Item, expanding map[string]bool) (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(d.Properties))
	var required []string
	var iss immutable.Issues
	for _, p := range d.Properties {
		ps, i2 := b.propertySchema(ctx, p, itemOverride, expanding)
		if len(i2) > 0 {
			iss = immutable.AppendIssues(iss, i2...)
			continue
		}
		decorate(d, p.Name, ps)
		props[p.Name] = ps
		if !p.Optional {
			required = append(required, p.Name)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return js.ObjectOf(props, required), nil
}

func (b *Builder) propertySchema(ctx context.Context, p immutable.Property, itemOverride map[string]immutable.Item, expanding map[string]bool) (*js.Schema, immutable.Issues) {
	var base *js.Schema
	switch {
	case p.Kind.Scalar():
		base = js.Scalar(p.Kind.SchemaType())
	case p.Kind == immutable.KindArray:
		item := p.Item
		if it, ok := itemOverride[p.Name]; ok {
			item = &it
		}
		if item == nil {
			return nil, immutable.Issues{{
				Path:    "/" + p.Name,
				Code:    immutable.CodeMissingItemType,
				Message: i18n.T(immutable.CodeMissingItemType, nil),
				Params:  map[string]any{"property": p.Name},
			}}
		}
		if item.Kind == immutable.KindArray {
			return nil, immutable.Issues{{
				Path:    "/" + p.Name,
				Code:    immutable.CodeNestedArray,
				Message: i18n.T(immutable.CodeNestedArray, nil),
				Params:  map[string]any{"property": p.Name},
			}}
		}
		var itemSchema *js.Schema
		if item.Kind.Scalar() {
			itemSchema = js.Scalar(item.Kind.SchemaType())
		} else {
			s, iss := b.resolveType(ctx, item.TypeName, expanding)
			if len(iss) > 0 {
				return nil, rebase("/"+p.Name, iss)
			}
			itemSchema = s
		}
		base = js.ArrayOf(itemSchema)
	case p.Kind == immutable.KindObject:
		s, iss := b.resolveType(ctx, p.TypeName, expanding)
		if len(iss) > 0 {
			return nil, rebase("/"+p.Name, iss)
		}
		base = s
	default:
		return nil, immutable.Issues{{
			Path:    "/" + p.Name,
			Code:    immutable.CodeInvalidType,
			Message: i18n.T(immutable.CodeInvalidType, nil),
		}}
	}
	if p.Nullable {
		base = js.NullableOf(base)
	}
	return base, nil
}

// resolveType maps a record type name to a schema. Free-form objects (empty
// name) project as a plain object schema. Named types must be resolvable in
// the registry; they expand into full nested schemas only when the builder
// allows complex schemas and the request context asks for nesting, and
// otherwise project as $ref schemas. Recursive types always fall back to $ref
// at the cycle point.
func (b *Builder) resolveType(ctx context.Context, name string, expanding map[string]bool) (*js.Schema, immutable.Issues) {
	if name == "" {
		return &js.Schema{Type: "object", AdditionalProperties: true}, nil
	}
	nested, err := b.reg.DescribeName(name)
	if err != nil {
		return nil, asIssues(err)
	}
	if !b.allowComplex || !immutable.NestedSchemasEnabled(ctx) || expanding[name] {
		return js.RefTo(name), nil
	}
	expanding[name] = true
	s, err := b.buildSchema(ctx, nested, nil, expanding)
	delete(expanding, name)
	if err != nil {
		return nil, asIssues(err)
	}
	return s, nil
}

// decorate attaches description, examples and default to a property schema,
// best-effort: absent metadata leaves the schema bare.
func decorate(d *immutable.TypeDescriptor, name string, ps *js.Schema) {
	if doc, ok := d.Doc(name); ok {
		if text := doc.Text(); text != "" {
			ps.Description = text
		}
	}
	if ex, ok := d.Examples(name); ok && len(ex) > 0 {
		ps.Examples = ex
	}
	if d.HasDefault(name) {
		if dv, err := d.PropertyDefault(name); err == nil {
			ps.Default = dv
		}
	}
}

func rebase(base string, iss immutable.Issues) immutable.Issues {
	out := make(immutable.Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// asIssues converts an error into Issues, wrapping non-Issues errors.
func asIssues(err error) immutable.Issues {
	if iss, ok := immutable.AsIssues(err); ok {
		return iss
	}
	return immutable.Issues{{Path: "/", Code: immutable.CodeParseError, Message: err.Error(), Cause: err}}
}
