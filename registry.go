package immutable

import (
	"reflect"
	"sync"

	"github.com/coudenysj/json-immutable-objects/docstring"
	"github.com/coudenysj/json-immutable-objects/i18n"
)

// Registry holds registered record prototypes and memoizes one TypeDescriptor
// per concrete type. Descriptors are built lazily on first access and cached
// for the process lifetime; there is no invalidation path. All methods are
// safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	protos       map[reflect.Type]reflect.Value
	nameToType   map[string]reflect.Type
	built        map[reflect.Type]*TypeDescriptor
	docs         map[string]map[string]docstring.Doc
	examples     map[string]map[string]any
	fileDefaults map[string]map[string]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		protos:       map[reflect.Type]reflect.Value{},
		nameToType:   map[string]reflect.Type{},
		built:        map[reflect.Type]*TypeDescriptor{},
		docs:         map[string]map[string]docstring.Doc{},
		examples:     map[string]map[string]any{},
		fileDefaults: map[string]map[string]any{},
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the package-level
// convenience functions.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register records a record prototype in the default registry.
// Non-zero prototype fields become property defaults.
func Register(proto any) error { return defaultRegistry.Register(proto) }

// RegisterDocs records per-property doc comments for a type name in the
// default registry. Generated registration files call this from init.
func RegisterDocs(typeName string, docs map[string]docstring.Doc) {
	defaultRegistry.RegisterDocs(typeName, docs)
}

// RegisterExamples records explicit per-property example values for a type
// name in the default registry.
func RegisterExamples(typeName string, examples map[string]any) {
	defaultRegistry.RegisterExamples(typeName, examples)
}

// Describe returns the memoized descriptor of v's type from the default
// registry, building it on first access.
func Describe(v any) (*TypeDescriptor, error) { return defaultRegistry.Describe(v) }

// Register records a record prototype. The prototype must be a struct or a
// pointer to one. Its non-zero fields become property defaults.
func (r *Registry) Register(proto any) error {
	rv := reflect.ValueOf(proto)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.New(rv.Type().Elem()).Elem()
			break
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "Register requires a struct prototype"}}
	}
	rt := rv.Type()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protos[rt] = rv
	if rt.Name() != "" {
		r.nameToType[rt.Name()] = rt
	}
	return nil
}

// RegisterDocs records per-property doc comments for a type name. Docs must
// be registered before the descriptor is first built; later registrations are
// not observed because descriptors are never rebuilt.
func (r *Registry) RegisterDocs(typeName string, docs map[string]docstring.Doc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.docs[typeName]
	if m == nil {
		m = map[string]docstring.Doc{}
		r.docs[typeName] = m
	}
	for k, v := range docs {
		m[k] = v
	}
}

// RegisterExamples records explicit example values per property for a type
// name. A slice value is used as the example list as-is; any other value
// becomes a single-element list. Explicit entries win over @example doc tags.
func (r *Registry) RegisterExamples(typeName string, examples map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.examples[typeName]
	if m == nil {
		m = map[string]any{}
		r.examples[typeName] = m
	}
	for k, v := range examples {
		m[k] = v
	}
}

// Describe returns the memoized descriptor of v's type, building it on first
// access. Unregistered struct types are registered implicitly with a zero
// prototype.
func (r *Registry) Describe(v any) (*TypeDescriptor, error) {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "Describe requires a struct value"}}
	}
	return r.DescribeType(rt)
}

// DescribeType is Describe for a reflect.Type already at hand.
func (r *Registry) DescribeType(rt reflect.Type) (*TypeDescriptor, error) {
	r.mu.RLock()
	if d, ok := r.built[rt]; ok {
		r.mu.RUnlock()
		return d, nil
	}
	r.mu.RUnlock()

	d, err := r.buildDescriptor(rt)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if prev, ok := r.built[rt]; ok { // double-check
		r.mu.Unlock()
		return prev, nil
	}
	r.built[rt] = d
	if rt.Name() != "" {
		r.nameToType[rt.Name()] = rt
	}
	r.mu.Unlock()
	return d, nil
}

// DescribeName resolves a registered record type name to its descriptor.
func (r *Registry) DescribeName(name string) (*TypeDescriptor, error) {
	r.mu.RLock()
	rt, ok := r.nameToType[name]
	r.mu.RUnlock()
	if !ok {
		return nil, Issues{{
			Path:    "/",
			Code:    CodeUnknownType,
			Message: i18n.T(CodeUnknownType, nil),
			Params:  map[string]any{"type": name},
		}}
	}
	return r.DescribeType(rt)
}

func (r *Registry) buildDescriptor(rt reflect.Type) (*TypeDescriptor, error) {
	r.mu.RLock()
	proto, hasProto := r.protos[rt]
	typeDocs := r.docs[rt.Name()]
	typeExamples := r.examples[rt.Name()]
	fileDefaults := r.fileDefaults[rt.Name()]
	r.mu.RUnlock()
	if !hasProto {
		proto = reflect.New(rt).Elem()
	}

	optional := map[string]struct{}{}
	if h, ok := hookFor[OptionalLister](rt, proto); ok {
		for _, n := range h.OptionalProperties() {
			optional[n] = struct{}{}
		}
	}
	var itemTypes map[string]Item
	if h, ok := hookFor[ArrayItemTyper](rt, proto); ok {
		itemTypes = h.ArrayItemTypes()
	}

	d := &TypeDescriptor{
		Name:       rt.Name(),
		index:      map[string]int{},
		fieldIndex: map[string]int{},
		defaults:   map[string]any{},
		docs:       map[string]docstring.Doc{},
		examples:   map[string][]any{},
		goType:     rt,
	}

	var iss Issues
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		k, typeName, nullable := kindOf(sf.Type)
		if k == KindInvalid {
			iss = AppendIssues(iss, Issue{
				Path: "/" + name, Code: CodeInvalidType,
				Message: i18n.T(CodeInvalidType, nil),
				Hint:    "unsupported property type " + sf.Type.String(),
			})
			continue
		}
		p := Property{
			Name:     name,
			Kind:     k,
			TypeName: typeName,
			Nullable: nullable || tagHasOption(sf.Tag, "nullable"),
			Optional: tagHasOption(sf.Tag, "optional"),
		}
		if _, ok := optional[name]; ok {
			p.Optional = true
		}
		if k == KindArray {
			item, _, itemIss := itemOf(sf.Type)
			if len(itemIss) > 0 {
				for _, it := range itemIss {
					it.Path = "/" + name
					iss = AppendIssues(iss, it)
				}
				continue
			}
			if item == nil {
				if it, ok := itemTypes[name]; ok {
					item = &it
				}
			}
			p.Item = item
		}

		// reflection-visible defaults: non-zero prototype fields
		fv := proto.Field(i)
		if !fv.IsZero() {
			dv := fv
			if dv.Kind() == reflect.Pointer {
				dv = dv.Elem()
			}
			d.defaults[name] = dv.Interface()
		}

		if doc, ok := typeDocs[name]; ok {
			d.docs[name] = doc
		}

		d.index[name] = len(d.Properties)
		d.fieldIndex[name] = i
		d.Properties = append(d.Properties, p)
	}
	if len(iss) > 0 {
		return nil, iss
	}

	// override hook defaults, filtered to known properties
	if h, ok := hookFor[DefaultsProvider](rt, proto); ok {
		if err := mergeDefaults(d, h.PropertyDefaults()); err != nil {
			return nil, err
		}
	}
	// file-registered overrides win last
	if len(fileDefaults) > 0 {
		if err := mergeDefaults(d, fileDefaults); err != nil {
			return nil, err
		}
	}

	// example values: explicit registry entry wins over doc @example tags
	for _, p := range d.Properties {
		if raw, ok := typeExamples[p.Name]; ok {
			if list, ok := raw.([]any); ok {
				d.examples[p.Name] = list
			} else {
				d.examples[p.Name] = []any{raw}
			}
			continue
		}
		if doc, ok := d.docs[p.Name]; ok && len(doc.Examples) > 0 {
			d.examples[p.Name] = docstring.ParseExamples(doc.Examples)
		}
	}

	return d, nil
}

// mergeDefaults copies override defaults into the descriptor, rejecting
// entries for properties the type does not declare.
func mergeDefaults(d *TypeDescriptor, overrides map[string]any) error {
	var iss Issues
	for k, v := range overrides {
		if _, ok := d.index[k]; !ok {
			iss = AppendIssues(iss, Issue{
				Path:    "/" + k,
				Code:    CodeInvalidDefault,
				Message: i18n.T(CodeInvalidDefault, nil),
				Hint:    "default for unknown property",
				Params:  map[string]any{"property": k, "type": d.Name},
			})
			continue
		}
		d.defaults[k] = v
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// hookFor resolves an optional interface hook against the prototype value,
// trying both value and pointer receivers.
func hookFor[T any](rt reflect.Type, pv reflect.Value) (T, bool) {
	var zero T
	if h, ok := pv.Interface().(T); ok {
		return h, true
	}
	ptr := reflect.New(rt)
	ptr.Elem().Set(pv)
	if h, ok := ptr.Interface().(T); ok {
		return h, true
	}
	return zero, false
}
