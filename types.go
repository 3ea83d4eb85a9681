package immutable

// Kind identifies the wire type of a record property.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindArray
	KindObject
)

// Scalar reports whether the kind maps to a JSON scalar type.
func (k Kind) Scalar() bool {
	switch k {
	case KindString, KindBool, KindInt, KindFloat:
		return true
	default:
		return false
	}
}

// SchemaType returns the JSON Schema type name for the kind.
func (k Kind) SchemaType() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return ""
	}
}

func (k Kind) String() string {
	if s := k.SchemaType(); s != "" {
		return s
	}
	return "invalid"
}

// Item describes the element type of an array-kinded property.
type Item struct {
	Kind     Kind
	TypeName string // record type name when Kind is KindObject
}

// Property describes a single record property in wire terms.
type Property struct {
	Name     string
	Kind     Kind
	TypeName string // record type name when Kind is KindObject
	Nullable bool
	Optional bool
	Item     *Item // set when Kind is KindArray and the element type is known
}

// OptionalLister lets a record type declare its optional properties by name.
// Names use resolved wire keys, not Go field names.
type OptionalLister interface {
	OptionalProperties() []string
}

// DefaultsProvider lets a record type override reflection-derived defaults.
// Entries win over prototype field values; entries for unknown properties are
// rejected when the descriptor is built.
type DefaultsProvider interface {
	PropertyDefaults() map[string]any
}

// ArrayItemTyper supplies element kinds for array properties whose element
// type is not recoverable through reflection (for example []any fields).
type ArrayItemTyper interface {
	ArrayItemTypes() map[string]Item
}
