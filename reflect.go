package immutable

import (
	"reflect"
	"strings"

	"github.com/coudenysj/json-immutable-objects/i18n"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external property name used by the registry and Hydrate.
// Priority: immutable:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	return ResolveKey(sf.Tag, sf.Name)
}

// ResolveKey is the tag-level form of ResolveStructKey. It is shared with the
// recordgen source scanner, which sees tags without a reflect.StructField.
func ResolveKey(tag reflect.StructTag, fieldName string) string {
	if it := tag.Get("immutable"); it != "" {
		for _, p := range strings.Split(it, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return fieldName
}

// tagHasOption reports whether the immutable tag carries a bare option such as
// "optional" or "nullable".
func tagHasOption(tag reflect.StructTag, opt string) bool {
	it := tag.Get("immutable")
	if it == "" {
		return false
	}
	for _, p := range strings.Split(it, ",") {
		if strings.TrimSpace(p) == opt {
			return true
		}
	}
	return false
}

// kindOf maps a Go type to a property kind. The boolean result reports whether
// the type was a pointer (nullable). Nested slices are rejected by the caller.
func kindOf(t reflect.Type) (Kind, string, bool) {
	nullable := false
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return KindString, "", nullable
	case reflect.Bool:
		return KindBool, "", nullable
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt, "", nullable
	case reflect.Float32, reflect.Float64:
		return KindFloat, "", nullable
	case reflect.Slice, reflect.Array:
		return KindArray, "", nullable
	case reflect.Struct:
		return KindObject, t.Name(), nullable
	case reflect.Map:
		// free-form object; no resolvable record name
		return KindObject, "", nullable
	case reflect.Interface:
		return KindInvalid, "", nullable
	default:
		return KindInvalid, "", nullable
	}
}

// itemOf resolves the element descriptor of a slice/array field. A nil result
// with ok=true means the element type is opaque (for example []any) and must
// be supplied via ArrayItemTyper or a per-call override.
func itemOf(t reflect.Type) (*Item, bool, Issues) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	elem := t.Elem()
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
		return nil, false, Issues{{Path: "/", Code: CodeNestedArray, Message: i18n.T(CodeNestedArray, nil)}}
	}
	if elem.Kind() == reflect.Interface {
		return nil, true, nil
	}
	k, name, _ := kindOf(elem)
	if k == KindInvalid {
		return nil, false, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "unsupported array element type " + elem.String()}}
	}
	return &Item{Kind: k, TypeName: name}, true, nil
}
