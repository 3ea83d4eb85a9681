package immutable

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"

	"github.com/coudenysj/json-immutable-objects/i18n"
)

// Hydrate builds an immutable record value of type T from a wire map.
// Required properties must be present unless they carry a default; unknown
// keys are rejected. Values are type-checked against the property kinds
// before assignment, so a returned record always satisfies its descriptor.
func Hydrate[T any](ctx context.Context, r *Registry, src map[string]any) (T, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return zero, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "Hydrate requires struct T"}}
	}
	rv, err := hydrateStruct(ctx, r, rt, src)
	if err != nil {
		return zero, err
	}
	out, ok := rv.Interface().(T)
	if !ok {
		// T was a pointer type
		pv := reflect.New(rt)
		pv.Elem().Set(rv)
		out = pv.Interface().(T)
	}
	return out, nil
}

// ValidateValue checks a wire map against a descriptor without building a
// record: required properties present (or defaulted) and no unknown keys.
func ValidateValue(ctx context.Context, d *TypeDescriptor, src map[string]any) error {
	var iss Issues
	for _, p := range d.Properties {
		if _, ok := src[p.Name]; ok {
			continue
		}
		if p.Optional || d.HasDefault(p.Name) {
			continue
		}
		iss = AppendIssues(iss, Issue{Path: "/" + p.Name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required property missing"})
		if IsFailFast(ctx) {
			return iss
		}
	}
	iss = AppendIssues(iss, unknownKeyIssues(d, src)...)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func hydrateStruct(ctx context.Context, r *Registry, rt reflect.Type, src map[string]any) (reflect.Value, error) {
	d, err := r.DescribeType(rt)
	if err != nil {
		return reflect.Value{}, err
	}
	rv := reflect.New(rt).Elem()
	var iss Issues
	for _, p := range d.Properties {
		fv := rv.Field(d.fieldIndex[p.Name])
		val, exists := src[p.Name]
		if !exists {
			dv, derr := d.PropertyDefault(p.Name)
			switch {
			case derr == nil:
				val = dv
			case p.Optional:
				continue
			default:
				iss = AppendIssues(iss, Issue{Path: "/" + p.Name, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required property missing"})
				if IsFailFast(ctx) {
					return reflect.Value{}, iss
				}
				continue
			}
		}
		if val == nil {
			if !p.Nullable {
				iss = AppendIssues(iss, Issue{Path: "/" + p.Name, Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "null for non-nullable property"})
				if IsFailFast(ctx) {
					return reflect.Value{}, iss
				}
			}
			// nullable: leave the field at its zero (nil) value
			continue
		}
		if i2 := assignField(ctx, r, fv, p, val); len(i2) > 0 {
			iss = AppendIssues(iss, rebaseIssues("/"+p.Name, i2)...)
			if IsFailFast(ctx) {
				return reflect.Value{}, iss
			}
		}
	}
	iss = AppendIssues(iss, unknownKeyIssues(d, src)...)
	if len(iss) > 0 {
		return reflect.Value{}, iss
	}
	return rv, nil
}

// unknownKeyIssues reports wire keys the descriptor does not declare, in
// key-sorted order for deterministic output.
func unknownKeyIssues(d *TypeDescriptor, src map[string]any) Issues {
	var unknown []string
	for k := range src {
		if _, ok := d.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	var iss Issues
	for _, k := range unknown {
		iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
	}
	return iss
}

// rebaseIssues prefixes child issue paths with the field pointer segment.
func rebaseIssues(base string, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
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

// assignField writes a wire value into a struct field, allocating through
// pointers for nullable fields.
func assignField(ctx context.Context, r *Registry, fv reflect.Value, p Property, val any) Issues {
	if fv.Kind() == reflect.Pointer {
		nv := reflect.New(fv.Type().Elem())
		if iss := assignValue(ctx, r, nv.Elem(), p.Kind, p.Item, val); len(iss) > 0 {
			return iss
		}
		fv.Set(nv)
		return nil
	}
	return assignValue(ctx, r, fv, p.Kind, p.Item, val)
}

func assignValue(ctx context.Context, r *Registry, dst reflect.Value, k Kind, item *Item, val any) Issues {
	switch k {
	case KindString, KindBool, KindInt, KindFloat:
		return assignScalar(dst, k, val)
	case KindArray:
		list, ok := val.([]any)
		if !ok {
			// typed slices also pass through on direct assignment
			vv := reflect.ValueOf(val)
			if vv.Kind() == reflect.Slice && vv.Type().AssignableTo(dst.Type()) {
				dst.Set(vv)
				return nil
			}
			return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
		}
		if dst.Kind() != reflect.Slice {
			return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "field is not a slice"}}
		}
		elemKind := KindInvalid
		var elemItem *Item
		if item != nil {
			elemKind = item.Kind
		}
		out := reflect.MakeSlice(dst.Type(), len(list), len(list))
		for i, ev := range list {
			ek := elemKind
			if ek == KindInvalid {
				// opaque element type: assign as-is when possible
				vv := reflect.ValueOf(ev)
				if ev == nil || !vv.Type().AssignableTo(out.Index(i).Type()) {
					if out.Index(i).Kind() == reflect.Interface {
						if ev != nil {
							out.Index(i).Set(reflect.ValueOf(ev))
						}
						continue
					}
					return Issues{{Path: "/" + itoa(i), Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil)}}
				}
				out.Index(i).Set(vv)
				continue
			}
			if iss := assignValue(ctx, r, out.Index(i), ek, elemItem, ev); len(iss) > 0 {
				return rebaseIssues("/"+itoa(i), iss)
			}
		}
		dst.Set(out)
		return nil
	case KindObject:
		m, ok := val.(map[string]any)
		if !ok {
			vv := reflect.ValueOf(val)
			if vv.Type().AssignableTo(dst.Type()) {
				dst.Set(vv)
				return nil
			}
			return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
		}
		if dst.Kind() == reflect.Struct {
			nv, err := hydrateStruct(ctx, r, dst.Type(), m)
			if err != nil {
				if i2, ok := AsIssues(err); ok {
					return i2
				}
				return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
			}
			dst.Set(nv)
			return nil
		}
		if dst.Kind() == reflect.Map || dst.Kind() == reflect.Interface {
			vv := reflect.ValueOf(m)
			if vv.Type().AssignableTo(dst.Type()) {
				dst.Set(vv)
				return nil
			}
			return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "field cannot hold a free-form object"}}
		}
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "field cannot hold an object"}}
	default:
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil)}}
	}
}

// assignScalar type-checks and converts a wire scalar into the destination.
func assignScalar(dst reflect.Value, k Kind, val any) Issues {
	bad := func(hint string) Issues {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: hint}}
	}
	switch k {
	case KindString:
		s, ok := val.(string)
		if !ok {
			return bad("expected string")
		}
		if dst.Kind() != reflect.String {
			return bad("field is not a string")
		}
		dst.SetString(s)
	case KindBool:
		b, ok := val.(bool)
		if !ok {
			return bad("expected boolean")
		}
		if dst.Kind() != reflect.Bool {
			return bad("field is not a bool")
		}
		dst.SetBool(b)
	case KindInt:
		n, ok := intValue(val)
		if !ok {
			return bad("expected integer")
		}
		switch dst.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			dst.SetInt(n)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if n < 0 {
				return bad("negative value for unsigned field")
			}
			dst.SetUint(uint64(n))
		default:
			return bad("field is not an integer")
		}
	case KindFloat:
		f, ok := floatValue(val)
		if !ok {
			return bad("expected number")
		}
		switch dst.Kind() {
		case reflect.Float32, reflect.Float64:
			dst.SetFloat(f)
		default:
			return bad("field is not a number")
		}
	}
	return nil
}

func intValue(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func floatValue(val any) (float64, bool) {
	switch n := val.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		if i, ok := intValue(val); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// small local itoa to avoid extra imports here
func itoa(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	bp := len(buf)
	for i > 0 {
		bp--
		buf[bp] = digits[i%10]
		i /= 10
	}
	return string(buf[bp:])
}
