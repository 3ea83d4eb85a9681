package jsonschema_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	js "github.com/coudenysj/json-immutable-objects/jsonschema"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func TestConstructors_Shapes(t *testing.T) {
	cases := []struct {
		name string
		s    *js.Schema
		want map[string]any
	}{
		{"scalar", js.Scalar("string"), map[string]any{"type": "string"}},
		{"array", js.ArrayOf(js.Scalar("integer")), map[string]any{
			"type": "array", "items": map[string]any{"type": "integer"},
		}},
		{"ref", js.RefTo("User"), map[string]any{"$ref": "#/$defs/User"}},
		{"nullable", js.NullableOf(js.Scalar("string")), map[string]any{
			"oneOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "null"}},
		}},
	}
	for _, tc := range cases {
		got := normalize(tc.s)
		want := normalize(tc.want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s schema mismatch\n got=%v\nwant=%v", tc.name, got, want)
		}
	}
}

func TestObjectOf_RejectsUnknownProperties(t *testing.T) {
	s := js.ObjectOf(map[string]*js.Schema{"id": js.Scalar("string")}, []string{"id"})
	got := normalize(s)
	want := normalize(map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"id": map[string]any{"type": "string"}},
		"required":             []any{"id"},
		"additionalProperties": false,
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("object schema mismatch\n got=%v\nwant=%v", got, want)
	}
}

func TestNullableOf_Idempotent(t *testing.T) {
	s := js.NullableOf(js.Scalar("string"))
	if again := js.NullableOf(s); again != s {
		t.Fatalf("wrapping an already-nullable schema should be a no-op")
	}
	if n := js.NullableOf(nil); n.Type != "null" {
		t.Fatalf("nil wraps to the null schema, got %+v", n)
	}
}

func TestEncodeYAML(t *testing.T) {
	s := js.ObjectOf(map[string]*js.Schema{"id": js.Scalar("string")}, []string{"id"})
	out, err := js.EncodeYAML(s)
	if err != nil {
		t.Fatalf("yaml encode err: %v", err)
	}
	text := string(out)
	for _, frag := range []string{"type: object", "required:", "- id"} {
		if !strings.Contains(text, frag) {
			t.Fatalf("yaml output missing %q:\n%s", frag, text)
		}
	}
}

func TestEncodeJSONIndent(t *testing.T) {
	s := js.Scalar("boolean")
	out, err := js.EncodeJSONIndent(s)
	if err != nil {
		t.Fatalf("json encode err: %v", err)
	}
	if !strings.Contains(string(out), `"type": "boolean"`) {
		t.Fatalf("unexpected indent output: %s", out)
	}
}
