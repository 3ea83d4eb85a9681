package immutable_test

import (
	"reflect"
	"testing"

	immutable "github.com/coudenysj/json-immutable-objects"
)

type address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

type account struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Email  *string `json:"email"`
	Bio    string  `json:"bio" immutable:"optional"`
	Score  float64 `json:"score"`
	Active bool    `json:"active"`
}

func (account) OptionalProperties() []string { return []string{"email"} }

func (account) PropertyDefaults() map[string]any { return map[string]any{"active": true} }

type badDefaults struct {
	Name string `json:"name"`
}

func (badDefaults) PropertyDefaults() map[string]any { return map[string]any{"nope": 1} }

type matrix struct {
	Rows [][]int `json:"rows"`
}

func TestDescribe_PropertyOrderAndKinds(t *testing.T) {
	r := immutable.NewRegistry()
	d, err := r.Describe(account{})
	if err != nil {
		t.Fatalf("describe err: %v", err)
	}
	wantOrder := []string{"name", "age", "email", "bio", "score", "active"}
	if len(d.Properties) != len(wantOrder) {
		t.Fatalf("property count mismatch: got %d want %d", len(d.Properties), len(wantOrder))
	}
	for i, name := range wantOrder {
		if d.Properties[i].Name != name {
			t.Fatalf("property %d: got %q want %q", i, d.Properties[i].Name, name)
		}
	}
	wantKinds := map[string]immutable.Kind{
		"name":   immutable.KindString,
		"age":    immutable.KindInt,
		"email":  immutable.KindString,
		"bio":    immutable.KindString,
		"score":  immutable.KindFloat,
		"active": immutable.KindBool,
	}
	for name, k := range wantKinds {
		p, ok := d.Property(name)
		if !ok {
			t.Fatalf("property %q missing", name)
		}
		if p.Kind != k {
			t.Fatalf("property %q kind: got %v want %v", name, p.Kind, k)
		}
	}
	if p, _ := d.Property("email"); !p.Nullable {
		t.Fatalf("pointer field should be nullable")
	}
}

func TestDescribe_OptionalPartition(t *testing.T) {
	r := immutable.NewRegistry()
	d, err := r.Describe(account{})
	if err != nil {
		t.Fatalf("describe err: %v", err)
	}
	required := d.RequiredNames()
	optional := d.OptionalNames()
	if !reflect.DeepEqual(optional, []string{"email", "bio"}) {
		t.Fatalf("optional partition mismatch: %v", optional)
	}
	for _, name := range optional {
		for _, req := range required {
			if req == name {
				t.Fatalf("property %q in both partitions", name)
			}
		}
	}
	if len(required)+len(optional) != len(d.Properties) {
		t.Fatalf("partition union does not cover the property set")
	}
}

func TestDescribe_DefaultsFromPrototypeAndHook(t *testing.T) {
	r := immutable.NewRegistry()
	if err := r.Register(account{Bio: "n/a"}); err != nil {
		t.Fatalf("register err: %v", err)
	}
	d, err := r.Describe(account{})
	if err != nil {
		t.Fatalf("describe err: %v", err)
	}
	// reflection-visible prototype default
	if dv, err := d.PropertyDefault("bio"); err != nil || dv != "n/a" {
		t.Fatalf("bio default: got (%v, %v)", dv, err)
	}
	// override hook default
	if dv, err := d.PropertyDefault("active"); err != nil || dv != true {
		t.Fatalf("active default: got (%v, %v)", dv, err)
	}
	// no default set
	if _, err := d.PropertyDefault("age"); err == nil {
		t.Fatalf("expected error for unset default")
	} else if iss, ok := immutable.AsIssues(err); !ok || iss[0].Code != immutable.CodeNoDefault {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDescribe_DefaultForUnknownPropertyFails(t *testing.T) {
	r := immutable.NewRegistry()
	_, err := r.Describe(badDefaults{})
	if err == nil {
		t.Fatalf("expected error for unknown-property default")
	}
	iss, ok := immutable.AsIssues(err)
	if !ok || iss[0].Code != immutable.CodeInvalidDefault {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDescribe_NestedSliceRejected(t *testing.T) {
	r := immutable.NewRegistry()
	_, err := r.Describe(matrix{})
	if err == nil {
		t.Fatalf("expected nested array error")
	}
	iss, ok := immutable.AsIssues(err)
	if !ok || iss[0].Code != immutable.CodeNestedArray {
		t.Fatalf("unexpected error: %v", err)
	}
	if iss[0].Path != "/rows" {
		t.Fatalf("unexpected path: %q", iss[0].Path)
	}
}

func TestDescribe_Memoized(t *testing.T) {
	r := immutable.NewRegistry()
	d1, err := r.Describe(account{})
	if err != nil {
		t.Fatalf("describe err: %v", err)
	}
	d2, err := r.Describe(account{})
	if err != nil {
		t.Fatalf("describe err: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("descriptor not memoized")
	}
}

func TestDescribeName_Unknown(t *testing.T) {
	r := immutable.NewRegistry()
	_, err := r.DescribeName("Nope")
	if err == nil {
		t.Fatalf("expected unknown type error")
	}
	iss, ok := immutable.AsIssues(err)
	if !ok || iss[0].Code != immutable.CodeUnknownType {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveKey_Priority(t *testing.T) {
	cases := []struct {
		tag  reflect.StructTag
		want string
	}{
		{`immutable:"name=display_name" json:"dn"`, "display_name"},
		{`json:"dn,omitempty"`, "dn"},
		{`json:"-"`, "-"},
		{``, "Field"},
	}
	for _, tc := range cases {
		if got := immutable.ResolveKey(tc.tag, "Field"); got != tc.want {
			t.Fatalf("tag %q: got %q want %q", tc.tag, got, tc.want)
		}
	}
}
