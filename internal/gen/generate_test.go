package gen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coudenysj/json-immutable-objects/internal/gen"
	"github.com/coudenysj/json-immutable-objects/internal/scan"
)

func TestGenerateDocs_RegistersParsedDocs(t *testing.T) {
	types := []scan.TypeDocs{
		{
			Name: "User",
			Fields: []scan.FieldDoc{
				{Property: "name", Doc: "The display name.\n\n@example \"Jane\""},
				{Property: "age", Doc: "Age in full years."},
			},
		},
	}
	f := gen.GenerateDocs("records", types)
	rendered := fmt.Sprintf("%#v", f)

	for _, frag := range []string{
		"package records",
		"func init()",
		`immutable.RegisterDocs("User"`,
		`"name":`,
		`"The display name."`,
		`"\"Jane\""`,
		`"Age in full years."`,
	} {
		if !strings.Contains(rendered, frag) {
			t.Fatalf("generated file missing %q:\n%s", frag, rendered)
		}
	}
}

func TestGenerateDocs_SkipsTypesWithoutFieldDocs(t *testing.T) {
	f := gen.GenerateDocs("records", []scan.TypeDocs{{Name: "Empty"}})
	rendered := fmt.Sprintf("%#v", f)
	if strings.Contains(rendered, "RegisterDocs") {
		t.Fatalf("empty type should not register docs:\n%s", rendered)
	}
}
