package docstring_test

import (
	"reflect"
	"testing"

	"github.com/coudenysj/json-immutable-objects/docstring"
)

func TestParse_SummaryDescriptionAndExamples(t *testing.T) {
	text := "The display name of the user.\n" +
		"\n" +
		"Shown in profile headers and search results.\n" +
		"Always trimmed of surrounding whitespace.\n" +
		"\n" +
		"@example \"Jane Doe\"\n" +
		"@example \"J.\"\n"

	d := docstring.Parse(text)
	if d.Summary != "The display name of the user." {
		t.Fatalf("summary mismatch: %q", d.Summary)
	}
	if d.Description != "Shown in profile headers and search results.\nAlways trimmed of surrounding whitespace." {
		t.Fatalf("description mismatch: %q", d.Description)
	}
	if !reflect.DeepEqual(d.Examples, []string{`"Jane Doe"`, `"J."`}) {
		t.Fatalf("examples mismatch: %#v", d.Examples)
	}
}

func TestParse_ExamplesExcludedFromProse(t *testing.T) {
	d := docstring.Parse("Port to listen on.\n@example 8080\n")
	if d.Summary != "Port to listen on." {
		t.Fatalf("summary mismatch: %q", d.Summary)
	}
	if d.Description != "" {
		t.Fatalf("description should be empty, got %q", d.Description)
	}
	if len(d.Examples) != 1 || d.Examples[0] != "8080" {
		t.Fatalf("examples mismatch: %#v", d.Examples)
	}
}

func TestText_JoinRules(t *testing.T) {
	cases := []struct {
		name string
		doc  docstring.Doc
		want string
	}{
		{"both", docstring.Doc{Summary: "a", Description: "b"}, "a\nb"},
		{"summary only", docstring.Doc{Summary: "a"}, "a"},
		{"description only", docstring.Doc{Description: "b"}, "b"},
		{"empty", docstring.Doc{}, ""},
	}
	for _, tc := range cases {
		if got := tc.doc.Text(); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseExamples_NativeTypes(t *testing.T) {
	got := docstring.ParseExamples([]string{`"Jane"`, `8080`, `true`, `[1,2]`, `not json`})
	want := []any{"Jane", float64(8080), true, []any{float64(1), float64(2)}, "not json"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parsed examples mismatch\n got=%#v\nwant=%#v", got, want)
	}
}

func TestParseExamples_Empty(t *testing.T) {
	if got := docstring.ParseExamples(nil); got != nil {
		t.Fatalf("expected nil for no examples, got %#v", got)
	}
}
