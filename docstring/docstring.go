// Package docstring parses record doc comments into a fixed record of
// summary, long description and @example values.
package docstring

import (
	"strings"

	gojson "github.com/goccy/go-json"
)

// Doc is the parsed form of a doc comment block.
type Doc struct {
	Summary     string   // first paragraph
	Description string   // remaining paragraphs, joined with blank lines
	Examples    []string // raw @example literals in source order
}

// Parse splits a raw doc comment (comment markers already stripped, as
// produced by go/doc) into summary, description and @example tags.
// @example lines are excluded from the prose.
func Parse(text string) Doc {
	var d Doc
	var paras []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, "\n"))
			cur = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@example") {
			raw := strings.TrimSpace(strings.TrimPrefix(trimmed, "@example"))
			if raw != "" {
				d.Examples = append(d.Examples, raw)
			}
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		cur = append(cur, trimmed)
	}
	flush()

	if len(paras) > 0 {
		d.Summary = paras[0]
	}
	if len(paras) > 1 {
		d.Description = strings.Join(paras[1:], "\n\n")
	}
	return d
}

// Text joins summary and description with a line break, omitting either side
// when empty. An empty result means the doc carries no prose.
func (d Doc) Text() string {
	switch {
	case d.Summary == "":
		return d.Description
	case d.Description == "":
		return d.Summary
	default:
		return d.Summary + "\n" + d.Description
	}
}

// ParseExamples converts raw @example literals into native values. Literals
// are decoded as JSON; anything that does not decode stays a string.
func ParseExamples(raws []string) []any {
	if len(raws) == 0 {
		return nil
	}
	out := make([]any, 0, len(raws))
	for _, raw := range raws {
		var v any
		if err := gojson.Unmarshal([]byte(raw), &v); err != nil {
			out = append(out, raw)
			continue
		}
		out = append(out, v)
	}
	return out
}
