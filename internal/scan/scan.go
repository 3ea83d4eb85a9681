// Package scan extracts record doc comments from Go source. Doc comments only
// exist in source form, so schema descriptions and @example tags are collected
// here and turned into a static registration table by the gen package.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strconv"
	"strings"

	immutable "github.com/coudenysj/json-immutable-objects"
)

// TypeDocs holds the raw doc comments of one exported record type.
type TypeDocs struct {
	Name   string
	Doc    string // type-level doc text
	Fields []FieldDoc
}

// FieldDoc pairs a resolved property name with its raw doc text.
type FieldDoc struct {
	Property string
	Doc      string
}

// Package scans a Go package directory for exported struct types and their
// field doc comments. It returns the package name and the types in name
// order.
func Package(dir string) (string, []TypeDocs, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, nil, parser.ParseComments)
	if err != nil {
		return "", nil, fmt.Errorf(`failed to parse package "%s": %w`, dir, err)
	}

	var pkgName string
	var types []TypeDocs
	for name, pkg := range pkgs {
		if strings.HasSuffix(name, "_test") {
			continue
		}
		pkgName = name
		for _, file := range pkg.Files {
			types = append(types, fileTypes(file)...)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return pkgName, types, nil
}

// Source scans a single in-memory Go source file; used by tests and tooling.
func Source(src string) (string, []TypeDocs, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "src.go", src, parser.ParseComments)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse source: %w", err)
	}
	types := fileTypes(file)
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	return file.Name.Name, types, nil
}

func fileTypes(file *ast.File) []TypeDocs {
	var out []TypeDocs
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			td := TypeDocs{Name: ts.Name.Name}
			if ts.Doc != nil {
				td.Doc = strings.TrimSpace(ts.Doc.Text())
			} else if gd.Doc != nil && len(gd.Specs) == 1 {
				td.Doc = strings.TrimSpace(gd.Doc.Text())
			}
			td.Fields = structFields(st)
			if td.Doc != "" || len(td.Fields) > 0 {
				out = append(out, td)
			}
		}
	}
	return out
}

func structFields(st *ast.StructType) []FieldDoc {
	var out []FieldDoc
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 || !field.Names[0].IsExported() {
			continue
		}
		name := resolveFieldKey(field)
		if name == "-" || name == "" {
			continue
		}
		text := ""
		if field.Doc != nil {
			text = strings.TrimSpace(field.Doc.Text())
		} else if field.Comment != nil {
			text = strings.TrimSpace(field.Comment.Text())
		}
		if text == "" {
			continue
		}
		out = append(out, FieldDoc{Property: name, Doc: text})
	}
	return out
}

func resolveFieldKey(field *ast.Field) string {
	var tag reflect.StructTag
	if field.Tag != nil {
		if raw, err := strconv.Unquote(field.Tag.Value); err == nil {
			tag = reflect.StructTag(raw)
		}
	}
	return immutable.ResolveKey(tag, field.Names[0].Name)
}
