// Package gen emits static doc registration files from scanned record types.
package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/coudenysj/json-immutable-objects/docstring"
	"github.com/coudenysj/json-immutable-objects/internal/scan"
)

const (
	pkgImmutable = "github.com/coudenysj/json-immutable-objects"
	pkgDocstring = "github.com/coudenysj/json-immutable-objects/docstring"
)

// GenerateDocs builds a Go file that registers parsed doc comments for every
// scanned record type from an init function.
func GenerateDocs(pkgName string, types []scan.TypeDocs) *jen.File {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by recordgen. DO NOT EDIT.")
	f.ImportAlias(pkgImmutable, "immutable")

	f.Func().Id("init").Params().BlockFunc(func(g *jen.Group) {
		for _, t := range types {
			if len(t.Fields) == 0 {
				continue
			}
			g.Qual(pkgImmutable, "RegisterDocs").Call(
				jen.Lit(t.Name),
				jen.Map(jen.String()).Qual(pkgDocstring, "Doc").Values(jen.DictFunc(func(d jen.Dict) {
					for _, fd := range t.Fields {
						d[jen.Lit(fd.Property)] = docValue(docstring.Parse(fd.Doc))
					}
				})),
			)
		}
	})
	return f
}

func docValue(doc docstring.Doc) *jen.Statement {
	return jen.Values(jen.DictFunc(func(d jen.Dict) {
		if doc.Summary != "" {
			d[jen.Id("Summary")] = jen.Lit(doc.Summary)
		}
		if doc.Description != "" {
			d[jen.Id("Description")] = jen.Lit(doc.Description)
		}
		if len(doc.Examples) > 0 {
			d[jen.Id("Examples")] = jen.Index().String().ValuesFunc(func(g *jen.Group) {
				for _, ex := range doc.Examples {
					g.Lit(ex)
				}
			})
		}
	}))
}

// WriteFile renders the generated file to disk, creating parent directories
// when needed.
func WriteFile(f *jen.File, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(`failed to create output directory "%s": %w`, dir, err)
		}
	}
	if err := f.Save(outPath); err != nil {
		return fmt.Errorf(`failed to write generated file "%s": %w`, outPath, err)
	}
	return nil
}
