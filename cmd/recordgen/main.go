package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/coudenysj/json-immutable-objects/internal/config"
	"github.com/coudenysj/json-immutable-objects/internal/gen"
	"github.com/coudenysj/json-immutable-objects/internal/scan"
)

func main() {
	var pkgDir string
	var out string
	var configPath string
	flag.StringVar(&pkgDir, "pkgdir", "", "package directory holding record types")
	flag.StringVar(&out, "o", "", "output filename (default <pkgdir>/zz_generated_docs.go)")
	flag.StringVar(&configPath, "config", "", "optional recordgen.yaml path; flags override its values")
	flag.Parse()

	if configPath != "" {
		cfg, err := config.Read(configPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		if pkgDir == "" {
			pkgDir = cfg.Package.Path
		}
		if out == "" {
			out = cfg.Output.Path
		}
	}
	if pkgDir == "" {
		log.Fatal("recordgen: -pkgdir (or a config file) is required")
	}
	if out == "" {
		out = filepath.Join(pkgDir, "zz_generated_docs.go")
	}

	pkgName, types, err := scan.Package(pkgDir)
	if err != nil {
		log.Fatal(err.Error())
	}
	if pkgName == "" {
		log.Fatalf(`recordgen: no Go package found in "%s"`, pkgDir)
	}

	f := gen.GenerateDocs(pkgName, types)
	if err := gen.WriteFile(f, out); err != nil {
		log.Fatal(err.Error())
	}
}
