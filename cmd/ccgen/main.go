// Command ccgen is a thin demo driver over the ccgen core: it reads a
// small JSON fixture describing a translation unit's globals and
// function signatures, plus an optional YAML config overlay, and writes
// the generated C/C++ text to stdout or a file.
//
// Grounded on the teacher's cmd/langlang/main.go: a flag-parsed args
// struct built once in readArgs(), no cobra/viper, fatal-on-missing-
// required-flag error handling via the standard log package.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	ccgen "github.com/corecg/ccgen"
)

const defaultWritePermission = 0644 // -rw-r--r--

type args struct {
	unitPath   *string
	configPath *string
	outputPath *string
	cppMode    *bool
}

func readArgs() *args {
	a := &args{
		unitPath:   flag.String("unit", "", "Path to the translation-unit JSON fixture"),
		configPath: flag.String("config", "", "Path to a YAML config overlay"),
		outputPath: flag.String("output-path", "/dev/stdout", "Path to the output file"),
		cppMode:    flag.Bool("cpp", false, "Emit C++ instead of C"),
	}
	flag.Parse()
	return a
}

// fixtureUnit is the demo CLI's own small JSON shape for a translation
// unit's globals and function signatures. It is deliberately narrower
// than the full parser-level Node contract — a real parser hands
// GenerateUnit a TranslationUnit built from source text; this fixture
// format exists only so the CLI has something to decode without
// shipping a parser of its own.
type fixtureUnit struct {
	Globals []struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Const       bool   `json:"const"`
		Initializer string `json:"initializer"`
	} `json:"globals"`
	Functions []struct {
		Name       string `json:"name"`
		ReturnType string `json:"returnType"`
		IsVoid     bool   `json:"isVoid"`
		Params     []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"params"`
	} `json:"functions"`
}

func loadFixture(path string) (*fixtureUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixtureUnit
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func buildUnit(f *fixtureUnit) ccgen.TranslationUnit {
	var globals []ccgen.GlobalDeclaration
	for _, g := range f.Globals {
		var initializer ccgen.Expression
		if g.Initializer != "" {
			initializer = ccgen.NewIntLiteralExpr(ccgen.Span{}, g.Initializer)
		}
		globals = append(globals, ccgen.GlobalDeclaration{
			Name:        g.Name,
			Type:        ccgen.TypeContext{Name: g.Type},
			IsConst:     g.Const,
			Initializer: initializer,
		})
	}

	var functions []ccgen.FunctionDeclaration
	for _, fn := range f.Functions {
		var params []ccgen.Parameter
		for _, p := range fn.Params {
			params = append(params, ccgen.Parameter{
				Name: p.Name,
				Type: ccgen.TypeContext{Name: p.Type},
			})
		}
		functions = append(functions, ccgen.FunctionDeclaration{
			Name:       fn.Name,
			ReturnType: ccgen.TypeContext{Name: fn.ReturnType},
			IsVoid:     fn.IsVoid,
			Params:     ccgen.ParameterList{Params: params},
		})
	}

	return ccgen.TranslationUnit{Globals: globals, Functions: functions}
}

func main() {
	a := readArgs()

	if *a.unitPath == "" {
		log.Fatal("translation-unit fixture not informed (-unit)")
	}

	fixture, err := loadFixture(*a.unitPath)
	if err != nil {
		log.Fatalf("reading unit fixture: %s", err)
	}

	cfg := ccgen.NewConfig()
	if *a.configPath != "" {
		cfg, err = ccgen.LoadConfigYAML(*a.configPath)
		if err != nil {
			log.Fatalf("reading config: %s", err)
		}
	}
	cfg.CppMode = cfg.CppMode || *a.cppMode

	symbols := ccgen.NewScopeTables()
	dispatcher := ccgen.NewDispatcher(cfg, symbols)

	out, err := dispatcher.GenerateUnit(buildUnit(fixture))
	if err != nil {
		if diag, ok := err.(*ccgen.Diagnostic); ok {
			log.Fatalf("generating unit: %s", diag.Colorize())
		}
		log.Fatalf("generating unit: %s", err)
	}

	if err := os.WriteFile(*a.outputPath, []byte(out), defaultWritePermission); err != nil {
		log.Fatalf("writing output: %s", err)
	}
}
