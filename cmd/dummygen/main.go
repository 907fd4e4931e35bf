// Command dummygen writes a registration file into a Go package so that
// dummy can find the package's types as implementations of its interfaces
// and construct them through their New... functions.
//
// Usage:
//
//	dummygen [-o file] [-api path] [-v] <package pattern>
//
// Typically invoked from a go:generate directive in the package itself:
//
//	//go:generate go run github.com/funvibe/dummy/cmd/dummygen .
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/funvibe/dummy/internal/codegen"
	"github.com/funvibe/dummy/internal/scan"
	"github.com/funvibe/dummy/internal/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dummygen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output file (default: "+codegen.FileName+" in the package directory, - for stdout)")
	api := fs.String("api", codegen.DefaultAPIPath, "import path of the registration API")
	verbose := fs.Bool("v", false, "trace what is registered")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dummygen [-o file] [-api path] [-v] <package pattern>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	log := trace.New(stderr, *verbose)

	pkgs, err := scan.Load(".", fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "dummygen: %v\n", err)
		return 1
	}
	if len(pkgs) > 1 && *out != "" {
		fmt.Fprintf(stderr, "dummygen: -o needs a pattern matching one package, %d matched\n", len(pkgs))
		return 2
	}

	gen := codegen.New(*api)
	for _, pkg := range pkgs {
		log.Printf("%s: %d types, %d enums, %d sealed interfaces, %d creators",
			pkg.Path, len(pkg.Types), len(pkg.Enums), len(pkg.Sealed), len(pkg.Creators))
		for _, c := range pkg.Creators {
			log.Printf("%s: %s %s(%v) -> %s", pkg.Path, c.Kind, c.Func, c.Params, c.Result)
		}

		file, err := gen.Generate(pkg)
		if err != nil {
			fmt.Fprintf(stderr, "dummygen: %s: %v\n", pkg.Path, err)
			return 1
		}

		target := *out
		switch target {
		case "-":
			if _, err := stdout.Write(file.Content); err != nil {
				fmt.Fprintf(stderr, "dummygen: %v\n", err)
				return 1
			}
			continue
		case "":
			target = filepath.Join(pkg.Dir, file.Filename)
		}
		if err := os.WriteFile(target, file.Content, 0o644); err != nil {
			fmt.Fprintf(stderr, "dummygen: %v\n", err)
			return 1
		}
		log.Printf("wrote %s", target)
	}
	return 0
}
