// Package codegen renders the registration file dummygen writes into a
// scanned package.
package codegen

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/funvibe/dummy/internal/scan"
)

// FileName is the name of the generated file.
const FileName = "zz_dummy_register.go"

// DefaultAPIPath is the import path of the registration API.
const DefaultAPIPath = "github.com/funvibe/dummy/pkg/dummy"

// Generator produces registration files.
type Generator struct {
	// apiPath is the Go import path of the package providing Register,
	// RegisterEnum, ... (overridable for forks and vendored copies).
	apiPath string
}

// New creates a Generator importing the registration API from apiPath.
// An empty path selects DefaultAPIPath.
func New(apiPath string) *Generator {
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	return &Generator{apiPath: apiPath}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the base name of the file within the package directory.
	Filename string

	// Content is the formatted Go source code.
	Content []byte
}

type creatorEntry struct {
	Func     string
	Register string
	Names    string
}

type enumEntry struct {
	Values string
}

type sealedEntry struct {
	Interface string
	Variants  string
}

// Generate renders the registration file for pkg.
func (g *Generator) Generate(pkg *scan.Package) (GeneratedFile, error) {
	if pkg.Name == "" {
		return GeneratedFile{}, fmt.Errorf("package %s has no name", pkg.Path)
	}

	data := struct {
		Package  string
		Path     string
		APIPath  string
		Types    []scan.Type
		Enums    []enumEntry
		Creators []creatorEntry
		Sealed   []sealedEntry
	}{
		Package: pkg.Name,
		Path:    pkg.Path,
		APIPath: g.apiPath,
		Types:   pkg.Types,
	}
	for _, e := range pkg.Enums {
		data.Enums = append(data.Enums, enumEntry{Values: strings.Join(e.Values, ", ")})
	}
	for _, c := range pkg.Creators {
		register := "RegisterConstructor"
		if c.Kind == scan.Factory {
			register = "RegisterFactory"
		}
		data.Creators = append(data.Creators, creatorEntry{
			Func:     c.Func,
			Register: register,
			Names:    quoteAll(c.Params),
		})
	}
	for _, s := range pkg.Sealed {
		variants := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			variants[i] = "reflect.TypeFor[" + v.Expr() + "]()"
		}
		data.Sealed = append(data.Sealed, sealedEntry{
			Interface: s.Interface,
			Variants:  strings.Join(variants, ", "),
		})
	}

	tmpl, err := template.New("register").Parse(registerTemplate)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("parsing template: %w", err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template: %w", err)
	}
	src, err := format.Source([]byte(buf.String()))
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("formatting %s: %w", FileName, err)
	}
	return GeneratedFile{Filename: FileName, Content: src}, nil
}

// quoteAll renders names as a leading-comma list of Go string literals.
func quoteAll(names []string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString(", ")
		b.WriteString(strconv.Quote(n))
	}
	return b.String()
}

const registerTemplate = `// Code generated by dummygen. DO NOT EDIT.

package {{.Package}}

import (
{{- if .Sealed}}
	"reflect"

{{end}}
	dummy "{{.APIPath}}"
)

// Registers the types of {{.Path}} so that dummy can construct them and
// find them as implementations of interfaces.
func init() {
	for _, err := range []error{
{{- range .Types}}
		dummy.Register[{{.Name}}](),
{{- end}}
{{- range .Enums}}
		dummy.RegisterEnum({{.Values}}),
{{- end}}
{{- range .Creators}}
		dummy.{{.Register}}({{.Func}}{{.Names}}),
{{- end}}
{{- range .Sealed}}
		dummy.RegisterSealed[{{.Interface}}]({{.Variants}}),
{{- end}}
	} {
		if err != nil {
			panic("dummygen: " + err.Error())
		}
	}
}
`
