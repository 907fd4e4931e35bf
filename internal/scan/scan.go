// Package scan inventories the types of a Go package for dummygen.
//
// Go cannot enumerate the types of a package at run time, so subtype lookup
// depends on the types being registered. scan loads a package with
// golang.org/x/tools/go/packages and reports everything a registration file
// needs: concrete named types, sealed interfaces with their variants, enum
// constants in declaration order and creator functions with their parameter
// names.
package scan

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// SkipDirective in the doc comment of a type or function excludes it from
// the inventory.
const SkipDirective = "//dummy:skip"

// Package is the inventory of one Go package.
type Package struct {
	Name  string // package name, e.g. "shapes"
	Path  string // import path
	Dir   string // directory of the package's files
	Types []Type

	Enums    []Enum
	Sealed   []Sealed
	Creators []Creator
}

// Type is a concrete named type declared in the package.
type Type struct {
	Name     string
	Exported bool
}

// Enum is a named basic type together with its typed constants.
type Enum struct {
	Type   string
	Values []string // constant names in declaration order
}

// Sealed is an interface with an unexported method. Only the declaring
// package can implement it, so its variants are known.
type Sealed struct {
	Interface string
	Variants  []Variant
}

// Variant is a concrete implementation of a sealed interface.
type Variant struct {
	Type    string
	Pointer bool // only *Type implements the interface
}

// Expr returns the Go type expression of the variant.
func (v Variant) Expr() string {
	if v.Pointer {
		return "*" + v.Type
	}
	return v.Type
}

// CreatorKind mirrors typegraph.CallableKind at the source level.
type CreatorKind int

const (
	Constructor CreatorKind = iota
	Factory
)

func (k CreatorKind) String() string {
	if k == Factory {
		return "factory"
	}
	return "constructor"
}

// Creator is a package-level function that produces one of the package's
// types: New<T> (a constructor) or any other New... function returning T,
// *T, (T, error) or (*T, error) (a factory).
type Creator struct {
	Func   string
	Kind   CreatorKind
	Result string // name of the produced type
	Params []string
}

// Load scans the packages matching patterns, resolved relative to dir.
func Load(dir string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedSyntax,
		Dir: dir,
		Env: append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var errs []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages match %s", strings.Join(patterns, " "))
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, inspect(pkg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// inspect builds the inventory of a loaded package.
func inspect(pkg *packages.Package) *Package {
	p := &Package{Name: pkg.Name, Path: pkg.PkgPath}
	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	skipped := skippedDecls(pkg.Syntax)

	scope := pkg.Types.Scope()
	var (
		named   []*types.TypeName
		ifaces  []*types.TypeName
		consts  []*types.Const
		funcs   []*types.Func
		enumSet = make(map[*types.TypeName]bool)
	)
	for _, name := range scope.Names() {
		if skipped[name] {
			continue
		}
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if obj.IsAlias() {
				continue
			}
			t, ok := obj.Type().(*types.Named)
			if !ok || t.TypeParams().Len() > 0 {
				continue
			}
			if types.IsInterface(t) {
				ifaces = append(ifaces, obj)
			} else {
				named = append(named, obj)
			}
		case *types.Const:
			consts = append(consts, obj)
		case *types.Func:
			funcs = append(funcs, obj)
		}
	}

	p.Enums = enums(pkg.Fset, consts, skipped, enumSet)
	for _, obj := range named {
		if enumSet[obj] {
			continue
		}
		p.Types = append(p.Types, Type{Name: obj.Name(), Exported: obj.Exported()})
	}
	declared := append([]*types.TypeName(nil), named...)
	sortByPos(pkg.Fset, declared)
	for _, obj := range ifaces {
		if s, ok := sealed(obj, declared); ok {
			p.Sealed = append(p.Sealed, s)
		}
	}
	for _, fn := range funcs {
		if c, ok := creator(pkg.Types, fn, skipped); ok {
			p.Creators = append(p.Creators, c)
		}
	}
	return p
}

// enums groups typed constants by their named type. Every type that gets
// constants is recorded in seen.
func enums(fset *token.FileSet, consts []*types.Const, skipped map[string]bool, seen map[*types.TypeName]bool) []Enum {
	sortByPos(fset, consts)

	var (
		order  []*types.TypeName
		values = make(map[*types.TypeName][]string)
	)
	for _, c := range consts {
		t, ok := c.Type().(*types.Named)
		if !ok || t.Obj().Pkg() != c.Pkg() || c.Name() == "_" || skipped[t.Obj().Name()] {
			continue
		}
		obj := t.Obj()
		if _, ok := values[obj]; !ok {
			order = append(order, obj)
		}
		values[obj] = append(values[obj], c.Name())
	}

	out := make([]Enum, 0, len(order))
	for _, obj := range order {
		seen[obj] = true
		out = append(out, Enum{Type: obj.Name(), Values: values[obj]})
	}
	return out
}

// sortByPos orders objects by source position.
func sortByPos[T types.Object](fset *token.FileSet, objs []T) {
	sort.SliceStable(objs, func(i, j int) bool {
		pi, pj := fset.Position(objs[i].Pos()), fset.Position(objs[j].Pos())
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		return pi.Offset < pj.Offset
	})
}

// sealed reports the variants of iface, in declaration order, when it has an
// unexported method.
func sealed(obj *types.TypeName, candidates []*types.TypeName) (Sealed, bool) {
	iface := obj.Type().Underlying().(*types.Interface)
	closed := false
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			closed = true
			break
		}
	}
	if !closed {
		return Sealed{}, false
	}

	s := Sealed{Interface: obj.Name()}
	for _, c := range candidates {
		t := c.Type()
		switch {
		case types.Implements(t, iface):
			s.Variants = append(s.Variants, Variant{Type: c.Name()})
		case types.Implements(types.NewPointer(t), iface):
			s.Variants = append(s.Variants, Variant{Type: c.Name(), Pointer: true})
		}
	}
	if len(s.Variants) == 0 {
		return Sealed{}, false
	}
	return s, true
}

// creator reports fn when it is a creator of one of the package's types.
func creator(pkg *types.Package, fn *types.Func, skipped map[string]bool) (Creator, bool) {
	sig := fn.Type().(*types.Signature)
	if sig.Recv() != nil || sig.TypeParams().Len() > 0 {
		return Creator{}, false
	}
	if !strings.HasPrefix(fn.Name(), "New") && !strings.HasPrefix(fn.Name(), "new") {
		return Creator{}, false
	}

	results := sig.Results()
	switch {
	case results.Len() == 1:
	case results.Len() == 2 && isErrorType(results.At(1).Type()):
	default:
		return Creator{}, false
	}
	result, ok := ownedType(pkg, results.At(0).Type())
	if !ok {
		return Creator{}, false
	}

	if skipped[result.Obj().Name()] {
		return Creator{}, false
	}
	c := Creator{Func: fn.Name(), Kind: Factory, Result: result.Obj().Name()}
	if strings.EqualFold(fn.Name(), "new"+result.Obj().Name()) {
		c.Kind = Constructor
	}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		name := params.At(i).Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("p%d", i)
		}
		c.Params = append(c.Params, name)
	}
	return c, true
}

// ownedType unwraps one pointer and returns the named, non-interface,
// non-generic type declared in pkg.
func ownedType(pkg *types.Package, t types.Type) (*types.Named, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() != pkg || named.TypeParams().Len() > 0 || types.IsInterface(named) {
		return nil, false
	}
	return named, true
}

// isErrorType checks if a type is the error interface.
func isErrorType(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// skippedDecls returns the names of declarations marked with SkipDirective.
func skippedDecls(files []*ast.File) map[string]bool {
	out := make(map[string]bool)
	for _, f := range files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && hasSkip(d.Doc) {
					out[d.Name.Name] = true
				}
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					if hasSkip(ts.Doc) || (len(d.Specs) == 1 && hasSkip(d.Doc)) {
						out[ts.Name.Name] = true
					}
				}
			}
		}
	}
	return out
}

func hasSkip(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == SkipDirective {
			return true
		}
	}
	return false
}
