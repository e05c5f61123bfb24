// Package gen generates lens accessors and Same methods for data structs.
//
// For every struct in a package it emits one lens.Field variable per
// exported field, named <Type><Field>, plus a Same method delegating to
// data.SameStruct for structs that do not already define one. Fields
// tagged `data:"ignore"` get no lens; the tag also excludes them from the
// generated comparison, since data.SameStruct honors it at runtime.
package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	lensImport = "github.com/go-quill/quill/pkg/lens"
	dataImport = "github.com/go-quill/quill/pkg/data"
)

// Field is one exported struct field eligible for a lens.
type Field struct {
	Name string
	// Type is the field's type expression as written in the source.
	Type string
}

// Struct is one struct type found in the scanned package.
type Struct struct {
	Name   string
	Fields []Field
	// HasSame is true when the package already defines a Same method for
	// the type; the generator then emits only the lenses.
	HasSame bool
}

// Package is the scan result the generator renders from.
type Package struct {
	Name string
	// SourcePath names where the structs came from, for the file header.
	SourcePath string
	Structs    []Struct
}

// ScanDir parses every non-test Go file in dir and collects its structs.
// Previously generated files are skipped so regeneration is idempotent.
func ScanDir(dir string) (*Package, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return !strings.HasSuffix(name, "_test.go") &&
			!strings.HasSuffix(name, "_lens.go")
	}, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dir, err)
	}

	var names []string
	for name := range pkgs {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no Go package in %s", dir)
	}
	if len(names) > 1 {
		sort.Strings(names)
		return nil, fmt.Errorf("multiple packages in %s: %s", dir, strings.Join(names, ", "))
	}

	pkg := &Package{Name: names[0], SourcePath: filepath.Clean(dir)}
	sameMethods := map[string]bool{}
	for _, file := range pkgs[names[0]].Files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if recv := receiverName(d); recv != "" && d.Name.Name == "Same" {
					sameMethods[recv] = true
				}
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok || !ts.Name.IsExported() {
						continue
					}
					st, ok := ts.Type.(*ast.StructType)
					if !ok {
						continue
					}
					pkg.Structs = append(pkg.Structs, scanStruct(fset, ts.Name.Name, st))
				}
			}
		}
	}
	for i := range pkg.Structs {
		pkg.Structs[i].HasSame = sameMethods[pkg.Structs[i].Name]
	}
	sort.Slice(pkg.Structs, func(i, j int) bool {
		return pkg.Structs[i].Name < pkg.Structs[j].Name
	})
	return pkg, nil
}

func receiverName(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) != 1 {
		return ""
	}
	expr := d.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func scanStruct(fset *token.FileSet, name string, st *ast.StructType) Struct {
	s := Struct{Name: name}
	for _, field := range st.Fields.List {
		if ignored(field.Tag) {
			continue
		}
		typeText := exprText(fset, field.Type)
		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			s.Fields = append(s.Fields, Field{Name: ident.Name, Type: typeText})
		}
	}
	return s
}

func ignored(tag *ast.BasicLit) bool {
	if tag == nil {
		return false
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return false
	}
	value := reflect.StructTag(raw).Get("data")
	return value == "ignore" || strings.HasPrefix(value, "ignore,")
}

func exprText(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "any"
	}
	return buf.String()
}

// Filter narrows the package to the named types. An unknown name is an
// error; an empty list keeps everything.
func Filter(pkg *Package, types []string) error {
	if len(types) == 0 {
		return nil
	}
	byName := map[string]Struct{}
	for _, s := range pkg.Structs {
		byName[s.Name] = s
	}
	var kept []Struct
	for _, name := range types {
		s, ok := byName[name]
		if !ok {
			return fmt.Errorf("type %s: no such struct in package %s", name, pkg.Name)
		}
		kept = append(kept, s)
	}
	pkg.Structs = kept
	return nil
}

// Render produces the generated file as gofmt'ed source.
func Render(pkg *Package) ([]byte, error) {
	var needsSame bool
	var withFields int
	for _, s := range pkg.Structs {
		if !s.HasSame {
			needsSame = true
		}
		if len(s.Fields) > 0 {
			withFields++
		}
	}
	if withFields == 0 && !needsSame {
		return nil, fmt.Errorf("package %s: nothing to generate", pkg.Name)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by lensgen from %s; DO NOT EDIT.\n\n", pkg.SourcePath)
	fmt.Fprintf(&buf, "package %s\n\n", pkg.Name)

	switch {
	case withFields > 0 && needsSame:
		fmt.Fprintf(&buf, "import (\n\t%q\n\t%q\n)\n\n", dataImport, lensImport)
	case withFields > 0:
		fmt.Fprintf(&buf, "import %q\n\n", lensImport)
	default:
		fmt.Fprintf(&buf, "import %q\n\n", dataImport)
	}

	for _, s := range pkg.Structs {
		if len(s.Fields) > 0 {
			fmt.Fprintf(&buf, "// Lenses onto the fields of %s.\nvar (\n", s.Name)
			for _, f := range s.Fields {
				fmt.Fprintf(&buf, "\t%s%s = lens.Field(func(d *%s) *%s { return &d.%s })\n",
					s.Name, f.Name, s.Name, f.Type, f.Name)
			}
			fmt.Fprintf(&buf, ")\n\n")
		}
		if !s.HasSame {
			fmt.Fprintf(&buf, "// Same reports whether two %s values are equivalent field by field.\n", s.Name)
			fmt.Fprintf(&buf, "func (d %s) Same(other %s) bool {\n\treturn data.SameStruct(d, other)\n}\n\n", s.Name, s.Name)
		}
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// Generate scans dir, applies the type filter, and renders the file.
func Generate(dir string, types []string) ([]byte, error) {
	pkg, err := ScanDir(dir)
	if err != nil {
		return nil, err
	}
	if err := Filter(pkg, types); err != nil {
		return nil, err
	}
	return Render(pkg)
}
