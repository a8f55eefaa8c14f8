// Package source locates newtype directives in Go source files. It enforces
// the structural contract (a struct with exactly one embedded field of a
// supported primitive), classifies the inner type and hands the directive
// payload to the rule parsers together with a span-to-position mapping so
// diagnostics point into the original file.
package source

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	gotoken "go/token"
	"os"
	"strings"

	"github.com/goliatone/go-newtype/pkg/model"
	"github.com/goliatone/go-newtype/pkg/token"
)

// DirectivePrefix marks a type declaration for generation.
const DirectivePrefix = "//newtype:"

const structuralErrMsg = "newtype can be used only with single-field wrapper structs"

// Target is one type declaration selected for generation: its descriptor,
// the raw directive payload with its tokens, and a converter from payload
// spans to file positions.
type Target struct {
	Descriptor model.TypeDescriptor
	Directive  string
	Tokens     []token.Token

	pos func(token.Span) string
}

// Position renders a payload span as "file:line:col".
func (t Target) Position(span token.Span) string { return t.pos(span) }

// Locate prefixes err with the file position of its span when err is a
// span-attributed token.Error, and returns it unchanged otherwise.
func (t Target) Locate(err error) error {
	var terr *token.Error
	if errors.As(err, &terr) {
		return fmt.Errorf("%s: %w", t.pos(terr.Span), err)
	}
	return err
}

// File is the scan result for one source file.
type File struct {
	Package string
	Targets []Target
}

// ScanFile reads and scans a Go source file for newtype directives.
func ScanFile(path string) (File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	return Scan(path, src)
}

// Scan parses src and collects every type declaration carrying a newtype
// directive. Declarations without a directive are ignored; a directive on an
// unsupported shape is an error.
func Scan(filename string, src []byte) (File, error) {
	fset := gotoken.NewFileSet()
	parsed, err := goparser.ParseFile(fset, filename, src, goparser.ParseComments)
	if err != nil {
		return File{}, fmt.Errorf("source: parse %s: %w", filename, err)
	}

	file := File{Package: parsed.Name.Name}
	for _, decl := range parsed.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != gotoken.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			docs := []*ast.CommentGroup{ts.Doc}
			if len(gen.Specs) == 1 {
				docs = append(docs, gen.Doc)
			}
			directive := findDirective(docs...)
			if directive == nil {
				continue
			}
			target, err := buildTarget(fset, src, ts, directive)
			if err != nil {
				return File{}, err
			}
			file.Targets = append(file.Targets, target)
		}
	}
	return file, nil
}

// findDirective returns the first newtype directive comment from the
// declaration or spec doc group. Grouped type blocks attach docs to the
// spec, standalone declarations to the decl.
func findDirective(groups ...*ast.CommentGroup) *ast.Comment {
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if strings.HasPrefix(comment.Text, DirectivePrefix) {
				return comment
			}
		}
	}
	return nil
}

func buildTarget(fset *gotoken.FileSet, src []byte, ts *ast.TypeSpec, directive *ast.Comment) (Target, error) {
	declPos := fset.Position(ts.Pos())

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return Target{}, fmt.Errorf("%s: %s", declPos, structuralErrMsg)
	}
	fields := st.Fields.List
	if len(fields) != 1 || len(fields[0].Names) != 0 {
		return Target{}, fmt.Errorf("%s: %s", declPos, structuralErrMsg)
	}

	field := fields[0]
	fieldPos := fset.Position(field.Type.Pos())
	ident, ok := field.Type.(*ast.Ident)
	if !ok {
		name := exprText(fset, src, field.Type)
		return Target{}, fmt.Errorf("%s: newtype does not support %q as inner type", fieldPos, name)
	}
	kind, err := model.ClassifyInner(ident.Name)
	if err != nil {
		return Target{}, fmt.Errorf("%s: %w", fieldPos, err)
	}

	payload := strings.TrimPrefix(directive.Text, DirectivePrefix)
	base := directive.Slash + gotoken.Pos(len(DirectivePrefix))
	pos := func(span token.Span) string {
		p := fset.Position(base + gotoken.Pos(span.Start))
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}

	tokens, err := token.Scan(payload)
	if err != nil {
		var terr *token.Error
		if errors.As(err, &terr) {
			return Target{}, fmt.Errorf("%s: %w", pos(terr.Span), err)
		}
		return Target{}, err
	}

	return Target{
		Descriptor: model.TypeDescriptor{Name: ts.Name.Name, Inner: kind},
		Directive:  payload,
		Tokens:     tokens,
		pos:        pos,
	}, nil
}

func exprText(fset *gotoken.FileSet, src []byte, expr ast.Expr) string {
	start := fset.Position(expr.Pos()).Offset
	end := fset.Position(expr.End()).Offset
	if start < 0 || end > len(src) || start >= end {
		return "?"
	}
	return string(src[start:end])
}
