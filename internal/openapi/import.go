// Package openapi derives newtype declaration stubs from an OpenAPI
// document: string component schemas become text newtypes with length rules
// and integer schemas become numeric newtypes with bound rules. The output
// is a Go source file of directive-annotated wrapper structs ready for the
// generator.
package openapi

import (
	"context"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
)

// Declaration is one derived newtype stub.
type Declaration struct {
	// Name is the exported wrapper type name.
	Name string
	// Inner is the Go spelling of the wrapped type.
	Inner string
	// Directive is the rule payload, without the comment prefix.
	Directive string
}

// FromFile loads an OpenAPI document from disk and derives declarations.
func FromFile(ctx context.Context, path string) ([]Declaration, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return declarations(spec)
}

// FromData derives declarations from raw document bytes.
func FromData(ctx context.Context, raw []byte) ([]Declaration, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return declarations(spec)
}

func declarations(spec *openapi3.T) ([]Declaration, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("openapi: document has no component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Declaration
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		decl, ok := fromSchema(name, ref.Value)
		if !ok {
			continue
		}
		out = append(out, decl)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("openapi: no string or integer schemas to derive from")
	}
	return out, nil
}

// fromSchema maps one component schema to a declaration. Schemas of other
// types are skipped rather than rejected: the import is additive.
func fromSchema(name string, schema *openapi3.Schema) (Declaration, bool) {
	switch firstType(schema.Type) {
	case "string":
		return Declaration{
			Name:      exportName(name),
			Inner:     "string",
			Directive: stringDirective(schema),
		}, true
	case "integer":
		return Declaration{
			Name:      exportName(name),
			Inner:     integerInner(schema.Format),
			Directive: integerDirective(schema),
		}, true
	default:
		return Declaration{}, false
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringDirective(schema *openapi3.Schema) string {
	var rules []string
	if schema.MaxLength != nil {
		rules = append(rules, fmt.Sprintf("max_len = %d", *schema.MaxLength))
	}
	switch {
	case schema.MinLength == 1:
		rules = append(rules, "present")
	case schema.MinLength > 1:
		rules = append(rules, fmt.Sprintf("min_len = %d", schema.MinLength))
	}
	if len(rules) == 0 {
		return ""
	}
	return "validate(" + strings.Join(rules, ", ") + ")"
}

func integerInner(format string) string {
	switch format {
	case "int32":
		return "int32"
	case "int64":
		return "int64"
	default:
		return "int"
	}
}

func integerDirective(schema *openapi3.Schema) string {
	var rules []string
	if schema.Max != nil {
		rules = append(rules, fmt.Sprintf("max = %d", int(*schema.Max)))
	}
	if schema.Min != nil {
		rules = append(rules, fmt.Sprintf("min = %d", int(*schema.Min)))
	}
	if len(rules) == 0 {
		return ""
	}
	return "validate(" + strings.Join(rules, ", ") + ")"
}

// exportName turns a schema name into an exported Go identifier, dropping
// anything that cannot appear in one.
func exportName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || (b.Len() > 0 && unicode.IsDigit(r)):
			if upperNext {
				r = unicode.ToUpper(r)
				upperNext = false
			}
			b.WriteRune(r)
		default:
			upperNext = true
		}
	}
	return b.String()
}

// RenderStubs produces a formatted Go source file declaring the derived
// wrapper types with their directives attached.
func RenderStubs(pkg string, decls []Declaration) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("openapi: output package name is required")
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("openapi: no declarations to render")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	for _, decl := range decls {
		if decl.Directive != "" {
			fmt.Fprintf(&b, "//newtype: %s\n", decl.Directive)
		} else {
			b.WriteString("//newtype:\n")
		}
		fmt.Fprintf(&b, "type %s struct{ %s }\n\n", decl.Name, decl.Inner)
	}

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("openapi: format stubs: %w", err)
	}
	return formatted, nil
}
