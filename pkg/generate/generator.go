// Package generate renders validated rule models into Go source. The
// generator precomputes every expression in Go and keeps the template purely
// structural, then pipes the output through go/format so the emitted file is
// canonical gofmt.
package generate

import (
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/goliatone/go-newtype/pkg/model"
)

// DefaultHeader is written at the top of generated files when no override is
// configured. The wording follows the convention the Go toolchain recognises.
const DefaultHeader = "Code generated by newtype-cli. DO NOT EDIT."

const sanitizeImportPath = "github.com/goliatone/go-newtype/pkg/sanitize"

// Target pairs a type descriptor with its validated rule model. Exactly one
// of Text and Numeric is set, matching the descriptor's inner kind.
type Target struct {
	Descriptor model.TypeDescriptor
	Text       *model.TextModel
	Numeric    *model.NumericModel
}

// File describes one output file worth of targets.
type File struct {
	Package string
	Header  string
	Targets []Target
}

// Option configures the Generator.
type Option func(*Generator)

// WithEngine injects a custom template engine.
func WithEngine(engine *Engine) Option {
	return func(g *Generator) {
		if engine != nil {
			g.engine = engine
		}
	}
}

// WithTemplate overrides the name of the top-level output template.
func WithTemplate(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.templateName = name
		}
	}
}

// Generator renders Files into formatted Go source.
type Generator struct {
	engine       *Engine
	templateName string
}

// New constructs a Generator, defaulting to the embedded template bundle.
func New(options ...Option) (*Generator, error) {
	g := &Generator{templateName: "newtype"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.engine == nil {
		engine, err := NewEngine(WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("generate: configure engine: %w", err)
		}
		g.engine = engine
	}
	return g, nil
}

// Render produces the formatted Go source for file.
func (g *Generator) Render(file File) ([]byte, error) {
	if file.Package == "" {
		return nil, fmt.Errorf("generate: output package name is required")
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("generate: no targets to render")
	}

	data, err := buildContext(file)
	if err != nil {
		return nil, err
	}
	rendered, err := g.engine.RenderTemplate(g.templateName, data)
	if err != nil {
		return nil, err
	}
	formatted, err := format.Source([]byte(rendered))
	if err != nil {
		return nil, fmt.Errorf("generate: format output: %w", err)
	}
	return formatted, nil
}

func buildContext(file File) (map[string]any, error) {
	header := file.Header
	if header == "" {
		header = DefaultHeader
	}

	imports := map[string]bool{}
	targets := make([]map[string]any, 0, len(file.Targets))
	for _, target := range file.Targets {
		ctx, err := targetContext(target, imports)
		if err != nil {
			return nil, err
		}
		targets = append(targets, ctx)
	}

	paths := make([]string, 0, len(imports))
	for path := range imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return map[string]any{
		"header":  header,
		"package": file.Package,
		"imports": paths,
		"targets": targets,
	}, nil
}

func targetContext(target Target, imports map[string]bool) (map[string]any, error) {
	desc := target.Descriptor
	switch {
	case desc.Inner.IsText():
		if target.Text == nil {
			return nil, fmt.Errorf("generate: %s: missing text rule model", desc.Name)
		}
		return textContext(desc, *target.Text, imports), nil
	case desc.Inner.IsNumeric():
		if target.Numeric == nil {
			return nil, fmt.Errorf("generate: %s: missing numeric rule model", desc.Name)
		}
		return numericContext(desc, *target.Numeric, imports), nil
	default:
		return nil, fmt.Errorf("generate: %s: unsupported inner kind", desc.Name)
	}
}

func textContext(desc model.TypeDescriptor, m model.TextModel, imports map[string]bool) map[string]any {
	steps := make([]string, 0, len(m.Sanitizers))
	for _, s := range m.Sanitizers {
		switch s.Item.Kind {
		case model.SanitizerTrim:
			imports[sanitizeImportPath] = true
			steps = append(steps, "sanitize.Trim(value)")
		case model.SanitizerLowercase:
			imports[sanitizeImportPath] = true
			steps = append(steps, "sanitize.Lower(value)")
		case model.SanitizerUppercase:
			imports[sanitizeImportPath] = true
			steps = append(steps, "sanitize.Upper(value)")
		case model.SanitizerCustom:
			if strings.Contains(s.Item.Custom, "sanitize.") {
				imports[sanitizeImportPath] = true
			}
			steps = append(steps, s.Item.Custom+"(value)")
		}
	}

	var errvars, checks []map[string]any
	for _, v := range m.Validators {
		switch v.Item.Kind {
		case model.ValidatorMaxLen:
			errvars = append(errvars, errVar(desc.Name, "TooLong",
				fmt.Sprintf("must be at most %d characters long", v.Item.Value),
				"the sanitized value exceeds the declared maximum length"))
			checks = append(checks, check(
				fmt.Sprintf("len(value) > %d", v.Item.Value),
				errName(desc.Name, "TooLong")))
		case model.ValidatorMinLen:
			errvars = append(errvars, errVar(desc.Name, "TooShort",
				fmt.Sprintf("must be at least %d characters long", v.Item.Value),
				"the sanitized value is shorter than the declared minimum length"))
			checks = append(checks, check(
				fmt.Sprintf("len(value) < %d", v.Item.Value),
				errName(desc.Name, "TooShort")))
		case model.ValidatorPresent:
			errvars = append(errvars, errVar(desc.Name, "Empty",
				"must not be empty",
				"the sanitized value is empty"))
			checks = append(checks, check(`value == ""`, errName(desc.Name, "Empty")))
		}
	}
	if m.Fallible() {
		imports["errors"] = true
	}

	return map[string]any{
		"name":     desc.Name,
		"inner":    desc.Inner.GoType(),
		"text":     true,
		"fallible": m.Fallible(),
		"steps":    steps,
		"errvars":  errvars,
		"checks":   checks,
	}
}

func numericContext(desc model.TypeDescriptor, m model.NumericModel, imports map[string]bool) map[string]any {
	steps := make([]string, 0, len(m.Sanitizers))
	for _, s := range m.Sanitizers {
		if strings.Contains(s.Item.Custom, "sanitize.") {
			imports[sanitizeImportPath] = true
		}
		steps = append(steps, s.Item.Custom+"(value)")
	}

	var errvars, checks []map[string]any
	for _, v := range m.Validators {
		switch v.Item.Kind {
		case model.ValidatorMax:
			errvars = append(errvars, errVar(desc.Name, "TooBig",
				fmt.Sprintf("must be at most %d", v.Item.Value),
				"the value exceeds the declared maximum"))
			checks = append(checks, check(
				fmt.Sprintf("value > %d", v.Item.Value),
				errName(desc.Name, "TooBig")))
		case model.ValidatorMin:
			errvars = append(errvars, errVar(desc.Name, "TooSmall",
				fmt.Sprintf("must be at least %d", v.Item.Value),
				"the value is below the declared minimum"))
			checks = append(checks, check(
				fmt.Sprintf("value < %d", v.Item.Value),
				errName(desc.Name, "TooSmall")))
		}
	}
	if m.Fallible() {
		imports["errors"] = true
	}

	return map[string]any{
		"name":     desc.Name,
		"inner":    desc.Inner.GoType(),
		"text":     false,
		"fallible": m.Fallible(),
		"steps":    steps,
		"errvars":  errvars,
		"checks":   checks,
	}
}

func errName(typeName, suffix string) string {
	return "Err" + typeName + suffix
}

func errVar(typeName, suffix, message, reason string) map[string]any {
	return map[string]any{
		"name":   errName(typeName, suffix),
		"text":   strings.ToLower(typeName) + ": " + message,
		"reason": reason,
	}
}

func check(cond, err string) map[string]any {
	return map[string]any{"cond": cond, "err": err}
}
