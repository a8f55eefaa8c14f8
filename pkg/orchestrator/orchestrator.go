// Package orchestrator coordinates the full pipeline from a Go source file
// carrying newtype directives to a formatted generated file: scan, tokenize,
// parse, validate, emit. It applies sensible defaults while remaining open
// to dependency injection for advanced callers.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-newtype/internal/parser"
	"github.com/goliatone/go-newtype/internal/source"
	"github.com/goliatone/go-newtype/pkg/generate"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) {
		o.config = cfg.withDefaults()
	}
}

// WithGenerator injects a custom code generator.
func WithGenerator(gen *generate.Generator) Option {
	return func(o *Orchestrator) {
		if gen != nil {
			o.generator = gen
		}
	}
}

// Orchestrator drives generation for one or more requests.
type Orchestrator struct {
	config        Config
	generator     *generate.Generator
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{config: DefaultConfig()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.generator == nil {
		gen, err := generate.New()
		if err != nil {
			o.initialiseErr = err
		}
		o.generator = gen
	}
	return o
}

// Request describes one generation run.
type Request struct {
	// Source is the path of the Go file to scan for newtype directives.
	Source string
	// Output is the path to write; derived from Source and the configured
	// suffix when empty.
	Output string
	// Types restricts generation to the named targets. Empty means all.
	Types []string
	// Package overrides the output package name.
	Package string
}

// Generate runs the pipeline and returns the generated file contents.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if o.initialiseErr != nil {
		return nil, fmt.Errorf("orchestrator: initialise: %w", o.initialiseErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Source) == "" {
		return nil, fmt.Errorf("orchestrator: request source is required")
	}

	scanned, err := source.ScanFile(req.Source)
	if err != nil {
		return nil, err
	}
	targets := filterTargets(scanned.Targets, req.Types)
	if len(targets) == 0 {
		return nil, fmt.Errorf("orchestrator: no newtype targets found in %s", req.Source)
	}

	file := generate.File{
		Package: outputPackage(req, o.config, scanned.Package),
		Header:  o.config.Header,
	}
	for _, target := range targets {
		built, err := buildTarget(target)
		if err != nil {
			return nil, err
		}
		file.Targets = append(file.Targets, built)
	}

	return o.generator.Render(file)
}

// GenerateFile runs the pipeline and writes the output file, returning its
// path.
func (o *Orchestrator) GenerateFile(ctx context.Context, req Request) (string, error) {
	out, err := o.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	path := req.Output
	if path == "" {
		path = strings.TrimSuffix(req.Source, ".go") + o.config.OutputSuffix
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("orchestrator: write %s: %w", path, err)
	}
	return path, nil
}

// buildTarget dispatches the directive tokens to the rule parser family
// matching the classified inner kind. Parse and validation errors are
// located back into the source file before they surface.
func buildTarget(target source.Target) (generate.Target, error) {
	out := generate.Target{Descriptor: target.Descriptor}
	switch {
	case target.Descriptor.Inner.IsText():
		text, err := parser.ParseTextAttributes(target.Directive, target.Tokens)
		if err != nil {
			return generate.Target{}, target.Locate(err)
		}
		out.Text = &text
	case target.Descriptor.Inner.IsNumeric():
		numeric, err := parser.ParseNumericAttributes(target.Directive, target.Tokens)
		if err != nil {
			return generate.Target{}, target.Locate(err)
		}
		out.Numeric = &numeric
	default:
		return generate.Target{}, fmt.Errorf("orchestrator: %s: unsupported inner kind", target.Descriptor.Name)
	}
	return out, nil
}

func filterTargets(targets []source.Target, names []string) []source.Target {
	if len(names) == 0 {
		return targets
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = true
	}
	var out []source.Target
	for _, target := range targets {
		if wanted[target.Descriptor.Name] {
			out = append(out, target)
		}
	}
	return out
}

func outputPackage(req Request, cfg Config, scanned string) string {
	if req.Package != "" {
		return req.Package
	}
	if cfg.Package != "" {
		return cfg.Package
	}
	return scanned
}
