// Package newtype generates wrapper types with sanitization and validation
// logic from //newtype: directives attached to single-field wrapper structs.
// The root package re-exports the orchestrator entry points so most callers
// need a single import.
package newtype

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-newtype/internal/openapi"
	"github.com/goliatone/go-newtype/pkg/generate"
	"github.com/goliatone/go-newtype/pkg/orchestrator"
)

// Request describes one generation run; alias exported via the root package
// for convenience.
type Request = orchestrator.Request

// Option customises the generation pipeline.
type Option = orchestrator.Option

// Config carries cross-request generator settings.
type Config = orchestrator.Config

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return orchestrator.WithConfig(cfg)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate scans the requested source file and returns the generated Go
// source for its newtype targets. It is the simplest programmatic entry
// point.
func Generate(ctx context.Context, req Request, options ...Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, req)
}

// GenerateFile runs Generate and writes the output next to the source,
// returning the written path.
func GenerateFile(ctx context.Context, req Request, options ...Option) (string, error) {
	return orchestrator.New(options...).GenerateFile(ctx, req)
}

// ImportOpenAPI derives newtype declaration stubs from an OpenAPI document
// and renders them as a Go source file in the given package.
func ImportOpenAPI(ctx context.Context, documentPath, pkg string) ([]byte, error) {
	decls, err := openapi.FromFile(ctx, documentPath)
	if err != nil {
		return nil, err
	}
	return openapi.RenderStubs(pkg, decls)
}

// EmbeddedTemplates exposes the built-in output templates so callers can
// reuse or extend them without importing the generator package directly.
func EmbeddedTemplates() fs.FS {
	return generate.TemplatesFS()
}
