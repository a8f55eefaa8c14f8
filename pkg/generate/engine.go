package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

// EngineOption configures the template engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithFS loads templates from an fs.FS, typically the embedded bundle.
func WithFS(files fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.templates = files
	}
}

// WithBaseDir loads templates from a directory on disk, overriding the
// embedded bundle.
func WithBaseDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) EngineOption {
	return func(cfg *engineConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGoTemplateOptions exists for compatibility with the go-template engine
// contract and is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) EngineOption {
	return func(*engineConfig) {}
}

// Engine renders the output templates using a pongo2-backed template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

// NewEngine constructs an Engine from the provided options. Either a base
// directory or an fs.FS must be supplied.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{extension: ".tmpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("generate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loaders = append(loaders, pongo2.NewFSLoader(os.DirFS(cfg.baseDir)))
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	return &Engine{
		templateSet: pongo2.NewSet("newtype", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}, nil
}

// RenderTemplate renders the named template with data.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("generate: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("generate: convert data: %w", err)
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(viewContext)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("generate: execute template %q: %w", templatePath, err)
	}
	return rendered, nil
}

// RenderString renders inline template content with data.
func (e *Engine) RenderString(content string, data any) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("generate: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("generate: parse template string: %w", err)
	}
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("generate: convert data: %w", err)
	}
	rendered, err := tmpl.Execute(viewContext)
	if err != nil {
		return "", fmt.Errorf("generate: execute template string: %w", err)
	}
	return rendered, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok = e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromCache(path)
	if err != nil {
		return nil, fmt.Errorf("generate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func convertToContext(data any) (pongo2.Context, error) {
	switch value := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return value, nil
	case map[string]any:
		return pongo2.Context(value), nil
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return pongo2.Context(out), nil
	}
}
