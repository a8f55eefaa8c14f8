package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-newtype/internal/openapi"
	"github.com/goliatone/go-newtype/pkg/orchestrator"
)

func main() {
	source := flag.String("source", "", "Go file to scan for //newtype: directives")
	output := flag.String("output", "", "output file (derived from source if empty)")
	types := flag.String("type", "", "comma-separated list of type names to generate (all if empty)")
	pkg := flag.String("package", "", "output package name override")
	configPath := flag.String("config", "", "path to a .newtype.yaml config file")
	importPath := flag.String("import", "", "OpenAPI document to derive newtype stubs from")
	initMode := flag.Bool("init", false, "interactively scaffold a newtype declaration")
	flag.Parse()

	ctx := context.Background()

	switch {
	case *initMode:
		if err := runInit(*output); err != nil {
			log.Fatalf("Failed to scaffold: %v", err)
		}
	case *importPath != "":
		if err := runImport(ctx, *importPath, *pkg, *output); err != nil {
			log.Fatalf("Failed to import: %v", err)
		}
	default:
		if err := runGenerate(ctx, *source, *output, *types, *pkg, *configPath); err != nil {
			log.Fatalf("Failed to generate: %v", err)
		}
	}
}

func runGenerate(ctx context.Context, source, output, types, pkg, configPath string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("-source is required")
	}

	var options []orchestrator.Option
	if configPath != "" {
		cfg, err := orchestrator.LoadConfig(configPath)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithConfig(cfg))
	}

	gen := orchestrator.New(options...)
	req := orchestrator.Request{
		Source:  source,
		Output:  output,
		Types:   splitTypes(types),
		Package: pkg,
	}

	path, err := gen.GenerateFile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %s\n", path)
	return nil
}

func runImport(ctx context.Context, document, pkg, output string) error {
	if pkg == "" {
		pkg = "main"
	}
	decls, err := openapi.FromFile(ctx, document)
	if err != nil {
		return err
	}
	stubs, err := openapi.RenderStubs(pkg, decls)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(stubs))
		return nil
	}
	if err := os.WriteFile(output, stubs, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("Stubs written to %s\n", output)
	return nil
}

func splitTypes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
