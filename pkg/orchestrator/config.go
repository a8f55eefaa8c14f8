package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries generator settings that apply across requests. It is
// usually loaded from a .newtype.yaml file next to the sources.
type Config struct {
	// OutputSuffix replaces the ".go" suffix of the source file when no
	// explicit output path is requested. Defaults to "_gen.go".
	OutputSuffix string `yaml:"output_suffix"`
	// Header overrides the generated-file header comment.
	Header string `yaml:"header"`
	// Package overrides the output package name; defaults to the scanned
	// source file's package.
	Package string `yaml:"package"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{OutputSuffix: "_gen.go"}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("orchestrator: read config %s: %w", path, err)
	}
	cfg := Config{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("orchestrator: parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.OutputSuffix) == "" {
		c.OutputSuffix = "_gen.go"
	}
	return c
}
