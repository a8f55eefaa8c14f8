package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2"
)

var innerTypeOptions = []string{
	"string",
	"int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64",
	"float32", "float64",
}

var textSanitizerOptions = []string{"trim", "lowercase", "uppercase"}

// runInit walks the user through declaring a newtype and writes the stub
// file a later generate run will pick up.
func runInit(output string) error {
	var typeName string
	namePrompt := &survey.Input{
		Message: "Type name:",
		Help:    "Exported name of the wrapper type, e.g. Email",
	}
	if err := survey.AskOne(namePrompt, &typeName, survey.WithValidator(validTypeName)); err != nil {
		return err
	}

	var inner string
	innerPrompt := &survey.Select{
		Message: "Inner type:",
		Options: innerTypeOptions,
	}
	if err := survey.AskOne(innerPrompt, &inner); err != nil {
		return err
	}

	directive, err := promptRules(inner)
	if err != nil {
		return err
	}

	var pkg string
	pkgPrompt := &survey.Input{
		Message: "Package name:",
		Default: "main",
	}
	if err := survey.AskOne(pkgPrompt, &pkg); err != nil {
		return err
	}

	stub := renderStub(pkg, typeName, inner, directive)
	if output == "" {
		output = strings.ToLower(typeName) + ".go"
	}
	if err := os.WriteFile(output, []byte(stub), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("Declaration written to %s\n", output)
	return nil
}

func promptRules(inner string) (string, error) {
	var groups []string

	if inner == "string" {
		var sanitizers []string
		sanPrompt := &survey.MultiSelect{
			Message: "Sanitizers (applied in order):",
			Options: textSanitizerOptions,
		}
		if err := survey.AskOne(sanPrompt, &sanitizers); err != nil {
			return "", err
		}
		if len(sanitizers) > 0 {
			groups = append(groups, "sanitize("+strings.Join(sanitizers, ", ")+")")
		}

		validators, err := promptLengthRules()
		if err != nil {
			return "", err
		}
		if len(validators) > 0 {
			groups = append(groups, "validate("+strings.Join(validators, ", ")+")")
		}
	} else {
		validators, err := promptBoundRules()
		if err != nil {
			return "", err
		}
		if len(validators) > 0 {
			groups = append(groups, "validate("+strings.Join(validators, ", ")+")")
		}
	}

	return strings.Join(groups, " "), nil
}

func promptLengthRules() ([]string, error) {
	var rules []string
	maxLen, err := promptOptionalNumber("Maximum length (empty to skip):")
	if err != nil {
		return nil, err
	}
	if maxLen != "" {
		rules = append(rules, "max_len = "+maxLen)
	}
	minLen, err := promptOptionalNumber("Minimum length (empty to skip):")
	if err != nil {
		return nil, err
	}
	if minLen != "" {
		rules = append(rules, "min_len = "+minLen)
	}

	var present bool
	presentPrompt := &survey.Confirm{
		Message: "Require a non-empty value after sanitization?",
	}
	if err := survey.AskOne(presentPrompt, &present); err != nil {
		return nil, err
	}
	if present {
		rules = append(rules, "present")
	}
	return rules, nil
}

func promptBoundRules() ([]string, error) {
	var rules []string
	max, err := promptOptionalNumber("Maximum value (empty to skip):")
	if err != nil {
		return nil, err
	}
	if max != "" {
		rules = append(rules, "max = "+max)
	}
	min, err := promptOptionalNumber("Minimum value (empty to skip):")
	if err != nil {
		return nil, err
	}
	if min != "" {
		rules = append(rules, "min = "+min)
	}
	return rules, nil
}

func promptOptionalNumber(message string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(optionalNumber)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func renderStub(pkg, typeName, inner, directive string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "//go:generate newtype-cli -source %s\n\n", strings.ToLower(typeName)+".go")
	if directive != "" {
		fmt.Fprintf(&b, "//newtype: %s\n", directive)
	} else {
		b.WriteString("//newtype:\n")
	}
	fmt.Fprintf(&b, "type %s struct{ %s }\n", typeName, inner)
	return b.String()
}

func validTypeName(value any) error {
	name, ok := value.(string)
	if !ok || name == "" {
		return fmt.Errorf("type name is required")
	}
	for i, r := range name {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return fmt.Errorf("type name must be exported (start with an upper-case letter)")
			}
			continue
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("type name must be a valid Go identifier")
		}
	}
	return nil
}

func optionalNumber(value any) error {
	raw, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected a number")
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for i, r := range trimmed {
		if i == 0 && r == '-' {
			continue
		}
		if r < '0' || r > '9' {
			return fmt.Errorf("expected a number, got %q", raw)
		}
	}
	return nil
}
