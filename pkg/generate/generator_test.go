package generate_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-newtype/pkg/generate"
	"github.com/goliatone/go-newtype/pkg/model"
)

func textTarget(name string, m model.TextModel) generate.Target {
	return generate.Target{
		Descriptor: model.TypeDescriptor{Name: name, Inner: model.KindString},
		Text:       &m,
	}
}

func render(t *testing.T, file generate.File) string {
	t.Helper()
	gen, err := generate.New()
	if err != nil {
		t.Fatalf("generate.New returned error: %v", err)
	}
	out, err := gen.Render(file)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	return string(out)
}

func TestRender_FallibleText(t *testing.T) {
	m := model.TextModel{
		Sanitizers: []model.Spanned[model.TextSanitizer]{
			{Item: model.TextSanitizer{Kind: model.SanitizerTrim}},
			{Item: model.TextSanitizer{Kind: model.SanitizerLowercase}},
		},
		Validators: []model.Spanned[model.TextValidator]{
			{Item: model.TextValidator{Kind: model.ValidatorMaxLen, Value: 255}},
			{Item: model.TextValidator{Kind: model.ValidatorPresent}},
		},
	}
	out := render(t, generate.File{Package: "sample", Targets: []generate.Target{textTarget("Email", m)}})

	for _, want := range []string{
		"// Code generated by newtype-cli. DO NOT EDIT.",
		"package sample",
		"func NewEmail(raw string) (Email, error)",
		"value = sanitize.Trim(value)",
		"value = sanitize.Lower(value)",
		"if len(value) > 255 {",
		"ErrEmailTooLong",
		`value == ""`,
		"ErrEmailEmpty",
		"func (t Email) Value() string",
		"func (t Email) String() string",
		`"github.com/goliatone/go-newtype/pkg/sanitize"`,
		`"errors"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Sanitizers run in declaration order.
	trim := strings.Index(out, "sanitize.Trim")
	lower := strings.Index(out, "sanitize.Lower")
	if trim > lower {
		t.Error("sanitizers emitted out of order")
	}
}

func TestRender_InfallibleText(t *testing.T) {
	m := model.TextModel{
		Sanitizers: []model.Spanned[model.TextSanitizer]{
			{Item: model.TextSanitizer{Kind: model.SanitizerUppercase}},
		},
	}
	out := render(t, generate.File{Package: "sample", Targets: []generate.Target{textTarget("Code", m)}})

	if !strings.Contains(out, "func NewCode(raw string) Code {") {
		t.Errorf("infallible constructor signature missing:\n%s", out)
	}
	if strings.Contains(out, "(Code, error)") {
		t.Error("sanitize-only type emitted a fallible constructor")
	}
	if strings.Contains(out, `"errors"`) {
		t.Error("infallible output should not import errors")
	}
}

func TestRender_CustomSanitizer(t *testing.T) {
	m := model.TextModel{
		Sanitizers: []model.Spanned[model.TextSanitizer]{
			{Item: model.TextSanitizer{Kind: model.SanitizerCustom, Custom: "sanitize.StripHTML"}},
		},
	}
	out := render(t, generate.File{Package: "sample", Targets: []generate.Target{textTarget("Bio", m)}})

	if !strings.Contains(out, "value = sanitize.StripHTML(value)") {
		t.Errorf("custom sanitizer call missing:\n%s", out)
	}
	if !strings.Contains(out, `"github.com/goliatone/go-newtype/pkg/sanitize"`) {
		t.Error("custom sanitizer referencing the runtime should import it")
	}
}

func TestRender_Numeric(t *testing.T) {
	m := model.NumericModel{
		Validators: []model.Spanned[model.NumericValidator]{
			{Item: model.NumericValidator{Kind: model.ValidatorMax, Value: 150}},
			{Item: model.NumericValidator{Kind: model.ValidatorMin, Value: 0}},
		},
	}
	file := generate.File{
		Package: "sample",
		Targets: []generate.Target{{
			Descriptor: model.TypeDescriptor{Name: "Age", Inner: model.KindUint8},
			Numeric:    &m,
		}},
	}
	out := render(t, file)

	for _, want := range []string{
		"func NewAge(raw uint8) (Age, error)",
		"if value > 150 {",
		"if value < 0 {",
		"ErrAgeTooBig",
		"ErrAgeTooSmall",
		"func (t Age) Value() uint8",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "func (t Age) String()") {
		t.Error("numeric targets should not gain a String method")
	}
}

func TestRender_MultipleTargets(t *testing.T) {
	text := model.TextModel{
		Validators: []model.Spanned[model.TextValidator]{
			{Item: model.TextValidator{Kind: model.ValidatorPresent}},
		},
	}
	numeric := model.NumericModel{}
	file := generate.File{
		Package: "sample",
		Targets: []generate.Target{
			textTarget("Name", text),
			{
				Descriptor: model.TypeDescriptor{Name: "Count", Inner: model.KindInt64},
				Numeric:    &numeric,
			},
		},
	}
	out := render(t, file)

	if !strings.Contains(out, "func NewName(raw string) (Name, error)") {
		t.Error("fallible text constructor missing")
	}
	if !strings.Contains(out, "func NewCount(raw int64) Count {") {
		t.Error("infallible numeric constructor missing")
	}
}

func TestRender_CustomHeader(t *testing.T) {
	m := model.TextModel{}
	file := generate.File{
		Package: "sample",
		Header:  "Code generated by the sample pipeline. DO NOT EDIT.",
		Targets: []generate.Target{textTarget("ID", m)},
	}
	out := render(t, file)
	if !strings.Contains(out, "// Code generated by the sample pipeline. DO NOT EDIT.") {
		t.Errorf("custom header missing:\n%s", out)
	}
}

func TestRender_InputValidation(t *testing.T) {
	gen, err := generate.New()
	if err != nil {
		t.Fatalf("generate.New returned error: %v", err)
	}
	if _, err := gen.Render(generate.File{Targets: []generate.Target{}}); err == nil {
		t.Error("missing package accepted")
	}
	if _, err := gen.Render(generate.File{Package: "p"}); err == nil {
		t.Error("empty target list accepted")
	}
	if _, err := gen.Render(generate.File{
		Package: "p",
		Targets: []generate.Target{{Descriptor: model.TypeDescriptor{Name: "X", Inner: model.KindString}}},
	}); err == nil {
		t.Error("text target without a rule model accepted")
	}
}
