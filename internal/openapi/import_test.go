package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-newtype/internal/openapi"
)

const sampleDocument = `{
  "openapi": "3.0.0",
  "info": {"title": "sample", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "email": {"type": "string", "maxLength": 255, "minLength": 1},
      "user_name": {"type": "string", "minLength": 3},
      "age": {"type": "integer", "maximum": 150, "minimum": 0},
      "score": {"type": "integer", "format": "int64"},
      "tags": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

func TestFromData_DerivesDeclarations(t *testing.T) {
	decls, err := openapi.FromData(context.Background(), []byte(sampleDocument))
	if err != nil {
		t.Fatalf("FromData returned error: %v", err)
	}

	want := []openapi.Declaration{
		{Name: "Age", Inner: "int", Directive: "validate(max = 150, min = 0)"},
		{Name: "Email", Inner: "string", Directive: "validate(max_len = 255, present)"},
		{Name: "Score", Inner: "int64", Directive: ""},
		{Name: "UserName", Inner: "string", Directive: "validate(min_len = 3)"},
	}
	if diff := cmp.Diff(want, decls); diff != "" {
		t.Fatalf("declaration mismatch (-want +got):\n%s", diff)
	}
}

func TestFromData_NoUsableSchemas(t *testing.T) {
	doc := `{
  "openapi": "3.0.0",
  "info": {"title": "sample", "version": "1.0.0"},
  "paths": {},
  "components": {"schemas": {"blob": {"type": "object"}}}
}`
	if _, err := openapi.FromData(context.Background(), []byte(doc)); err == nil {
		t.Fatal("document without string or integer schemas accepted")
	}
}

func TestRenderStubs(t *testing.T) {
	decls := []openapi.Declaration{
		{Name: "Email", Inner: "string", Directive: "validate(max_len = 255, present)"},
		{Name: "Score", Inner: "int64", Directive: ""},
	}
	out, err := openapi.RenderStubs("wrappers", decls)
	if err != nil {
		t.Fatalf("RenderStubs returned error: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		"package wrappers",
		"//newtype: validate(max_len = 255, present)",
		"type Email struct{ string }",
		"type Score struct{ int64 }",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("stubs missing %q:\n%s", want, got)
		}
	}
}

func TestRenderStubs_InputValidation(t *testing.T) {
	if _, err := openapi.RenderStubs("", []openapi.Declaration{{Name: "A", Inner: "string"}}); err == nil {
		t.Error("missing package accepted")
	}
	if _, err := openapi.RenderStubs("p", nil); err == nil {
		t.Error("empty declaration list accepted")
	}
}
