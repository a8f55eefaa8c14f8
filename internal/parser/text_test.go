package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-newtype/internal/parser"
	"github.com/goliatone/go-newtype/pkg/model"
	"github.com/goliatone/go-newtype/pkg/token"
)

func parseValidators(t *testing.T, src string) ([]model.TextValidator, error) {
	t.Helper()
	spanned, err := parser.ParseTextValidators(scan(t, src))
	if err != nil {
		return nil, err
	}
	out := make([]model.TextValidator, 0, len(spanned))
	for _, v := range spanned {
		out = append(out, v.Item)
	}
	return out, nil
}

func parseSanitizers(t *testing.T, src string) ([]model.TextSanitizer, error) {
	t.Helper()
	spanned, err := parser.ParseTextSanitizers(src, scan(t, src))
	if err != nil {
		return nil, err
	}
	out := make([]model.TextSanitizer, 0, len(spanned))
	for _, s := range spanned {
		out = append(out, s.Item)
	}
	return out, nil
}

func TestParseTextValidators_OrderAndValues(t *testing.T) {
	got, err := parseValidators(t, "max_len = 13, min_len = 7, present")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.TextValidator{
		{Kind: model.ValidatorMaxLen, Value: 13},
		{Kind: model.ValidatorMinLen, Value: 7},
		{Kind: model.ValidatorPresent},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("validator mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTextValidators_NegativeLength(t *testing.T) {
	_, err := parseValidators(t, "max_len = -1")
	if err == nil {
		t.Fatal("negative length accepted")
	}
	if !strings.Contains(err.Error(), "non-negative") {
		t.Errorf("unexpected error text: %q", err)
	}
}

func TestParseTextValidators_BareRuleWithArgument(t *testing.T) {
	_, err := parseValidators(t, "present = 3")
	if err == nil {
		t.Fatal("present with argument accepted")
	}
}

func TestParseTextValidators_UnknownRule(t *testing.T) {
	src := "bogus"
	_, err := parser.ParseTextValidators(scan(t, src))
	if err == nil {
		t.Fatal("unknown rule accepted")
	}
	if !strings.Contains(err.Error(), `unknown validation rule "bogus"`) {
		t.Errorf("unexpected error text: %q", err)
	}
	var terr *token.Error
	if !errors.As(err, &terr) {
		t.Fatalf("error %v does not carry a span", err)
	}
	if terr.Span.Start != 0 || terr.Span.End != len(src) {
		t.Errorf("error span %v does not point at the identifier", terr.Span)
	}
}

func TestParseTextValidators_TrailingComma(t *testing.T) {
	_, err := parseValidators(t, "present,")
	if err == nil {
		t.Fatal("trailing comma accepted")
	}
	if !strings.Contains(err.Error(), "after `,`") {
		t.Errorf("unexpected error text: %q", err)
	}
}

func TestParseTextValidators_Empty(t *testing.T) {
	got, err := parseValidators(t, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no validators, got %v", got)
	}
}

func TestParseTextSanitizers_Bare(t *testing.T) {
	got, err := parseSanitizers(t, "trim, lowercase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.TextSanitizer{
		{Kind: model.SanitizerTrim},
		{Kind: model.SanitizerLowercase},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sanitizer mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTextSanitizers_CustomPreservedVerbatim(t *testing.T) {
	got, err := parseSanitizers(t, "with = foo(1,2), trim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sanitizers, got %d", len(got))
	}
	if got[0].Kind != model.SanitizerCustom {
		t.Fatalf("first sanitizer kind = %v, want custom", got[0].Kind)
	}
	if got[0].Custom != "foo(1,2)" {
		t.Errorf("custom payload = %q, want \"foo(1,2)\"", got[0].Custom)
	}
	var texts []string
	for _, tok := range got[0].CustomTokens {
		texts = append(texts, tok.Text)
	}
	if diff := cmp.Diff([]string{"foo", "(", "1", ",", "2", ")"}, texts); diff != "" {
		t.Errorf("custom token mismatch (-want +got):\n%s", diff)
	}
	if got[1].Kind != model.SanitizerTrim {
		t.Errorf("second sanitizer kind = %v, want trim", got[1].Kind)
	}
}

func TestParseTextSanitizers_Errors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown sanitizer", "bogus", `unknown sanitizer "bogus"`},
		{"trailing token after bare rule", "trim garbage", "unexpected token"},
		{"with missing equals", "with", "missing `=`"},
		{"with wrong token", "with foo", "expected `=`"},
		{"with empty expression", "with =", "missing expression"},
		{"leading punct", "= trim", "expected sanitizer name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSanitizers(t, tc.src)
			if err == nil {
				t.Fatalf("ParseTextSanitizers(%q) succeeded, want error", tc.src)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseTextAttributes_EndToEnd(t *testing.T) {
	src := "sanitize(trim, with = strings.ToValidUTF8) validate(max_len = 13, min_len = 7, present)"
	m, err := parser.ParseTextAttributes(src, scan(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Fallible() {
		t.Error("model with validators must be fallible")
	}
	if len(m.Sanitizers) != 2 || len(m.Validators) != 3 {
		t.Fatalf("got %d sanitizers and %d validators", len(m.Sanitizers), len(m.Validators))
	}
}

func TestParseTextAttributes_SemanticFailureAfterParse(t *testing.T) {
	src := "validate(max_len = 3, min_len = 10)"
	tokens := scan(t, src)

	// Parsing alone succeeds; the unsatisfiable range is a semantic error.
	raw, err := parser.ParseRawTextRules(src, tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(raw.Validators) != 2 {
		t.Fatalf("expected 2 raw validators, got %d", len(raw.Validators))
	}

	if _, err := parser.ParseTextAttributes(src, tokens); err == nil {
		t.Fatal("unsatisfiable range passed semantic validation")
	}
}

func TestParseTextAttributes_InfallibleWithoutValidators(t *testing.T) {
	src := "sanitize(trim)"
	m, err := parser.ParseTextAttributes(src, scan(t, src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Fallible() {
		t.Error("sanitize-only model must be infallible")
	}
}
