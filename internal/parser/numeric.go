package parser

import (
	"strconv"

	"github.com/goliatone/go-newtype/pkg/model"
	"github.com/goliatone/go-newtype/pkg/token"
)

// ParseNumericAttributes parses and semantically validates a numeric-family
// directive. Numeric targets accept only custom sanitizers plus signed
// `max = <int>` and `min = <int>` bounds.
func ParseNumericAttributes(src string, tokens []token.Token) (model.NumericModel, error) {
	raw, err := ParseRawNumericRules(src, tokens)
	if err != nil {
		return model.NumericModel{}, err
	}
	return model.ValidateNumeric(raw)
}

// ParseRawNumericRules parses a numeric-family directive into its raw rule
// set without semantic validation.
func ParseRawNumericRules(src string, tokens []token.Token) (model.RawNumericRules, error) {
	var raw model.RawNumericRules
	err := ParseGroups(tokens,
		func(inner []token.Token) error {
			sanitizers, err := ParseNumericSanitizers(src, inner)
			if err != nil {
				return err
			}
			raw.Sanitizers = sanitizers
			return nil
		},
		func(inner []token.Token) error {
			validators, err := ParseNumericValidators(inner)
			if err != nil {
				return err
			}
			raw.Validators = validators
			return nil
		},
	)
	if err != nil {
		return model.RawNumericRules{}, err
	}
	return raw, nil
}

// ParseNumericSanitizers splits sanitize(...) on top-level commas; every run
// must be a `with = <expr>` custom sanitizer.
func ParseNumericSanitizers(src string, inner []token.Token) ([]model.Spanned[model.NumericSanitizer], error) {
	return token.SplitAndParse(inner, token.IsComma, func(run []token.Token) (model.Spanned[model.NumericSanitizer], error) {
		var none model.Spanned[model.NumericSanitizer]

		head := run[0]
		if head.Kind != token.Ident {
			return none, token.Errorf(head.Span, "expected sanitizer name, found %q", head.Text)
		}
		if head.Text != "with" {
			return none, token.Errorf(head.Span, "unknown sanitizer %q", head.Text)
		}
		payload, err := parseCustomPayload(src, run)
		if err != nil {
			return none, err
		}
		return model.Spanned[model.NumericSanitizer]{
			Span: head.Span,
			Item: model.NumericSanitizer{Custom: payload.expr, CustomTokens: payload.tokens},
		}, nil
	})
}

// ParseNumericValidators parses validate(...) with the shared-cursor loop
// used by the text family, accepting signed bound values.
func ParseNumericValidators(inner []token.Token) ([]model.Spanned[model.NumericValidator], error) {
	var out []model.Spanned[model.NumericValidator]

	cur := token.NewCursor(inner)
	for {
		tok, ok := cur.Next()
		if !ok {
			return out, nil
		}
		if token.IsComma(tok) {
			next, ok := cur.Next()
			if !ok {
				return nil, token.Errorf(tok.Span, "expected validation rule after `,`")
			}
			tok = next
		}
		if tok.Kind != token.Ident {
			return nil, token.Errorf(tok.Span, "expected validation rule, found %q", tok.Text)
		}

		switch tok.Text {
		case "max":
			value, err := parseSignedValue(cur, tok.Span)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Spanned[model.NumericValidator]{
				Span: tok.Span,
				Item: model.NumericValidator{Kind: model.ValidatorMax, Value: value},
			})
		case "min":
			value, err := parseSignedValue(cur, tok.Span)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Spanned[model.NumericValidator]{
				Span: tok.Span,
				Item: model.NumericValidator{Kind: model.ValidatorMin, Value: value},
			})
		default:
			return nil, token.Errorf(tok.Span, "unknown validation rule %q", tok.Text)
		}
	}
}

// parseSignedValue consumes `= [-]<int>`. Numeric bounds, unlike text
// lengths, may legitimately be negative.
func parseSignedValue(cur *token.Cursor, at token.Span) (int, error) {
	eq, ok := cur.Next()
	if !ok {
		return 0, token.Errorf(at, "missing `=` and value")
	}
	if !token.IsEquals(eq) {
		return 0, token.Errorf(eq.Span, "expected `=`, found %q", eq.Text)
	}

	negative := false
	lit, ok := cur.Next()
	if ok && lit.Kind == token.Punct && lit.Text == "-" {
		negative = true
		lit, ok = cur.Next()
	}
	if !ok {
		return 0, token.Errorf(eq.Span, "missing value after `=`")
	}
	if lit.Kind != token.Number {
		return 0, token.Errorf(lit.Span, "expected integer, found %q", lit.Text)
	}
	n, err := strconv.Atoi(lit.Text)
	if err != nil {
		return 0, token.Errorf(lit.Span, "invalid integer %q", lit.Text)
	}
	if negative {
		n = -n
	}
	return n, nil
}
