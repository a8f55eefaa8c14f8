package parser

import (
	"github.com/goliatone/go-newtype/pkg/model"
	"github.com/goliatone/go-newtype/pkg/token"
)

// ParseTextAttributes parses and semantically validates a text-family
// directive. src is the directive payload the tokens were scanned from; it
// is needed to recover custom sanitizer expressions verbatim.
func ParseTextAttributes(src string, tokens []token.Token) (model.TextModel, error) {
	raw, err := ParseRawTextRules(src, tokens)
	if err != nil {
		return model.TextModel{}, err
	}
	return model.ValidateText(raw)
}

// ParseRawTextRules parses a text-family directive into its raw rule set
// without semantic validation.
func ParseRawTextRules(src string, tokens []token.Token) (model.RawTextRules, error) {
	var raw model.RawTextRules
	err := ParseGroups(tokens,
		func(inner []token.Token) error {
			sanitizers, err := ParseTextSanitizers(src, inner)
			if err != nil {
				return err
			}
			raw.Sanitizers = sanitizers
			return nil
		},
		func(inner []token.Token) error {
			validators, err := ParseTextValidators(inner)
			if err != nil {
				return err
			}
			raw.Validators = validators
			return nil
		},
	)
	if err != nil {
		return model.RawTextRules{}, err
	}
	return raw, nil
}

// ParseTextSanitizers splits the sanitize(...) inner tokens on top-level
// commas and parses each run as one sanitizer rule, preserving declaration
// order.
func ParseTextSanitizers(src string, inner []token.Token) ([]model.Spanned[model.TextSanitizer], error) {
	return token.SplitAndParse(inner, token.IsComma, func(run []token.Token) (model.Spanned[model.TextSanitizer], error) {
		return parseTextSanitizer(src, run)
	})
}

func parseTextSanitizer(src string, run []token.Token) (model.Spanned[model.TextSanitizer], error) {
	var none model.Spanned[model.TextSanitizer]

	head := run[0]
	if head.Kind != token.Ident {
		return none, token.Errorf(head.Span, "expected sanitizer name, found %q", head.Text)
	}

	switch head.Text {
	case "trim", "lowercase", "uppercase":
		// Bare sanitizers take no arguments.
		if len(run) > 1 {
			return none, token.Errorf(run[1].Span, "unexpected token after %q", head.Text)
		}
		kind := map[string]model.TextSanitizerKind{
			"trim":      model.SanitizerTrim,
			"lowercase": model.SanitizerLowercase,
			"uppercase": model.SanitizerUppercase,
		}[head.Text]
		return model.Spanned[model.TextSanitizer]{
			Span: head.Span,
			Item: model.TextSanitizer{Kind: kind},
		}, nil

	case "with":
		payload, err := parseCustomPayload(src, run)
		if err != nil {
			return none, err
		}
		return model.Spanned[model.TextSanitizer]{
			Span: head.Span,
			Item: model.TextSanitizer{
				Kind:         model.SanitizerCustom,
				Custom:       payload.expr,
				CustomTokens: payload.tokens,
			},
		}, nil

	default:
		return none, token.Errorf(head.Span, "unknown sanitizer %q", head.Text)
	}
}

type customPayload struct {
	expr   string
	tokens []token.Token
}

// parseCustomPayload consumes `with = <expr>` and preserves the expression
// exactly as written by slicing the original source between the first and
// last payload token.
func parseCustomPayload(src string, run []token.Token) (customPayload, error) {
	head := run[0]
	if len(run) < 2 {
		return customPayload{}, token.Errorf(head.Span, "invalid syntax for %q: missing `=`", head.Text)
	}
	if !token.IsEquals(run[1]) {
		return customPayload{}, token.Errorf(run[1].Span, "invalid syntax for %q: expected `=`, found %q", head.Text, run[1].Text)
	}
	rest := run[2:]
	if len(rest) == 0 {
		return customPayload{}, token.Errorf(run[1].Span, "missing expression after `%s =`", head.Text)
	}
	span := rest[0].Span.Cover(rest[len(rest)-1].Span)
	return customPayload{expr: src[span.Start:span.End], tokens: rest}, nil
}

// ParseTextValidators parses the validate(...) inner tokens with a single
// shared cursor: bare commas separate rules, `present` consumes nothing and
// the length rules consume `= <uint>`.
func ParseTextValidators(inner []token.Token) ([]model.Spanned[model.TextValidator], error) {
	var out []model.Spanned[model.TextValidator]

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
		case "max_len":
			value, err := token.ParseValueAsNumber(cur, tok.Span)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Spanned[model.TextValidator]{
				Span: tok.Span,
				Item: model.TextValidator{Kind: model.ValidatorMaxLen, Value: value},
			})
		case "min_len":
			value, err := token.ParseValueAsNumber(cur, tok.Span)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Spanned[model.TextValidator]{
				Span: tok.Span,
				Item: model.TextValidator{Kind: model.ValidatorMinLen, Value: value},
			})
		case "present":
			out = append(out, model.Spanned[model.TextValidator]{
				Span: tok.Span,
				Item: model.TextValidator{Kind: model.ValidatorPresent},
			})
		default:
			return nil, token.Errorf(tok.Span, "unknown validation rule %q", tok.Text)
		}
	}
}
