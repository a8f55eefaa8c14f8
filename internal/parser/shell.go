// Package parser turns tokenized newtype directives into rule descriptors.
// The shell parser separates the sanitize(...) and validate(...) groups and
// dispatches each group's inner tokens to a family-specific parser supplied
// by the caller; it carries no per-family logic of its own.
package parser

import "github.com/goliatone/go-newtype/pkg/token"

const (
	groupSanitize = "sanitize"
	groupValidate = "validate"
)

// ParseGroups walks the directive tokens and invokes onSanitize and
// onValidate with the inner token run of the respective group. Groups may
// appear in any order, each at most once, optionally separated by commas.
// Either group may be absent, in which case its callback is never invoked.
// Unknown group names are rejected at the offending identifier's span.
func ParseGroups(tokens []token.Token, onSanitize, onValidate func([]token.Token) error) error {
	cur := token.NewCursor(tokens)
	seen := make(map[string]token.Span, 2)

	for {
		tok, ok := cur.Next()
		if !ok {
			return nil
		}
		if token.IsComma(tok) {
			continue
		}
		if tok.Kind != token.Ident {
			return token.Errorf(tok.Span, "expected attribute group, found %q", tok.Text)
		}

		name := tok.Text
		if name != groupSanitize && name != groupValidate {
			return token.Errorf(tok.Span, "unknown attribute %q", name)
		}
		if _, dup := seen[name]; dup {
			return token.Errorf(tok.Span, "duplicate %q attribute", name)
		}
		seen[name] = tok.Span

		inner, err := collectGroup(cur, tok)
		if err != nil {
			return err
		}

		switch name {
		case groupSanitize:
			err = onSanitize(inner)
		case groupValidate:
			err = onValidate(inner)
		}
		if err != nil {
			return err
		}
	}
}

// collectGroup consumes `( ... )` after a group name, tracking nesting depth
// so parenthesized custom expressions stay inside the returned run.
func collectGroup(cur *token.Cursor, name token.Token) ([]token.Token, error) {
	open, ok := cur.Next()
	if !ok {
		return nil, token.Errorf(name.Span, "missing `(` after %q", name.Text)
	}
	if open.Kind != token.Punct || open.Text != "(" {
		return nil, token.Errorf(open.Span, "expected `(` after %q, found %q", name.Text, open.Text)
	}

	var inner []token.Token
	depth := 1
	for {
		tok, ok := cur.Next()
		if !ok {
			return nil, token.Errorf(open.Span, "unbalanced parentheses in %q attribute", name.Text)
		}
		if tok.Kind == token.Punct {
			switch tok.Text {
			case "(":
				depth++
			case ")":
				depth--
				if depth == 0 {
					return inner, nil
				}
			}
		}
		inner = append(inner, tok)
	}
}
