package token

import "strconv"

// Cursor is an explicit, resumable position over a token sequence. Rule
// parsers share one cursor so a rule that takes no arguments never consumes
// the separator that belongs to the next rule.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor wraps the token sequence in a cursor positioned at its start.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// EOF reports whether the cursor has consumed every token.
func (c *Cursor) EOF() bool { return c.pos >= len(c.tokens) }

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	if c.EOF() {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	if c.EOF() {
		return Token{}, false
	}
	t := c.tokens[c.pos]
	c.pos++
	return t, true
}

// Rest returns the unconsumed tail of the sequence without advancing.
func (c *Cursor) Rest() []Token {
	if c.EOF() {
		return nil
	}
	return c.tokens[c.pos:]
}

// SplitOn partitions tokens into maximal runs separated by tokens matching
// sep. Separators are matched only at the top parenthesis level so a
// parenthesized argument list inside a run stays intact. An empty run, such
// as a leading or trailing separator, is an error at the separator's span.
func SplitOn(tokens []Token, sep func(Token) bool) ([][]Token, error) {
	var (
		groups  [][]Token
		run     []Token
		depth   int
		lastSep Token
		sawSep  bool
	)
	for _, t := range tokens {
		if t.Kind == Punct {
			switch t.Text {
			case "(":
				depth++
			case ")":
				depth--
			}
		}
		if depth == 0 && sep(t) {
			if len(run) == 0 {
				return nil, Errorf(t.Span, "empty rule before %q", t.Text)
			}
			groups = append(groups, run)
			run = nil
			lastSep = t
			sawSep = true
			continue
		}
		run = append(run, t)
	}
	if len(run) > 0 {
		groups = append(groups, run)
	} else if sawSep {
		return nil, Errorf(lastSep.Span, "empty rule after %q", lastSep.Text)
	}
	return groups, nil
}

// SplitAndParse splits tokens on sep and applies parse to each run,
// returning the first error encountered.
func SplitAndParse[T any](tokens []Token, sep func(Token) bool, parse func([]Token) (T, error)) ([]T, error) {
	runs, err := SplitOn(tokens, sep)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(runs))
	for _, run := range runs {
		item, err := parse(run)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ParseValueAsNumber consumes `= <uint>` from the cursor and returns the
// literal's value. Negative values scan as two tokens and are rejected at
// the minus sign. The at span anchors diagnostics when the cursor is
// already exhausted.
func ParseValueAsNumber(cur *Cursor, at Span) (int, error) {
	eq, ok := cur.Next()
	if !ok {
		return 0, Errorf(at, "missing `=` and value")
	}
	if !IsEquals(eq) {
		return 0, Errorf(eq.Span, "expected `=`, found %q", eq.Text)
	}
	lit, ok := cur.Next()
	if !ok {
		return 0, Errorf(eq.Span, "missing value after `=`")
	}
	if lit.Kind == Punct && lit.Text == "-" {
		return 0, Errorf(lit.Span, "value must be a non-negative integer")
	}
	if lit.Kind != Number {
		return 0, Errorf(lit.Span, "expected integer, found %q", lit.Text)
	}
	n, err := strconv.Atoi(lit.Text)
	if err != nil {
		return 0, Errorf(lit.Span, "invalid integer %q", lit.Text)
	}
	return n, nil
}
