package token

import "fmt"

// Kind discriminates the lexical categories produced by Scan.
type Kind uint8

const (
	// Ident is an identifier such as a rule or group name.
	Ident Kind = iota
	// Number is an unsigned decimal literal.
	Number
	// Punct is a single punctuation rune such as `,`, `=`, `(` or `-`.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Punct:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range into the directive payload a token or rule
// was scanned from. Spans survive every pipeline stage so diagnostics can
// point at the exact offending token.
type Span struct {
	Start int
	End   int
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Token is a single lexical unit of a newtype directive payload.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

// IsComma reports whether the token is a `,` separator.
func IsComma(t Token) bool { return t.Kind == Punct && t.Text == "," }

// IsEquals reports whether the token is a `=` sign.
func IsEquals(t Token) bool { return t.Kind == Punct && t.Text == "=" }

// IsIdent reports whether the token is an identifier with the given text.
func IsIdent(t Token, text string) bool { return t.Kind == Ident && t.Text == text }

// Error is a diagnostic carrying the span of the token that caused it.
// Callers that know the enclosing file position wrap it into a located
// message; the error text itself stays position free.
type Error struct {
	Span    Span
	Message string
}

func (e *Error) Error() string { return e.Message }

// Errorf builds a span-attributed Error.
func Errorf(span Span, format string, args ...any) *Error {
	return &Error{Span: span, Message: fmt.Sprintf(format, args...)}
}
