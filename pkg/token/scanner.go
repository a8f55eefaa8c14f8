package token

import (
	"unicode"
	"unicode/utf8"
)

// Scan tokenizes a directive payload into identifiers, unsigned decimal
// literals and single-rune punctuation. Whitespace separates tokens and is
// otherwise discarded. Every token carries the byte span it was read from so
// later stages can attribute diagnostics to the original source.
func Scan(src string) ([]Token, error) {
	var out []Token
	off := 0
	for off < len(src) {
		r, size := utf8.DecodeRuneInString(src[off:])
		switch {
		case unicode.IsSpace(r):
			off += size
		case r == '_' || unicode.IsLetter(r):
			start := off
			off += size
			for off < len(src) {
				r, size = utf8.DecodeRuneInString(src[off:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				off += size
			}
			out = append(out, Token{Kind: Ident, Text: src[start:off], Span: Span{Start: start, End: off}})
		case r >= '0' && r <= '9':
			start := off
			for off < len(src) && src[off] >= '0' && src[off] <= '9' {
				off++
			}
			out = append(out, Token{Kind: Number, Text: src[start:off], Span: Span{Start: start, End: off}})
		case unicode.IsControl(r) || r == utf8.RuneError:
			return nil, Errorf(Span{Start: off, End: off + size}, "invalid character in directive")
		default:
			out = append(out, Token{Kind: Punct, Text: src[off : off+size], Span: Span{Start: off, End: off + size}})
			off += size
		}
	}
	return out, nil
}
