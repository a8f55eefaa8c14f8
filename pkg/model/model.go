// Package model holds the rule descriptors shared by the directive parsers
// and the code generator: the raw, span-attributed rule sequences produced by
// parsing and the semantically validated counterparts consumed by emission.
package model

import "github.com/goliatone/go-newtype/pkg/token"

// Spanned attaches the originating source span to a parsed rule so
// diagnostics raised after parsing still point at the exact token.
type Spanned[T any] struct {
	Span token.Span
	Item T
}

// TypeDescriptor identifies one generation target: the wrapper type's name
// and the classified kind of its single embedded field. It is created once
// per target and never mutated.
type TypeDescriptor struct {
	Name  string
	Inner InnerKind
}
