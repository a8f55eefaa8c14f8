package model

import "github.com/goliatone/go-newtype/pkg/token"

// TextSanitizerKind enumerates the text-family sanitizers.
type TextSanitizerKind uint8

const (
	SanitizerTrim TextSanitizerKind = iota
	SanitizerLowercase
	SanitizerUppercase
	// SanitizerCustom applies a caller-supplied expression of type
	// func(string) string. The expression is forwarded to emission verbatim
	// and never interpreted here.
	SanitizerCustom
)

func (k TextSanitizerKind) String() string {
	switch k {
	case SanitizerTrim:
		return "trim"
	case SanitizerLowercase:
		return "lowercase"
	case SanitizerUppercase:
		return "uppercase"
	case SanitizerCustom:
		return "with"
	default:
		return "unknown"
	}
}

// TextSanitizer is one sanitization step for a text newtype. Custom holds
// the raw source text of a `with = <expr>` payload together with its tokens.
type TextSanitizer struct {
	Kind         TextSanitizerKind
	Custom       string
	CustomTokens []token.Token
}

// TextValidatorKind enumerates the text-family validators.
type TextValidatorKind uint8

const (
	ValidatorMaxLen TextValidatorKind = iota
	ValidatorMinLen
	ValidatorPresent
)

func (k TextValidatorKind) String() string {
	switch k {
	case ValidatorMaxLen:
		return "max_len"
	case ValidatorMinLen:
		return "min_len"
	case ValidatorPresent:
		return "present"
	default:
		return "unknown"
	}
}

// TextValidator is one validation rule for a text newtype. Value is only
// meaningful for the length rules.
type TextValidator struct {
	Kind  TextValidatorKind
	Value int
}

// RawTextRules is the parsed but not yet validated rule set for one text
// target. Both sequences preserve declaration order and are append-only
// during parsing; validation consumes them exactly once.
type RawTextRules struct {
	Sanitizers []Spanned[TextSanitizer]
	Validators []Spanned[TextValidator]
}

// TextModel is the validated rule set for a text target. An empty validator
// sequence means construction cannot fail and the generated constructor must
// be infallible.
type TextModel struct {
	Sanitizers []Spanned[TextSanitizer]
	Validators []Spanned[TextValidator]
}

// Fallible reports whether the generated constructor can reject its input.
func (m TextModel) Fallible() bool { return len(m.Validators) > 0 }

// NumericSanitizer is one sanitization step for a numeric newtype. Only
// custom expressions are supported for numbers.
type NumericSanitizer struct {
	Custom       string
	CustomTokens []token.Token
}

// NumericValidatorKind enumerates the numeric-family validators.
type NumericValidatorKind uint8

const (
	ValidatorMax NumericValidatorKind = iota
	ValidatorMin
)

func (k NumericValidatorKind) String() string {
	switch k {
	case ValidatorMax:
		return "max"
	case ValidatorMin:
		return "min"
	default:
		return "unknown"
	}
}

// NumericValidator is one validation rule for a numeric newtype. Bounds may
// be negative for signed kinds.
type NumericValidator struct {
	Kind  NumericValidatorKind
	Value int
}

// RawNumericRules is the parsed but not yet validated rule set for one
// numeric target.
type RawNumericRules struct {
	Sanitizers []Spanned[NumericSanitizer]
	Validators []Spanned[NumericValidator]
}

// NumericModel is the validated rule set for a numeric target.
type NumericModel struct {
	Sanitizers []Spanned[NumericSanitizer]
	Validators []Spanned[NumericValidator]
}

// Fallible reports whether the generated constructor can reject its input.
func (m NumericModel) Fallible() bool { return len(m.Validators) > 0 }
