// Package sanitize provides the small runtime the generated constructors
// call for their sanitization steps. Everything here is a pure
// value-in/value-out transformation so generated code stays trivially
// testable.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string { return strings.TrimSpace(s) }

// Lower converts the value to lower case.
func Lower(s string) string { return strings.ToLower(s) }

// Upper converts the value to upper case.
func Upper(s string) string { return strings.ToUpper(s) }

// CollapseWhitespace trims the value and folds internal whitespace runs into
// a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Apply runs the transforms over value in order. It is the composition
// helper for custom sanitizer expressions that chain several steps.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose builds a reusable pipeline from the given transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// StripHTML removes every HTML element and attribute from the value. It is
// intended as a custom sanitizer (`with = sanitize.StripHTML`) for text
// newtypes that must never carry markup.
func StripHTML(s string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy.Sanitize(s)
}
