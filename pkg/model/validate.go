package model

import "github.com/goliatone/go-newtype/pkg/token"

// ValidateText performs semantic validation over a parsed text rule set.
// It rejects duplicate occurrences of single-occurrence rules at the span of
// the second occurrence and an unsatisfiable max_len/min_len combination at
// the span of whichever bound was declared second. Sanitizers pass through
// unchanged; order is preserved on both sequences.
func ValidateText(raw RawTextRules) (TextModel, error) {
	seen := make(map[TextValidatorKind]token.Span, len(raw.Validators))
	var (
		maxLen, minLen       *int
		maxLenIdx, minLenIdx int
	)
	for i, v := range raw.Validators {
		if _, dup := seen[v.Item.Kind]; dup {
			return TextModel{}, token.Errorf(v.Span, "duplicate %q rule", v.Item.Kind)
		}
		seen[v.Item.Kind] = v.Span

		switch v.Item.Kind {
		case ValidatorMaxLen:
			value := v.Item.Value
			maxLen, maxLenIdx = &value, i
		case ValidatorMinLen:
			value := v.Item.Value
			minLen, minLenIdx = &value, i
		}
	}

	if maxLen != nil && minLen != nil && *maxLen < *minLen {
		second := raw.Validators[maxLenIdx]
		if minLenIdx > maxLenIdx {
			second = raw.Validators[minLenIdx]
		}
		return TextModel{}, token.Errorf(second.Span,
			"max_len (%d) cannot be smaller than min_len (%d)", *maxLen, *minLen)
	}

	return TextModel{Sanitizers: raw.Sanitizers, Validators: raw.Validators}, nil
}

// ValidateNumeric performs semantic validation over a parsed numeric rule
// set with the same duplicate and range policies as the text family.
func ValidateNumeric(raw RawNumericRules) (NumericModel, error) {
	seen := make(map[NumericValidatorKind]token.Span, len(raw.Validators))
	var (
		max, min       *int
		maxIdx, minIdx int
	)
	for i, v := range raw.Validators {
		if _, dup := seen[v.Item.Kind]; dup {
			return NumericModel{}, token.Errorf(v.Span, "duplicate %q rule", v.Item.Kind)
		}
		seen[v.Item.Kind] = v.Span

		switch v.Item.Kind {
		case ValidatorMax:
			value := v.Item.Value
			max, maxIdx = &value, i
		case ValidatorMin:
			value := v.Item.Value
			min, minIdx = &value, i
		}
	}

	if max != nil && min != nil && *max < *min {
		second := raw.Validators[maxIdx]
		if minIdx > maxIdx {
			second = raw.Validators[minIdx]
		}
		return NumericModel{}, token.Errorf(second.Span,
			"max (%d) cannot be smaller than min (%d)", *max, *min)
	}

	return NumericModel{Sanitizers: raw.Sanitizers, Validators: raw.Validators}, nil
}
