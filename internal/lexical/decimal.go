package lexical

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DecimalErrKind identifies a decimal lexical failure.
type DecimalErrKind uint8

const (
	DecimalInvalid DecimalErrKind = iota
	DecimalEmpty
	DecimalBadChar
	DecimalMultipleSigns
	DecimalMultipleDots
	DecimalNoDigits
	DecimalNotFinite
)

// String returns a stable label for the failure kind.
func (k DecimalErrKind) String() string {
	switch k {
	case DecimalEmpty:
		return "empty"
	case DecimalBadChar:
		return "bad character"
	case DecimalMultipleSigns:
		return "multiple signs"
	case DecimalMultipleDots:
		return "multiple dots"
	case DecimalNoDigits:
		return "no digits"
	case DecimalNotFinite:
		return "not finite"
	default:
		return "invalid"
	}
}

// DecimalError reports a decimal lexical failure.
type DecimalError struct {
	Kind  DecimalErrKind
	Input string
}

func (e *DecimalError) Error() string {
	return fmt.Sprintf("invalid decimal %q: %s", e.Input, e.Kind)
}

// CheckDecimal validates an unexponented decimal lexical form: optional sign,
// digits, at most one dot. The caller keeps the text as given.
func CheckDecimal(lexical string) error {
	if lexical == "" {
		return &DecimalError{Kind: DecimalEmpty}
	}
	digits := 0
	dots := 0
	for i := 0; i < len(lexical); i++ {
		ch := lexical[i]
		switch {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.':
			dots++
			if dots > 1 {
				return &DecimalError{Kind: DecimalMultipleDots, Input: lexical}
			}
		case ch == '+' || ch == '-':
			if i != 0 {
				if lexical[0] == '+' || lexical[0] == '-' {
					return &DecimalError{Kind: DecimalMultipleSigns, Input: lexical}
				}
				return &DecimalError{Kind: DecimalBadChar, Input: lexical}
			}
		default:
			return &DecimalError{Kind: DecimalBadChar, Input: lexical}
		}
	}
	if digits == 0 {
		return &DecimalError{Kind: DecimalNoDigits, Input: lexical}
	}
	return nil
}

// FormatFloat renders f with the shortest text that parses back to f, always
// keeping a fractional part: 120.0 renders "120.0", 0.1 renders "0.1".
// Output is always positional since the wire form has no exponent, so 1e21
// renders "1000000000000000000000.0".
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &DecimalError{Kind: DecimalNotFinite, Input: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}
