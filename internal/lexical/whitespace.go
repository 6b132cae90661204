package lexical

import "strings"

// whitespace is the XML whitespace set: space, tab, carriage return, newline.
const whitespace = " \t\r\n"

// TrimWhitespace removes leading and trailing XML whitespace. Other Unicode
// spaces are kept, since the counterparties treat them as content.
func TrimWhitespace(in string) string {
	return strings.Trim(in, whitespace)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
