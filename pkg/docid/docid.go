// Package docid validates Brazilian taxpayer identity documents: CPF for
// individuals and CNPJ for businesses. Both use two mod-11 check digits.
package docid

import "github.com/jacoelho/spb/internal/lexical"

// Kind names the document family.
type Kind string

const (
	// Individual selects CPF validation (11 digits).
	Individual Kind = "individual"
	// Business selects CNPJ validation (14 digits).
	Business Kind = "business"
)

// Checker decides whether digits form a valid document of the given kind.
type Checker interface {
	IsValid(kind Kind, digits string) bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(kind Kind, digits string) bool

// IsValid calls f.
func (f CheckerFunc) IsValid(kind Kind, digits string) bool {
	return f(kind, digits)
}

// Default is the checksum-based Checker.
var Default Checker = CheckerFunc(IsValid)

var (
	cnpjFirst  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecond = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsValid reports whether digits is a well-formed document of kind. A CPF
// may arrive left-padded with zeros to the 14-position field width.
func IsValid(kind Kind, digits string) bool {
	if !lexical.IsDigits(digits) {
		return false
	}
	switch kind {
	case Individual:
		if len(digits) == 14 && digits[:3] == "000" {
			digits = digits[3:]
		}
		return validCPF(digits)
	case Business:
		return validCNPJ(digits)
	default:
		return false
	}
}

func validCPF(d string) bool {
	if len(d) != 11 || repeated(d) {
		return false
	}
	return cpfDigit(d, 9) == int(d[9]-'0') && cpfDigit(d, 10) == int(d[10]-'0')
}

func cpfDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	r := sum * 10 % 11
	if r == 10 {
		return 0
	}
	return r
}

func validCNPJ(d string) bool {
	if len(d) != 14 || repeated(d) {
		return false
	}
	return cnpjDigit(d, cnpjFirst) == int(d[12]-'0') && cnpjDigit(d, cnpjSecond) == int(d[13]-'0')
}

func cnpjDigit(d string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(d[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
