package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the class of a codec or validation failure.
type ErrorCode string

const (
	// ErrXMLParse indicates the document text could not be parsed into a tree.
	ErrXMLParse ErrorCode = "XML_PARSE"
	// ErrStructuralMismatch indicates the root, body, or message element is not the expected one.
	ErrStructuralMismatch ErrorCode = "STRUCTURAL_MISMATCH"

	// ErrMissingField indicates a required field is absent.
	ErrMissingField ErrorCode = "MISSING_FIELD"
	// ErrInvalidValue indicates a field's text could not be coerced to its type.
	ErrInvalidValue ErrorCode = "INVALID_VALUE"
	// ErrUnknownMember indicates an enumeration code matched no member.
	ErrUnknownMember ErrorCode = "UNKNOWN_MEMBER"
	// ErrFieldConstraint indicates a field violated a declared length or format constraint.
	ErrFieldConstraint ErrorCode = "FIELD_CONSTRAINT"
	// ErrBusinessRule indicates a conditional cross-field rule failed.
	ErrBusinessRule ErrorCode = "BUSINESS_RULE"

	// ErrMessageNotImplemented indicates no schema is registered for a code and version.
	ErrMessageNotImplemented ErrorCode = "MESSAGE_NOT_IMPLEMENTED"
	// ErrDuplicateRegistration indicates a code and version were registered twice.
	ErrDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"
	// ErrBaseLocationNotFound indicates a schema declares no field bindings.
	ErrBaseLocationNotFound ErrorCode = "BASE_LOCATION_NOT_FOUND"
	// ErrInconsistentGroupPrefix indicates group members disagree on their shared prefix.
	ErrInconsistentGroupPrefix ErrorCode = "INCONSISTENT_GROUP_PREFIX"
)

// Validation describes a single per-field violation found while decoding or
// validating a message.
//
//nolint:errname // public API name uses the domain term.
type Validation struct {
	Code    string
	Field   string
	Message string
	Path    string
	Actual  string
}

// ValidationList is the aggregate error returned by decode and validation.
// It always carries the complete set of violations found in one pass.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Fields returns the offending field names in report order.
func (v ValidationList) Fields() []string {
	out := make([]string, 0, len(v))
	for i := range v {
		out = append(out, v[i].Field)
	}
	return out
}

// ByCode returns the violations carrying code.
func (v ValidationList) ByCode(code ErrorCode) ValidationList {
	var out ValidationList
	for i := range v {
		if v[i].Code == string(code) {
			out = append(out, v[i])
		}
	}
	return out
}

// Error formats the violation for display, including code, field, and context.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", v.Code, v.Message))
	if v.Field != "" {
		b.WriteString(fmt.Sprintf(" (field %s)", v.Field))
	}
	if v.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", v.Path))
	}
	if v.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", v.Actual))
	}
	return b.String()
}

// NewValidation builds a Validation with a code, field, and message.
func NewValidation(code ErrorCode, field, msg string) Validation {
	return Validation{Code: string(code), Field: field, Message: msg}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, field, format string, args ...any) Validation {
	return NewValidation(code, field, fmt.Sprintf(format, args...))
}

// AsValidations extracts validation errors from an error returned by decode or validation.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
