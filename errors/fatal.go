package errors

import (
	"errors"
	"fmt"
)

// StructuralMismatchError reports a document whose root, body, or message
// element does not match the schema being decoded. It is never aggregated.
type StructuralMismatchError struct {
	Expected string
	Actual   string
	Path     string
}

func (e *StructuralMismatchError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "<none>"
	}
	if e.Path == "" {
		return fmt.Sprintf("[%s] expected element %s, found %s", ErrStructuralMismatch, e.Expected, actual)
	}
	return fmt.Sprintf("[%s] expected element %s at %s, found %s", ErrStructuralMismatch, e.Expected, e.Path, actual)
}

// ParseError wraps a failure to turn document text into a tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] %v", ErrXMLParse, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MessageNotImplementedError reports a registry lookup miss.
type MessageNotImplementedError struct {
	Code    string
	Version string
}

func (e *MessageNotImplementedError) Error() string {
	return fmt.Sprintf("[%s] message %s version %s is not implemented", ErrMessageNotImplemented, e.Code, e.Version)
}

// DuplicateRegistrationError reports a second registration of the same code and version.
type DuplicateRegistrationError struct {
	Code    string
	Version string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("[%s] message %s version %s is already registered", ErrDuplicateRegistration, e.Code, e.Version)
}

// BaseLocationNotFoundError reports a schema that declares no field bindings.
type BaseLocationNotFoundError struct {
	Schema string
}

func (e *BaseLocationNotFoundError) Error() string {
	return fmt.Sprintf("[%s] schema %s declares no field locations", ErrBaseLocationNotFound, e.Schema)
}

// InconsistentGroupPrefixError reports a group member bound outside the group's prefix.
type InconsistentGroupPrefixError struct {
	Schema string
	Group  string
	Prefix string
	Field  string
	Path   string
}

func (e *InconsistentGroupPrefixError) Error() string {
	return fmt.Sprintf("[%s] schema %s group %s: field %s at %s is outside prefix %s",
		ErrInconsistentGroupPrefix, e.Schema, e.Group, e.Field, e.Path, e.Prefix)
}

// SchemaError reports a schema declaration that cannot be walked, such as two
// fields bound to one location or a rule naming an undeclared field.
type SchemaError struct {
	Schema string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Schema, e.Reason)
}

// Code returns the error code carried by err, or "" when err is not one of
// this package's errors.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var (
		structural *StructuralMismatchError
		parse      *ParseError
		missing    *MessageNotImplementedError
		duplicate  *DuplicateRegistrationError
		base       *BaseLocationNotFoundError
		prefix     *InconsistentGroupPrefixError
	)
	switch {
	case errors.As(err, &structural):
		return ErrStructuralMismatch
	case errors.As(err, &parse):
		return ErrXMLParse
	case errors.As(err, &missing):
		return ErrMessageNotImplemented
	case errors.As(err, &duplicate):
		return ErrDuplicateRegistration
	case errors.As(err, &base):
		return ErrBaseLocationNotFound
	case errors.As(err, &prefix):
		return ErrInconsistentGroupPrefix
	}
	if list, ok := asValidationList(err); ok && len(list) > 0 {
		return ErrorCode(list[0].Code)
	}
	return ""
}

// IsFatal reports whether err aborts a decode without a per-field walk.
func IsFatal(err error) bool {
	switch Code(err) {
	case ErrStructuralMismatch, ErrXMLParse:
		return true
	default:
		return false
	}
}
