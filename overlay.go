package spb

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jacoelho/spb/errors"
)

// ErrorCodes holds the error codes of an overlay document: one general code
// for the message and one optional code per field. Group members are keyed
// Group[i].Field.
type ErrorCodes struct {
	General string
	Fields  map[string]string
}

// Set records code for field.
func (e *ErrorCodes) Set(field, code string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = code
}

// Field returns the code recorded for field, or "".
func (e *ErrorCodes) Field(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

// Member returns the code recorded for field of entry i of group.
func (e *ErrorCodes) Member(group string, i int, field string) string {
	return e.Field(memberKey(group, i, field))
}

// Overlaid is a message together with its error codes, the value type of an
// overlay schema.
type Overlaid[M any] struct {
	Message M
	Errors  ErrorCodes
}

// Overlay derives the error overlay of base: the same fields at the same
// locations, plus a CodErro attribute on each field element and on the
// message element. The tag defaults to the base code plus "E"; only
// WithTag and WithNamespace apply.
func Overlay[M any](base *Schema[M], opts ...Option) (*Schema[Overlaid[M]], error) {
	if base.overlay {
		return nil, &errors.SchemaError{Schema: base.code, Reason: "schema is already an overlay"}
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	tag := cmp.Or(o.tag, base.code+"E")
	s := &Schema[Overlaid[M]]{
		code:      tag,
		tag:       tag,
		namespace: cmp.Or(o.namespace, base.namespace),
		overlay:   true,
		upper:     base.upper,
		checker:   base.checker,
		fields:    base.fields,
		byName:    base.byName,
		rules:     base.rules,
		control:   func(v *Overlaid[M]) *Control { return base.control(&v.Message) },
		body:      func(v *Overlaid[M]) any { return base.body(&v.Message) },
		errs:      func(v *Overlaid[M]) *ErrorCodes { return &v.Errors },
	}
	if err := s.checkCompanions(); err != nil {
		return nil, err
	}
	s.walk = s.buildWalk()
	return s, nil
}

// MustOverlay is Overlay for static catalogs; it panics on error.
func MustOverlay[M any](base *Schema[M], opts ...Option) *Schema[Overlaid[M]] {
	s, err := Overlay(base, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// checkCompanions rejects layouts where two error codes would land on the
// same element: fields sharing an element, or a field on the message element.
func (s *Schema[M]) checkCompanions() error {
	owner := make(map[string]string)
	claim := func(scope string, b *binding) error {
		if scope == "" && len(b.loc.path) == 0 {
			return &errors.SchemaError{
				Schema: s.code,
				Reason: fmt.Sprintf("field %s is bound to the message element, which carries the general error code", b.name),
			}
		}
		key := scope + "/" + strings.Join(b.loc.path, "/")
		if prev, ok := owner[key]; ok {
			return &errors.SchemaError{
				Schema: s.code,
				Reason: fmt.Sprintf("fields %s and %s share the error code of element %s", prev, b.name, key),
			}
		}
		owner[key] = b.name
		return nil
	}
	for _, b := range s.fields {
		if b.group == nil {
			if err := claim("", b); err != nil {
				return err
			}
			continue
		}
		for _, m := range b.group.fields {
			if err := claim(b.name, m); err != nil {
				return err
			}
		}
	}
	return nil
}
