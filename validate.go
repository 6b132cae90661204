package spb

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/internal/lexical"
	"github.com/jacoelho/spb/pkg/codedenum"
)

// maxAmountScale is the number of fraction digits an amount may carry.
const maxAmountScale = 2

// constraints checks the validate struct tags of message types. Violations
// are reported under the spb tag name of the field, so tags and bindings
// agree on names.
var constraints = newConstraintValidator()

func newConstraintValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("spb"), ",")
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(Decimal); ok {
			return d.String()
		}
		return nil
	}, Decimal{})
	if err := v.RegisterValidation("amount", validAmount); err != nil {
		panic(err)
	}
	return v
}

// validAmount accepts non-negative decimals with at most two fraction digits.
func validAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Exponent() >= -maxAmountScale
}

// presence records which fields a decoded document carried, keyed by field
// name or memberKey. A nil presence means the value was built in code and the
// codec's unset test decides required-ness.
type presence map[string]bool

func (p presence) has(key string, set bool) bool {
	if p == nil {
		return set
	}
	return p[key]
}

// Validate normalizes a copy of m and reports every violation in one
// errors.ValidationList. It returns nil when m is valid.
func (s *Schema[M]) Validate(m *M) error {
	if m == nil {
		return errors.ValidationList{errors.NewValidation(errors.ErrMissingField, "", "nil message")}
	}
	v := s.Normalize(*m)
	if list := s.check(&v, nil); len(list) > 0 {
		return list
	}
	return nil
}

// Normalize returns a copy of m with text trimmed and case rules applied.
// m itself is not modified.
func (s *Schema[M]) Normalize(m M) M {
	opts := normalizeOptions{upper: s.upper}
	for _, f := range s.control(&m).fields() {
		*f.ptr = lexical.TrimWhitespace(*f.ptr)
	}
	body := s.body(&m)
	for _, b := range s.fields {
		if b.group == nil {
			b.normalize(body, opts)
			continue
		}
		b.group.detach(body)
		for i := range b.group.length(body) {
			item := b.group.item(body, i)
			for _, f := range b.group.fields {
				f.normalize(item, opts)
			}
		}
	}
	return m
}

// check runs the whole validation engine over a normalized message.
func (s *Schema[M]) check(m *M, present presence) errors.ValidationList {
	var out errors.ValidationList
	ctl := s.control(m)
	for _, f := range ctl.fields() {
		if !present.has(f.name, *f.ptr != "") {
			v := errors.NewValidation(errors.ErrMissingField, f.name, "required field is missing")
			v.Path = strings.Join([]string{RootElement, ControlElement, f.name}, "/")
			out = append(out, v)
		}
	}

	body := s.body(m)
	for _, b := range s.fields {
		if b.group == nil {
			out = s.checkField(out, b, body, b.name, s.location(b, nil, 0), present)
			continue
		}
		for i := range b.group.length(body) {
			item := b.group.item(body, i)
			for _, f := range b.group.fields {
				out = s.checkField(out, f, item, memberKey(b.name, i, f.name), s.location(f, b, i), present)
			}
		}
	}

	out = append(out, s.checkConstraints(body)...)
	for _, rule := range s.rules {
		for _, v := range rule(body, s.checker) {
			if b := s.byName[v.Field]; b != nil {
				v.Path = s.location(b, nil, 0)
			}
			out = append(out, v)
		}
	}
	return out
}

func (s *Schema[M]) checkField(out errors.ValidationList, b *binding, p any, key, path string, present presence) errors.ValidationList {
	text, set, err := b.text(p)
	if err != nil {
		return append(out, valueViolation(key, path, text, err))
	}
	if b.required && !present.has(key, set) {
		v := errors.NewValidation(errors.ErrMissingField, key, "required field is missing")
		v.Path = path
		out = append(out, v)
	}
	return out
}

func (s *Schema[M]) checkConstraints(body any) errors.ValidationList {
	err := constraints.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ValidationList{errors.NewValidationf(errors.ErrFieldConstraint, "", "constraint check: %v", err)}
	}
	out := make(errors.ValidationList, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		v := errors.NewValidationf(errors.ErrFieldConstraint, constraintField(fe.Namespace()), "violates %s", rule)
		v.Actual = fmt.Sprint(fe.Value())
		if b := s.byName[v.Field]; b != nil {
			v.Path = s.location(b, nil, 0)
		}
		out = append(out, v)
	}
	return out
}

// constraintField turns a validator namespace such as STR0008.Control.NUOp or
// GEN0014.Grupo_GEN0014_Msg[1].CodMsg into the field key used in reports.
func constraintField(ns string) string {
	_, field, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return strings.TrimPrefix(field, "Control.")
}

// valueViolation classifies a coercion failure of one field.
func valueViolation(key, path, text string, err error) errors.Validation {
	code := errors.ErrInvalidValue
	var unknown *codedenum.UnknownMemberError
	if stderrors.As(err, &unknown) {
		code = errors.ErrUnknownMember
	}
	v := errors.NewValidationf(code, key, "%v", err)
	v.Path = path
	v.Actual = text
	return v
}
