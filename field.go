package spb

import (
	"slices"
	"strconv"
)

// FieldDef declares one binding of message type M: a scalar field, an
// optional scalar field, or a repeatable group. Build it with Field, Optional,
// or Group.
type FieldDef[M any] struct {
	b *binding
}

// Name returns the declared field name.
func (f FieldDef[M]) Name() string {
	if f.b == nil {
		return ""
	}
	return f.b.name
}

// binding is the type-erased form of a FieldDef. Every function takes a
// pointer to the value that declares the field (*M or a group record *R).
type binding struct {
	name     string
	loc      Location
	kind     string
	required bool

	// text renders the wire text; set is false when the value is absent.
	text      func(p any) (s string, set bool, err error)
	assign    func(p any, text string) error
	normalize func(p any, opts normalizeOptions)

	group *groupOps
}

type groupOps struct {
	fields []*binding
	length func(p any) int
	item   func(p any, i int) any
	add    func(p any) any
	reset  func(p any)
	detach func(p any)
}

// Field declares a required scalar. get returns the address of the field
// inside the message; a value the codec treats as unset is reported missing.
func Field[M, T any](name string, loc Location, c Codec[T], get func(*M) *T) FieldDef[M] {
	return FieldDef[M]{b: &binding{
		name:     name,
		loc:      loc,
		kind:     c.kind,
		required: true,
		text: func(p any) (string, bool, error) {
			v := *get(p.(*M))
			if c.isUnset(v) {
				return "", false, nil
			}
			s, err := c.Format(v)
			return s, true, err
		},
		assign: func(p any, text string) error {
			v, err := c.Parse(text)
			if err != nil {
				return err
			}
			*get(p.(*M)) = v
			return nil
		},
		normalize: func(p any, opts normalizeOptions) {
			ptr := get(p.(*M))
			*ptr = c.normalized(*ptr, opts)
		},
	}}
}

// Optional declares a scalar that may be absent. A nil pointer is absent and
// produces no element. A pointer to empty text is present and produces an
// empty element.
func Optional[M, T any](name string, loc Location, c Codec[T], get func(*M) **T) FieldDef[M] {
	return FieldDef[M]{b: &binding{
		name: name,
		loc:  loc,
		kind: c.kind,
		text: func(p any) (string, bool, error) {
			v := *get(p.(*M))
			if v == nil || (!c.emptyPresent && c.isUnset(*v)) {
				return "", false, nil
			}
			s, err := c.Format(*v)
			return s, true, err
		},
		assign: func(p any, text string) error {
			v, err := c.Parse(text)
			if err != nil {
				return err
			}
			*get(p.(*M)) = &v
			return nil
		},
		normalize: func(p any, opts normalizeOptions) {
			ptr := get(p.(*M))
			if *ptr == nil {
				return
			}
			// A fresh pointer keeps the caller's value untouched.
			v := c.normalized(**ptr, opts)
			*ptr = &v
		},
	}}
}

// Record is the field set of one repeated group entry of type R. Member
// locations are relative to the message element and must start with the
// group's own location.
type Record[R any] struct {
	fields []*binding
}

// NewRecord declares the fields of a group entry.
func NewRecord[R any](fields ...FieldDef[R]) Record[R] {
	r := Record[R]{fields: make([]*binding, 0, len(fields))}
	for _, f := range fields {
		r.fields = append(r.fields, f.b)
	}
	return r
}

// Group declares a repeatable group: one sibling element at loc per entry of
// the slice returned by get, in slice order. An empty slice writes nothing.
func Group[M, R any](name string, loc Location, rec Record[R], get func(*M) *[]R) FieldDef[M] {
	slice := func(p any) *[]R { return get(p.(*M)) }
	return FieldDef[M]{b: &binding{
		name: name,
		loc:  loc,
		kind: "group",
		group: &groupOps{
			fields: rec.fields,
			length: func(p any) int { return len(*slice(p)) },
			item:   func(p any, i int) any { return &(*slice(p))[i] },
			add: func(p any) any {
				s := slice(p)
				var zero R
				*s = append(*s, zero)
				return &(*s)[len(*s)-1]
			},
			reset: func(p any) { *slice(p) = nil },
			detach: func(p any) {
				s := slice(p)
				*s = slices.Clone(*s)
			},
		},
	}}
}

// memberKey names field of entry i of group, as used in presence sets,
// violation reports, and overlay error maps.
func memberKey(group string, i int, field string) string {
	return group + "[" + strconv.Itoa(i) + "]." + field
}
