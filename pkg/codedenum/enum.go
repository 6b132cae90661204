// Package codedenum implements closed enumerations whose members carry two
// independent textual forms: a lenient parse key used when constructing
// values (member name or legacy numeric value) and a wire code used only when
// encoding and decoding documents. The two forms may diverge freely, and every
// lookup table is scoped to one Enum, so unrelated enumerations may reuse codes.
package codedenum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jacoelho/spb/internal/lexical"
)

// Def declares one member.
type Def[E comparable] struct {
	// Member is the Go value of the member.
	Member E
	// Name is the symbolic name; matched case-insensitively by Parse.
	Name string
	// Value is the declared value. When it is all digits it doubles as a
	// legacy numeric code for Parse.
	Value string
	// Wire is the protocol code written to and read from documents.
	Wire string
}

// Enum is an immutable coded enumeration.
type Enum[E comparable] struct {
	name    string
	defs    []Def[E]
	byName  map[string]int
	byNum   map[int64]int
	byText  map[string]int
	byWire  map[string]int
	byValue map[E]int
}

// UnknownMemberError reports input that matches no member.
type UnknownMemberError struct {
	Enum  string
	Input string
	// Wire is set when the input was a wire code.
	Wire bool
}

func (e *UnknownMemberError) Error() string {
	if e.Wire {
		return fmt.Sprintf("%s: no member for wire code %q", e.Enum, e.Input)
	}
	return fmt.Sprintf("%s: no member matches %q", e.Enum, e.Input)
}

// New builds an enumeration. Names, numeric values, wire codes, and members
// must each be unique within the enumeration.
func New[E comparable](name string, defs ...Def[E]) (*Enum[E], error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("enum %s: no members", name)
	}
	e := &Enum[E]{
		name:    name,
		defs:    append([]Def[E](nil), defs...),
		byName:  make(map[string]int, len(defs)),
		byNum:   make(map[int64]int, len(defs)),
		byText:  make(map[string]int, len(defs)),
		byWire:  make(map[string]int, len(defs)),
		byValue: make(map[E]int, len(defs)),
	}
	for i, d := range e.defs {
		key := strings.ToUpper(strings.TrimSpace(d.Name))
		if key == "" {
			return nil, fmt.Errorf("enum %s: member %d has no name", name, i)
		}
		if _, dup := e.byName[key]; dup {
			return nil, fmt.Errorf("enum %s: duplicate name %s", name, d.Name)
		}
		e.byName[key] = i

		if _, dup := e.byWire[d.Wire]; dup {
			return nil, fmt.Errorf("enum %s: duplicate wire code %q", name, d.Wire)
		}
		e.byWire[d.Wire] = i

		if _, dup := e.byValue[d.Member]; dup {
			return nil, fmt.Errorf("enum %s: member %s declared twice", name, d.Name)
		}
		e.byValue[d.Member] = i

		if n, ok := numericKey(d.Value); ok {
			if _, dup := e.byNum[n]; dup {
				return nil, fmt.Errorf("enum %s: duplicate value %s", name, d.Value)
			}
			e.byNum[n] = i
		} else if text := strings.ToUpper(strings.TrimSpace(d.Value)); text != "" {
			if _, dup := e.byText[text]; dup {
				return nil, fmt.Errorf("enum %s: duplicate value %s", name, d.Value)
			}
			e.byText[text] = i
		}
	}
	return e, nil
}

// MustNew is New for package-level declarations; it panics on a malformed
// declaration.
func MustNew[E comparable](name string, defs ...Def[E]) *Enum[E] {
	e, err := New(name, defs...)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the enumeration name.
func (e *Enum[E]) String() string {
	return e.name
}

// Parse resolves input to a member, trying in order: input already being a
// member, the upper-cased trimmed text against member names, then against
// mnemonic member values, and an all-digit text (or integer) against numeric
// member values.
func (e *Enum[E]) Parse(input any) (E, error) {
	if m, ok := e.Lookup(input); ok {
		return m, nil
	}
	var zero E
	return zero, &UnknownMemberError{Enum: e.name, Input: fmt.Sprint(input)}
}

// Lookup is Parse for optional-field coercion: a miss returns false instead
// of an error. An all-digit text that matches no numeric member is a miss,
// not a fault.
func (e *Enum[E]) Lookup(input any) (E, bool) {
	var zero E
	switch v := input.(type) {
	case E:
		if _, ok := e.byValue[v]; ok {
			return v, true
		}
		// an undeclared value of the member type is retried as text
		return e.lookupText(fmt.Sprint(v))
	case string:
		return e.lookupText(v)
	case int:
		return e.lookupNumber(int64(v))
	case int64:
		return e.lookupNumber(v)
	}
	return zero, false
}

func (e *Enum[E]) lookupText(s string) (E, bool) {
	trimmed := strings.TrimSpace(s)
	key := strings.ToUpper(trimmed)
	if i, ok := e.byName[key]; ok {
		return e.defs[i].Member, true
	}
	if i, ok := e.byText[key]; ok {
		return e.defs[i].Member, true
	}
	if lexical.IsDigits(trimmed) {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return e.lookupNumber(n)
		}
	}
	var zero E
	return zero, false
}

func (e *Enum[E]) lookupNumber(n int64) (E, bool) {
	if i, ok := e.byNum[n]; ok {
		return e.defs[i].Member, true
	}
	var zero E
	return zero, false
}

// ToWire returns the wire code of m.
func (e *Enum[E]) ToWire(m E) (string, error) {
	i, ok := e.byValue[m]
	if !ok {
		return "", &UnknownMemberError{Enum: e.name, Input: fmt.Sprint(m)}
	}
	return e.defs[i].Wire, nil
}

// FromWire returns the member whose wire code is code.
func (e *Enum[E]) FromWire(code string) (E, error) {
	i, ok := e.byWire[code]
	if !ok {
		var zero E
		return zero, &UnknownMemberError{Enum: e.name, Input: code, Wire: true}
	}
	return e.defs[i].Member, nil
}

// Name returns the declared name of m, or "" for a non-member.
func (e *Enum[E]) Name(m E) string {
	if i, ok := e.byValue[m]; ok {
		return e.defs[i].Name
	}
	return ""
}

// Value returns the declared value of m, or "" for a non-member.
func (e *Enum[E]) Value(m E) string {
	if i, ok := e.byValue[m]; ok {
		return e.defs[i].Value
	}
	return ""
}

// Contains reports whether m is a declared member.
func (e *Enum[E]) Contains(m E) bool {
	_, ok := e.byValue[m]
	return ok
}

// Members returns the members in declaration order.
func (e *Enum[E]) Members() []E {
	out := make([]E, len(e.defs))
	for i, d := range e.defs {
		out[i] = d.Member
	}
	return out
}

// Defs returns a copy of the member declarations.
func (e *Enum[E]) Defs() []Def[E] {
	return append([]Def[E](nil), e.defs...)
}

func numericKey(value string) (int64, bool) {
	v := strings.TrimSpace(value)
	if !lexical.IsDigits(v) {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
