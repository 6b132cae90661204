package spb

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jacoelho/spb/internal/lexical"
	"github.com/jacoelho/spb/pkg/codedenum"
)

// Codec converts one scalar Go type to and from its wire text.
type Codec[T any] struct {
	kind      string
	format    func(T) (string, error)
	parse     func(string) (T, error)
	unset     func(T) bool
	normalize func(T, normalizeOptions) T

	// emptyPresent keeps a set optional holding the unset value on the
	// wire as an empty element.
	emptyPresent bool
}

type normalizeOptions struct {
	upper bool
}

// NewCodec builds a codec for a custom scalar. unset may be nil when every
// value of T counts as present.
func NewCodec[T any](kind string, format func(T) (string, error), parse func(string) (T, error), unset func(T) bool) Codec[T] {
	return Codec[T]{kind: kind, format: format, parse: parse, unset: unset}
}

// Kind names the scalar type, for diagnostics.
func (c Codec[T]) Kind() string {
	return c.kind
}

// Format renders v as wire text.
func (c Codec[T]) Format(v T) (string, error) {
	return c.format(v)
}

// Parse reads wire text.
func (c Codec[T]) Parse(s string) (T, error) {
	return c.parse(s)
}

func (c Codec[T]) isUnset(v T) bool {
	return c.unset != nil && c.unset(v)
}

func (c Codec[T]) normalized(v T, opts normalizeOptions) T {
	if c.normalize == nil {
		return v
	}
	return c.normalize(v, opts)
}

// Text is a plain string rendered verbatim. Values are trimmed during
// validation and upper-cased when the schema asks for it.
var Text = Codec[string]{
	kind:         "text",
	format:       func(s string) (string, error) { return s, nil },
	parse:        func(s string) (string, error) { return s, nil },
	unset:        func(s string) bool { return s == "" },
	emptyPresent: true,
	normalize: func(s string, opts normalizeOptions) string {
		s = lexical.TrimWhitespace(s)
		if opts.upper {
			s = upper(s)
		}
		return s
	},
}

// UpperText is Text that is always upper-cased, regardless of schema options.
var UpperText = Codec[string]{
	kind:         "upper-text",
	format:       Text.format,
	parse:        Text.parse,
	unset:        Text.unset,
	emptyPresent: true,
	normalize: func(s string, _ normalizeOptions) string {
		return upper(lexical.TrimWhitespace(s))
	},
}

// DecimalCodec renders a Decimal through its canonical text.
var DecimalCodec = Codec[Decimal]{
	kind:   "decimal",
	format: Decimal.format,
	parse:  NewDecimal,
	unset:  func(d Decimal) bool { return !d.IsSet() },
}

// DateCodec renders YYYY-MM-DD.
var DateCodec = Codec[Date]{
	kind:   "date",
	format: func(d Date) (string, error) { return d.String(), nil },
	parse:  ParseDate,
	unset:  Date.IsZero,
}

// DateTimeCodec renders naive values with a T separator and aware values
// with a space separator and numeric offset.
var DateTimeCodec = Codec[DateTime]{
	kind:   "datetime",
	format: func(d DateTime) (string, error) { return d.String(), nil },
	parse:  ParseDateTime,
	unset:  DateTime.IsZero,
}

// TimeCodec renders HH:MM:SS. Midnight is a valid, present value.
var TimeCodec = Codec[TimeOfDay]{
	kind:   "time",
	format: func(t TimeOfDay) (string, error) { return t.String(), nil },
	parse:  ParseTimeOfDay,
}

// IntCodec renders a base-10 integer. Zero is a valid, present value.
var IntCodec = Codec[int]{
	kind:   "int",
	format: func(n int) (string, error) { return strconv.Itoa(n), nil },
	parse: func(s string) (int, error) {
		return strconv.Atoi(lexical.TrimWhitespace(s))
	},
}

// EnumCodec renders members through their wire codes. A value that is not a
// declared member counts as unset.
func EnumCodec[E comparable](e *codedenum.Enum[E]) Codec[E] {
	return Codec[E]{
		kind:   "enum " + e.String(),
		format: e.ToWire,
		parse: func(s string) (E, error) {
			return e.FromWire(lexical.TrimWhitespace(s))
		},
		unset: func(v E) bool { return !e.Contains(v) },
	}
}

func upper(s string) string {
	// Casers keep state; one per call keeps concurrent use safe.
	return cases.Upper(language.BrazilianPortuguese).String(s)
}
