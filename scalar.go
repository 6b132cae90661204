package spb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacoelho/spb/internal/lexical"
)

// Decimal is an amount kept in the textual form it was constructed with, so
// that "120.0" is written back as "120.0" and never re-derived from a float.
// The zero Decimal is unset.
type Decimal struct {
	text string
}

// NewDecimal validates s and keeps it, trimmed, as the canonical text.
func NewDecimal(s string) (Decimal, error) {
	trimmed := lexical.TrimWhitespace(s)
	if err := lexical.CheckDecimal(trimmed); err != nil {
		return Decimal{}, err
	}
	return Decimal{text: trimmed}, nil
}

// MustDecimal is NewDecimal for literals; it panics on malformed input.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalFromFloat converts f through its shortest round-trip text, keeping
// a fractional part, so DecimalFromFloat(120.0) equals MustDecimal("120.0").
// The text is positional, never exponent form: 1e21 becomes
// "1000000000000000000000.0".
func DecimalFromFloat(f float64) (Decimal, error) {
	s, err := lexical.FormatFloat(f)
	if err != nil {
		return Decimal{}, err
	}
	return NewDecimal(s)
}

// String returns the canonical text.
func (d Decimal) String() string {
	return d.text
}

// IsSet reports whether d holds a value.
func (d Decimal) IsSet() bool {
	return d.text != ""
}

// Value returns the numeric value; the zero Decimal yields zero.
func (d Decimal) Value() decimal.Decimal {
	if d.text == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(d.text)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Cmp compares d and o numerically.
func (d Decimal) Cmp(o Decimal) int {
	return d.Value().Cmp(o.Value())
}

// Date is a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date y-m-d.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders YYYY-MM-DD.
func (d Date) String() string {
	return lexical.FormatDate(d.Year, d.Month, d.Day)
}

// TimeOfDay is a wall-clock time with second precision.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay returns hh:mm:ss.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// String renders HH:MM:SS.
func (t TimeOfDay) String() string {
	return lexical.FormatTime(t.Hour, t.Minute, t.Second)
}

// DateTime is a timestamp that either carries a UTC offset (aware) or does
// not (naive). Awareness decides the wire form, not the field declaration.
type DateTime struct {
	t     time.Time
	aware bool
}

// NaiveDateTime keeps the wall clock of t to the second and drops its zone.
func NaiveDateTime(t time.Time) DateTime {
	return DateTime{t: wallClock(t, time.UTC)}
}

// AwareDateTime keeps the wall clock of t to the second and its UTC offset.
func AwareDateTime(t time.Time) DateTime {
	_, offset := t.Zone()
	return DateTime{t: wallClock(t, time.FixedZone("", offset)), aware: true}
}

func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// Time returns the underlying time; naive values are reported in UTC.
func (d DateTime) Time() time.Time {
	return d.t
}

// IsAware reports whether d carries an offset.
func (d DateTime) IsAware() bool {
	return d.aware
}

// IsZero reports whether d is unset.
func (d DateTime) IsZero() bool {
	return d.t.IsZero() && !d.aware
}

// String renders the wire form: YYYY-MM-DDTHH:MM:SS when naive,
// YYYY-MM-DD HH:MM:SS±HH:MM when aware.
func (d DateTime) String() string {
	if d.aware {
		return lexical.FormatAwareDateTime(d.t)
	}
	return lexical.FormatNaiveDateTime(d.t)
}

// ParseDateTime parses either wire form.
func ParseDateTime(s string) (DateTime, error) {
	t, aware, err := lexical.ParseDateTime(s)
	if err != nil {
		return DateTime{}, err
	}
	if aware {
		return AwareDateTime(t), nil
	}
	return NaiveDateTime(t), nil
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	y, m, d, err := lexical.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: y, Month: m, Day: d}, nil
}

// ParseTimeOfDay parses HH:MM:SS.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, sec, err := lexical.ParseTime(s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: h, Minute: m, Second: sec}, nil
}

func (d Decimal) format() (string, error) {
	if d.text == "" {
		return "", fmt.Errorf("decimal is unset")
	}
	return d.text, nil
}
