// Package lexical holds the wire rendering and parsing rules for scalar field
// values. Rendering must stay bit-exact with the counterparty systems.
package lexical

import (
	"fmt"
	"time"
)

const (
	dateLayout       = "2006-01-02"
	timeLayout       = "15:04:05"
	dateTimeLayout   = "2006-01-02T15:04:05"
	awareWireLayout  = "2006-01-02 15:04:05-07:00"
	dateTimeLen      = len(dateTimeLayout)
	maxOffsetHours   = 14
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// FormatDate renders YYYY-MM-DD.
func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// FormatTime renders HH:MM:SS.
func FormatTime(hour, minute, second int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// FormatNaiveDateTime renders YYYY-MM-DDTHH:MM:SS. Sub-second precision is
// dropped; the wire form has none.
func FormatNaiveDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// FormatAwareDateTime renders YYYY-MM-DD HH:MM:SS±HH:MM. The offset is always
// numeric, UTC included. Sub-second precision is dropped.
func FormatAwareDateTime(t time.Time) string {
	return t.Format(awareWireLayout)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(lexical string) (year int, month time.Month, day int, err error) {
	s := TrimWhitespace(lexical)
	if len(s) != len(dateLayout) {
		return 0, 0, 0, fmt.Errorf("invalid date %q", s)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil || t.Year() < 1 {
		return 0, 0, 0, fmt.Errorf("invalid date %q", s)
	}
	return t.Year(), t.Month(), t.Day(), nil
}

// ParseTime parses HH:MM:SS. Fractions are not accepted.
func ParseTime(lexical string) (hour, minute, second int, err error) {
	s := TrimWhitespace(lexical)
	if len(s) != len(timeLayout) {
		return 0, 0, 0, fmt.Errorf("invalid time %q", s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid time %q", s)
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

// ParseDateTime parses a date-time in either wire form and reports whether
// it carried an offset. Both the T and the space separator are accepted;
// awareness is decided only by the presence of an offset. Fractions of a
// second are not accepted.
func ParseDateTime(lexical string) (time.Time, bool, error) {
	s := TrimWhitespace(lexical)
	main, tz := splitOffset(s)
	if len(main) != dateTimeLen || (main[10] != 'T' && main[10] != ' ') {
		return time.Time{}, false, fmt.Errorf("invalid dateTime %q", s)
	}
	t, err := time.Parse(dateTimeLayout, main[:10]+"T"+main[11:])
	if err != nil || t.Year() < 1 {
		return time.Time{}, false, fmt.Errorf("invalid dateTime %q", s)
	}
	if tz == "" {
		return t, false, nil
	}
	offset, err := parseOffset(tz)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.FixedZone("", offset)), true, nil
}

// splitOffset separates a trailing Z or ±HH:MM from s.
func splitOffset(s string) (string, string) {
	n := len(s)
	switch {
	case n > 0 && s[n-1] == 'Z':
		return s[:n-1], "Z"
	case n >= 6 && (s[n-6] == '+' || s[n-6] == '-') && s[n-3] == ':':
		return s[:n-6], s[n-6:]
	}
	return s, ""
}

// parseOffset converts Z or ±HH:MM to seconds east of UTC, bounded by ±14:00.
func parseOffset(tz string) (int, error) {
	if tz == "Z" {
		return 0, nil
	}
	hh, mm := tz[1:3], tz[4:6]
	if !IsDigits(hh) || !IsDigits(mm) {
		return 0, fmt.Errorf("invalid timezone offset %q", tz)
	}
	hours := int(hh[0]-'0')*10 + int(hh[1]-'0')
	minutes := int(mm[0]-'0')*10 + int(mm[1]-'0')
	if minutes > 59 || hours > maxOffsetHours || (hours == maxOffsetHours && minutes != 0) {
		return 0, fmt.Errorf("invalid timezone offset %q", tz)
	}
	offset := hours*secondsPerHour + minutes*secondsPerMinute
	if tz[0] == '-' {
		offset = -offset
	}
	return offset, nil
}
